package service

import (
	"context"
	"fmt"
	"strings"
)

// InteractiveLogin authenticates username/password against the upstream
// instance and returns its session cookies rewritten for cross-origin embed
// use. An upstream success that carries no cookies is a failure: the browser
// would have nothing to authenticate with, and silently returning success
// would mask it.
func (s *Service) InteractiveLogin(ctx context.Context, username, password string) ([]string, error) {
	result, err := s.sessions.SessionLogin(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogin, err)
	}
	if len(result.Cookies) == 0 {
		return nil, fmt.Errorf("%w: upstream status %d carried no session cookie", ErrNoSession, result.Status)
	}

	rewritten := make([]string, len(result.Cookies))
	for i, cookie := range result.Cookies {
		rewritten[i] = rewriteSessionCookie(cookie, s.cfg.CookieDomain)
	}
	return rewritten, nil
}

// rewriteSessionCookie loosens an upstream Set-Cookie value so the browser
// will replay it on cross-origin embed requests: Path widened to /, SameSite
// None with Secure and HttpOnly, and scoped to the upstream serving domain.
// Upstream copies of those attributes are dropped so they appear exactly
// once.
func rewriteSessionCookie(raw, domain string) string {
	parts := strings.Split(raw, ";")
	out := []string{strings.TrimSpace(parts[0])}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		attr := strings.ToLower(part)
		if i := strings.IndexByte(attr, '='); i >= 0 {
			attr = attr[:i]
		}
		switch attr {
		case "path", "domain", "samesite", "secure", "httponly":
			continue
		}
		out = append(out, part)
	}
	out = append(out, "Path=/", "SameSite=None", "Secure", "HttpOnly")
	if domain != "" {
		out = append(out, "Domain="+domain)
	}
	return strings.Join(out, "; ")
}
