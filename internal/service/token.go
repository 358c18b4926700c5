package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

// freshnessMargin is the minimum remaining lifetime a cached token must have
// to be handed out; anything closer to expiry triggers a refresh.
const freshnessMargin = 60 * time.Second

// tokenState is replaced whole on every successful refresh and never
// partially mutated. A failed refresh leaves it untouched.
type tokenState struct {
	token   string
	expires time.Time
	user    string
}

// ServiceToken returns a bearer token for the service account: the cached
// one when still fresh, otherwise a newly minted one. Concurrent callers
// hitting an expired cache share a single upstream issuance.
func (s *Service) ServiceToken(ctx context.Context) (string, error) {
	if token, ok := s.cachedToken(); ok {
		return token, nil
	}
	v, err, _ := s.flight.Do("service-token", func() (any, error) {
		// another caller may have refreshed while we queued
		if token, ok := s.cachedToken(); ok {
			return token, nil
		}
		return s.refreshToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Service) cachedToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token.token == "" {
		return "", false
	}
	if !s.token.expires.After(s.now().Add(freshnessMargin)) {
		return "", false
	}
	return s.token.token, true
}

func (s *Service) refreshToken(ctx context.Context) (string, error) {
	grant, err := s.issuer.IssueFullToken(ctx, thoughtspot.FullTokenRequest{
		SecretKey:     s.cfg.SecretKey,
		Username:      s.cfg.ServiceAccount,
		ValiditySecs:  int(s.cfg.TokenValidity.Seconds()),
		OrgID:         s.cfg.OrgID,
		AutoCreate:    true,
		PersistOption: thoughtspot.PersistNone,
	})
	if err != nil {
		// cache stays as-is; the stale entry is already expired, so the
		// next call re-attempts the refresh on its own
		return "", fmt.Errorf("%w: couldn't mint service token: %v", ErrAuthentication, err)
	}

	validity := time.Duration(grant.ValiditySecs) * time.Second
	s.mu.Lock()
	s.token = tokenState{
		token:   grant.Token,
		expires: s.now().Add(validity),
		user:    s.cfg.ServiceAccount,
	}
	s.mu.Unlock()

	log.Printf("service token refreshed for %s, valid %s\n", s.cfg.ServiceAccount, validity)
	return grant.Token, nil
}
