package thoughtspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// SessionResult is the outcome of an interactive login: the response status
// and the raw Set-Cookie header values, untouched.
type SessionResult struct {
	Status  int
	Cookies []string
}

type sessionLoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// SessionLogin authenticates a user interactively. Redirects are not
// followed: a 3xx response may still carry the session cookie, so any
// response below 400 is returned for inspection.
func (c *Client) SessionLogin(ctx context.Context, username, password string) (*SessionResult, error) {
	payload, err := json.Marshal(sessionLoginRequest{
		Username:   username,
		Password:   password,
		RememberMe: true,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't encode login request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/api/rest/2.0/auth/session/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("couldn't build login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %v", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read login response: %v", err)
	}
	if res.StatusCode >= 400 {
		return nil, &APIError{Status: res.StatusCode, Body: string(raw)}
	}
	return &SessionResult{
		Status:  res.StatusCode,
		Cookies: res.Header.Values("Set-Cookie"),
	}, nil
}
