// Package thoughtspot is a client for the slice of the ThoughtSpot REST API
// this server needs: token issuance, interactive session login, user search,
// metadata search, TML export/import, and the one legacy callosum endpoint
// the v2.0 API has no replacement for (favorites).
package thoughtspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a single ThoughtSpot instance. It holds no session state;
// calls that need authorization take a bearer token argument.
type Client struct {
	host string
	http *http.Client
}

func New(host string) *Client {
	return &Client{
		host: strings.TrimRight(host, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			// session login inspects redirect responses for cookies,
			// so redirects must surface instead of being followed
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Host returns the instance base URL without a trailing slash.
func (c *Client) Host() string { return c.host }

// Domain returns the instance host name without scheme or port, suitable for
// a cookie Domain attribute.
func (c *Client) Domain() string {
	u, err := url.Parse(c.host)
	if err != nil || u.Hostname() == "" {
		return c.host
	}
	return u.Hostname()
}

// APIError is a non-2xx upstream response. Status and body are preserved so
// callers can pass them through.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

func (c *Client) postJSON(ctx context.Context, path string, token string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("couldn't encode %s request: %v", path, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.host+"/"+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("couldn't build %s request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %v", path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("couldn't read %s response: %v", path, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{Status: res.StatusCode, Body: string(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("couldn't decode %s response: %v", path, err)
		}
	}
	return nil
}
