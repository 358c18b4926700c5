package thoughtspot

import "context"

// Persist options for token issuance. NONE leaves nothing behind on the
// instance; REPLACE overwrites any variable bindings previously persisted
// for the identity.
const (
	PersistNone    = "NONE"
	PersistReplace = "REPLACE"
)

// FullTokenRequest mints a bearer token for an account using the instance
// secret key.
type FullTokenRequest struct {
	SecretKey     string `json:"secret_key"`
	Username      string `json:"username"`
	ValiditySecs  int    `json:"validity_time_in_sec"`
	OrgID         string `json:"org_id"`
	AutoCreate    bool   `json:"auto_create"`
	PersistOption string `json:"persist_option"`
}

// VariableValue binds one access-control variable to the values granted.
type VariableValue struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// CustomTokenRequest mints a token that additionally carries access-control
// variable bindings.
type CustomTokenRequest struct {
	SecretKey      string          `json:"secret_key"`
	Username       string          `json:"username"`
	ValiditySecs   int             `json:"validity_time_in_sec"`
	OrgID          string          `json:"org_id"`
	AutoCreate     bool            `json:"auto_create"`
	PersistOption  string          `json:"persist_option"`
	VariableValues []VariableValue `json:"variable_values"`
}

// TokenGrant is the issuance response: the opaque token and the validity
// window the instance actually granted.
type TokenGrant struct {
	Token        string `json:"token"`
	ValiditySecs int    `json:"validity_time_in_sec"`
}

func (c *Client) IssueFullToken(ctx context.Context, req FullTokenRequest) (*TokenGrant, error) {
	grant := &TokenGrant{}
	if err := c.postJSON(ctx, "api/rest/2.0/auth/token/full", "", req, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

func (c *Client) IssueCustomToken(ctx context.Context, req CustomTokenRequest) (*TokenGrant, error) {
	grant := &TokenGrant{}
	if err := c.postJSON(ctx, "api/rest/2.0/auth/token/custom", "", req, grant); err != nil {
		return nil, err
	}
	return grant, nil
}
