package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

// VariableBinding names an access-control variable and the values granted to
// the token holder.
type VariableBinding struct {
	Name   string
	Values []string
}

// AttributeToken mints a token carrying row-level access bindings for the
// configured low-privilege identity. Never cached: bindings vary per call,
// and persist_option REPLACE tells the instance to overwrite whatever was
// previously persisted for that identity. Zero arguments fall back to the
// configured defaults.
func (s *Service) AttributeToken(ctx context.Context, bindings []VariableBinding, ttl time.Duration) (string, error) {
	if bindings == nil {
		bindings = s.cfg.DefaultBindings
	}
	if ttl <= 0 {
		ttl = s.cfg.ABACValidity
	}

	vars := make([]thoughtspot.VariableValue, len(bindings))
	for i, b := range bindings {
		vars[i] = thoughtspot.VariableValue{Name: b.Name, Values: b.Values}
	}

	grant, err := s.issuer.IssueCustomToken(ctx, thoughtspot.CustomTokenRequest{
		SecretKey:      s.cfg.SecretKey,
		Username:       s.cfg.ABACUsername,
		ValiditySecs:   int(ttl.Seconds()),
		OrgID:          s.cfg.ABACOrgID,
		AutoCreate:     true,
		PersistOption:  thoughtspot.PersistReplace,
		VariableValues: vars,
	})
	if err != nil {
		return "", fmt.Errorf("%w: couldn't mint attribute token: %v", ErrAuthentication, err)
	}
	return grant.Token, nil
}
