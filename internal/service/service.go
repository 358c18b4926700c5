// Package service implements the token/session brokering core for the embed
// backend. It owns all cached state: the service token, the resolved service
// user id, and nothing else. Every upstream failure surfaces to the caller;
// nothing here retries.
package service

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
	ErrLogin          = errors.New("login failed")
	ErrNoSession      = errors.New("no session established")
	ErrUpstream       = errors.New("upstream call failed")
)

// Config holds the fixed identities and windows the broker operates under.
type Config struct {
	// SecretKey is the instance secret used to mint tokens. May be empty;
	// issuance then fails upstream rather than at startup.
	SecretKey      string
	ServiceAccount string
	OrgID          string

	// TokenValidity is the validity window requested for service tokens.
	// Defaults to 30 minutes.
	TokenValidity time.Duration

	// CookieDomain scopes relayed session cookies to the upstream host.
	CookieDomain string

	// ABACUsername is the low-privilege identity attribute tokens are
	// minted for.
	ABACUsername string
	ABACOrgID    string
	// ABACValidity is the default attribute token lifetime. Defaults to
	// one hour.
	ABACValidity time.Duration
	// DefaultBindings are used when a caller supplies none.
	DefaultBindings []VariableBinding

	// IndexingDelay is how long a freshly imported object is given to
	// show up in metadata search. Defaults to 1.5 seconds.
	IndexingDelay time.Duration

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Service coordinates token issuance, identity resolution, session relay,
// and the metadata operations built on top of them. It depends on gateway
// interfaces and delegates all network traffic to them.
type Service struct {
	cfg Config

	issuer    TokenIssuer
	sessions  SessionGateway
	metadata  MetadataStore
	directory UserDirectory

	mu     sync.Mutex
	token  tokenState
	userID string

	flight singleflight.Group

	now func() time.Time
}

func New(
	cfg Config,
	issuer TokenIssuer,
	sessions SessionGateway,
	metadata MetadataStore,
	directory UserDirectory,
) *Service {
	if cfg.TokenValidity == 0 {
		cfg.TokenValidity = 30 * time.Minute
	}
	if cfg.ABACValidity == 0 {
		cfg.ABACValidity = time.Hour
	}
	if cfg.IndexingDelay == 0 {
		cfg.IndexingDelay = 1500 * time.Millisecond
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		cfg:       cfg,
		issuer:    issuer,
		sessions:  sessions,
		metadata:  metadata,
		directory: directory,
		now:       now,
	}
}
