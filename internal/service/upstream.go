package service

import (
	"context"
	"encoding/json"

	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

// TokenIssuer mints bearer tokens on the upstream instance.
type TokenIssuer interface {
	IssueFullToken(ctx context.Context, req thoughtspot.FullTokenRequest) (*thoughtspot.TokenGrant, error)
	IssueCustomToken(ctx context.Context, req thoughtspot.CustomTokenRequest) (*thoughtspot.TokenGrant, error)
}

// SessionGateway performs interactive logins.
type SessionGateway interface {
	SessionLogin(ctx context.Context, username, password string) (*thoughtspot.SessionResult, error)
}

// MetadataStore covers the metadata operations the broker orchestrates.
type MetadataStore interface {
	SearchMetadata(ctx context.Context, token string, req thoughtspot.MetadataSearchRequest) ([]thoughtspot.MetadataItem, error)
	ExportTML(ctx context.Context, token string, req thoughtspot.ExportRequest) (json.RawMessage, error)
	ImportTML(ctx context.Context, token string, req thoughtspot.ImportRequest) error
	SetFavorite(ctx context.Context, token, objectType, objectID, userID string, mark bool) error
}

// UserDirectory resolves principals by name.
type UserDirectory interface {
	SearchUsers(ctx context.Context, token, name string) ([]thoughtspot.User, error)
}
