package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

// FakeUpstream implements every gateway interface the broker depends on.
// Calls are counted, the last request of each kind is retained for
// inspection, and responses/errors are settable per operation. Tokens are
// generated as "svc-token-N" unless FullGrant pins one.
type FakeUpstream struct {
	mu sync.Mutex

	IssueFullCalls   int
	IssueCustomCalls int
	LoginCalls       int
	UserSearchCalls  int
	SearchCalls      int
	ExportCalls      int
	ImportCalls      int
	FavoriteCalls    int

	FullGrant *thoughtspot.TokenGrant
	FullErr   error

	CustomGrant *thoughtspot.TokenGrant
	CustomErr   error

	LoginResult *thoughtspot.SessionResult
	LoginErr    error

	Users    []thoughtspot.User
	UsersErr error

	Items []thoughtspot.MetadataItem
	// SearchFn overrides Items/SearchErr when set; it sees the call
	// number (1-based) so tests can vary results across calls.
	SearchFn  func(call int, req thoughtspot.MetadataSearchRequest) ([]thoughtspot.MetadataItem, error)
	SearchErr error

	ExportPayload json.RawMessage
	ExportErr     error
	ImportErr     error
	FavoriteErr   error

	LastFull     thoughtspot.FullTokenRequest
	LastCustom   thoughtspot.CustomTokenRequest
	LastSearch   thoughtspot.MetadataSearchRequest
	LastExport   thoughtspot.ExportRequest
	LastImport   thoughtspot.ImportRequest
	LastFavorite FavoriteCall
}

// FavoriteCall records the arguments of the most recent SetFavorite call.
type FavoriteCall struct {
	Token      string
	ObjectType string
	ObjectID   string
	UserID     string
	Mark       bool
}

func NewFakeUpstream() *FakeUpstream {
	return &FakeUpstream{}
}

func (f *FakeUpstream) IssueFullToken(ctx context.Context, req thoughtspot.FullTokenRequest) (*thoughtspot.TokenGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.IssueFullCalls++
	f.LastFull = req
	if f.FullErr != nil {
		return nil, f.FullErr
	}
	if f.FullGrant != nil {
		grant := *f.FullGrant
		return &grant, nil
	}
	return &thoughtspot.TokenGrant{
		Token:        fmt.Sprintf("svc-token-%d", f.IssueFullCalls),
		ValiditySecs: req.ValiditySecs,
	}, nil
}

func (f *FakeUpstream) IssueCustomToken(ctx context.Context, req thoughtspot.CustomTokenRequest) (*thoughtspot.TokenGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.IssueCustomCalls++
	f.LastCustom = req
	if f.CustomErr != nil {
		return nil, f.CustomErr
	}
	if f.CustomGrant != nil {
		grant := *f.CustomGrant
		return &grant, nil
	}
	return &thoughtspot.TokenGrant{
		Token:        fmt.Sprintf("abac-token-%d", f.IssueCustomCalls),
		ValiditySecs: req.ValiditySecs,
	}, nil
}

func (f *FakeUpstream) SessionLogin(ctx context.Context, username, password string) (*thoughtspot.SessionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginResult != nil {
		result := *f.LoginResult
		return &result, nil
	}
	return &thoughtspot.SessionResult{Status: 200}, nil
}

func (f *FakeUpstream) SearchUsers(ctx context.Context, token, name string) ([]thoughtspot.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UserSearchCalls++
	if f.UsersErr != nil {
		return nil, f.UsersErr
	}
	return f.Users, nil
}

func (f *FakeUpstream) SearchMetadata(ctx context.Context, token string, req thoughtspot.MetadataSearchRequest) ([]thoughtspot.MetadataItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SearchCalls++
	f.LastSearch = req
	if f.SearchFn != nil {
		return f.SearchFn(f.SearchCalls, req)
	}
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	return f.Items, nil
}

func (f *FakeUpstream) ExportTML(ctx context.Context, token string, req thoughtspot.ExportRequest) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ExportCalls++
	f.LastExport = req
	if f.ExportErr != nil {
		return nil, f.ExportErr
	}
	return f.ExportPayload, nil
}

func (f *FakeUpstream) ImportTML(ctx context.Context, token string, req thoughtspot.ImportRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ImportCalls++
	f.LastImport = req
	return f.ImportErr
}

func (f *FakeUpstream) SetFavorite(ctx context.Context, token, objectType, objectID, userID string, mark bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FavoriteCalls++
	f.LastFavorite = FavoriteCall{
		Token:      token,
		ObjectType: objectType,
		ObjectID:   objectID,
		UserID:     userID,
		Mark:       mark,
	}
	return f.FavoriteErr
}
