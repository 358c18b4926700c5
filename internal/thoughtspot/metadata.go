package thoughtspot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Metadata object types used by this server.
const (
	TypeLiveboard    = "LIVEBOARD"
	TypeLogicalTable = "LOGICAL_TABLE"
)

// Edoc formats for TML export.
const (
	EdocJSON = "JSON"
	EdocYAML = "YAML"
)

// Import policies for TML import.
const ImportPolicyPartial = "PARTIAL"

type MetadataFilter struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier,omitempty"`
}

type MetadataSearchRequest struct {
	Metadata       []MetadataFilter `json:"metadata"`
	RecordSize     int              `json:"record_size,omitempty"`
	IncludeHeaders bool             `json:"include_headers,omitempty"`
	IncludeDetails bool             `json:"include_details,omitempty"`
}

type MetadataHeader struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ColumnDetail struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	ColumnType string          `json:"column_type"`
	DataType   string          `json:"dataType"`
	Header     *MetadataHeader `json:"header,omitempty"`
}

type MetadataDetail struct {
	Columns []ColumnDetail `json:"columns"`
}

// MetadataItem is one search result. The instance is inconsistent about
// where ids and names live depending on version and object type, hence the
// legacy header alongside the v2.0 fields; use ObjectID and ObjectName
// rather than reading fields directly.
type MetadataItem struct {
	ID           string          `json:"metadata_id"`
	Name         string          `json:"metadata_name"`
	Header       *MetadataHeader `json:"metadata_header,omitempty"`
	LegacyHeader *MetadataHeader `json:"header,omitempty"`
	Detail       *MetadataDetail `json:"metadata_detail,omitempty"`
	IsFavorite   bool            `json:"is_favorite"`
	Favorite     bool            `json:"favorite"`
}

// ObjectID returns the item's id from whichever field the instance filled.
func (m *MetadataItem) ObjectID() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Header != nil && m.Header.ID != "" {
		return m.Header.ID
	}
	if m.LegacyHeader != nil {
		return m.LegacyHeader.ID
	}
	return ""
}

// ObjectName returns the item's name from whichever field the instance filled.
func (m *MetadataItem) ObjectName() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Header != nil && m.Header.Name != "" {
		return m.Header.Name
	}
	if m.LegacyHeader != nil {
		return m.LegacyHeader.Name
	}
	return ""
}

func (c *Client) SearchMetadata(ctx context.Context, token string, req MetadataSearchRequest) ([]MetadataItem, error) {
	var items []MetadataItem
	if err := c.postJSON(ctx, "api/rest/2.0/metadata/search", token, req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// User is a principal record from users/search.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

func (c *Client) SearchUsers(ctx context.Context, token, name string) ([]User, error) {
	var users []User
	req := map[string]string{"name": name}
	if err := c.postJSON(ctx, "api/rest/2.0/users/search", token, req, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type ExportRequest struct {
	Metadata         []MetadataFilter `json:"metadata"`
	ExportAssociated bool             `json:"export_associated"`
	EdocFormat       string           `json:"edoc_format"`
}

// ExportTML returns the raw export payload; callers decide how deep to
// decode it.
func (c *Client) ExportTML(ctx context.Context, token string, req ExportRequest) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := c.postJSON(ctx, "api/rest/2.0/metadata/tml/export", token, req, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type ImportRequest struct {
	MetadataTMLs []string `json:"metadata_tmls"`
	ImportPolicy string   `json:"import_policy"`
	CreateNew    bool     `json:"create_new"`
}

func (c *Client) ImportTML(ctx context.Context, token string, req ImportRequest) error {
	return c.postJSON(ctx, "api/rest/2.0/metadata/tml/import", token, req, nil)
}

// SetFavorite marks or unmarks an object as a favorite of the given user.
// Mark is a POST and unmark a DELETE against the same legacy endpoint, both
// with a form-encoded body.
func (c *Client) SetFavorite(ctx context.Context, token, objectType, objectID, userID string, mark bool) error {
	form := url.Values{}
	form.Set("type", objectType)
	form.Set("ids", fmt.Sprintf(`["%s"]`, objectID))
	form.Set("userid", userID)

	method := http.MethodPost
	if !mark {
		method = http.MethodDelete
	}
	req, err := http.NewRequestWithContext(ctx, method,
		c.host+"/callosum/v1/tspublic/v1/metadata/markunmarkfavoritefor",
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("couldn't build favorite request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("favorite request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(res.Body)
		return &APIError{Status: res.StatusCode, Body: string(raw)}
	}
	return nil
}
