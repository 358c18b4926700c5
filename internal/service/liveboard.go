package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

// Liveboard is the view of a dashboard the embedding UI works with.
type Liveboard struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsFavorite bool   `json:"isFavorite"`
}

func (s *Service) ListLiveboards(ctx context.Context) ([]Liveboard, error) {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.metadata.SearchMetadata(ctx, token, thoughtspot.MetadataSearchRequest{
		Metadata:       []thoughtspot.MetadataFilter{{Type: thoughtspot.TypeLiveboard}},
		RecordSize:     10,
		IncludeHeaders: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: liveboard search failed: %w", ErrUpstream, err)
	}

	boards := make([]Liveboard, 0, len(items))
	for i := range items {
		item := &items[i]
		boards = append(boards, Liveboard{
			ID:         item.ObjectID(),
			Name:       item.ObjectName(),
			IsFavorite: item.IsFavorite || item.Favorite,
		})
	}
	return boards, nil
}

// CreateLiveboard imports a minimal liveboard edoc under the given name,
// waits for the search index to pick it up, and looks the new id back up.
func (s *Service) CreateLiveboard(ctx context.Context, name, description string) (*Liveboard, error) {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	edoc, err := json.Marshal(map[string]any{
		"liveboard": map[string]any{
			"name":        name,
			"description": description,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't build liveboard edoc: %v", ErrUpstream, err)
	}

	err = s.metadata.ImportTML(ctx, token, thoughtspot.ImportRequest{
		MetadataTMLs: []string{string(edoc)},
		ImportPolicy: thoughtspot.ImportPolicyPartial,
		CreateNew:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: liveboard import failed: %w", ErrUpstream, err)
	}

	// the new object is not searchable until indexed
	select {
	case <-time.After(s.cfg.IndexingDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	items, err := s.metadata.SearchMetadata(ctx, token, thoughtspot.MetadataSearchRequest{
		Metadata:   []thoughtspot.MetadataFilter{{Type: thoughtspot.TypeLiveboard, Identifier: name}},
		RecordSize: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: created liveboard lookup failed: %w", ErrUpstream, err)
	}
	if len(items) == 0 || items[0].ObjectID() == "" {
		return nil, fmt.Errorf("%w: liveboard %q created but id not found", ErrUpstream, name)
	}
	return &Liveboard{ID: items[0].ObjectID(), Name: name}, nil
}

// SetLiveboardFavorite marks or unmarks a liveboard as a favorite of the
// service account, resolving its durable id first.
func (s *Service) SetLiveboardFavorite(ctx context.Context, liveboardID string, mark bool) error {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return err
	}
	userID, err := s.ServiceUserID(ctx)
	if err != nil {
		return err
	}
	err = s.metadata.SetFavorite(ctx, token, thoughtspot.TypeLiveboard, liveboardID, userID, mark)
	if err != nil {
		return fmt.Errorf("%w: favorite update failed: %w", ErrUpstream, err)
	}
	return nil
}

// CopyLiveboard exports a liveboard's edoc, renames it, and re-imports it as
// a new object.
func (s *Service) CopyLiveboard(ctx context.Context, liveboardID, newName string) error {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return err
	}

	payload, err := s.metadata.ExportTML(ctx, token, thoughtspot.ExportRequest{
		Metadata:   []thoughtspot.MetadataFilter{{Identifier: liveboardID, Type: thoughtspot.TypeLiveboard}},
		EdocFormat: thoughtspot.EdocJSON,
	})
	if err != nil {
		return fmt.Errorf("%w: liveboard export failed: %w", ErrUpstream, err)
	}

	edoc, err := renameLiveboardEdoc(payload, newName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	err = s.metadata.ImportTML(ctx, token, thoughtspot.ImportRequest{
		MetadataTMLs: []string{edoc},
		ImportPolicy: thoughtspot.ImportPolicyPartial,
		CreateNew:    true,
	})
	if err != nil {
		return fmt.Errorf("%w: liveboard import failed: %w", ErrUpstream, err)
	}
	return nil
}

// renameLiveboardEdoc rewrites the liveboard name inside the first exported
// edoc so the re-import creates a copy instead of colliding with the source.
func renameLiveboardEdoc(payload json.RawMessage, newName string) (string, error) {
	var exported []map[string]json.RawMessage
	if err := json.Unmarshal(payload, &exported); err != nil {
		return "", fmt.Errorf("couldn't decode export payload: %v", err)
	}
	if len(exported) == 0 {
		return "", fmt.Errorf("export payload was empty")
	}

	edoc := exported[0]
	if raw, ok := edoc["liveboard"]; ok {
		var board map[string]any
		if err := json.Unmarshal(raw, &board); err != nil {
			return "", fmt.Errorf("couldn't decode liveboard edoc: %v", err)
		}
		board["name"] = newName
		renamed, err := json.Marshal(board)
		if err != nil {
			return "", fmt.Errorf("couldn't re-encode liveboard edoc: %v", err)
		}
		edoc["liveboard"] = renamed
	}

	out, err := json.Marshal(edoc)
	if err != nil {
		return "", fmt.Errorf("couldn't re-encode edoc: %v", err)
	}
	return string(out), nil
}
