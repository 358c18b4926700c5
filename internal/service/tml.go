package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

// ExportTMLByName resolves an object by name and type, then exports its TML
// as a YAML edoc. The name match is exact but case-insensitive, since search
// identifiers are fuzzy.
func (s *Service) ExportTMLByName(ctx context.Context, name, objectType string) (json.RawMessage, error) {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.metadata.SearchMetadata(ctx, token, thoughtspot.MetadataSearchRequest{
		Metadata:   []thoughtspot.MetadataFilter{{Type: objectType, Identifier: name}},
		RecordSize: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: object search failed: %w", ErrUpstream, err)
	}

	var id string
	for i := range items {
		if strings.EqualFold(items[i].ObjectName(), name) {
			id = items[i].ObjectID()
			break
		}
	}
	if id == "" {
		return nil, fmt.Errorf("%w: no %s named %q", ErrNotFound, objectType, name)
	}

	payload, err := s.metadata.ExportTML(ctx, token, thoughtspot.ExportRequest{
		Metadata:   []thoughtspot.MetadataFilter{{Identifier: id, Type: objectType}},
		EdocFormat: thoughtspot.EdocYAML,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: tml export failed: %w", ErrUpstream, err)
	}
	return payload, nil
}

// ImportTML applies a single edoc to the instance, updating the existing
// object when its guid matches.
func (s *Service) ImportTML(ctx context.Context, tml string) error {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return err
	}

	err = s.metadata.ImportTML(ctx, token, thoughtspot.ImportRequest{
		MetadataTMLs: []string{tml},
		ImportPolicy: thoughtspot.ImportPolicyPartial,
		CreateNew:    false,
	})
	if err != nil {
		return fmt.Errorf("%w: tml import failed: %w", ErrUpstream, err)
	}
	return nil
}
