package service

import (
	"context"
	"fmt"

	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

// FindWorksheet returns the id of the worksheet with the given name. The
// search runs over all logical tables, so results are filtered down to
// worksheet headers with an exact name match.
func (s *Service) FindWorksheet(ctx context.Context, name string) (string, error) {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return "", err
	}

	items, err := s.metadata.SearchMetadata(ctx, token, thoughtspot.MetadataSearchRequest{
		Metadata:       []thoughtspot.MetadataFilter{{Identifier: name, Type: thoughtspot.TypeLogicalTable}},
		RecordSize:     5,
		IncludeHeaders: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: worksheet search failed: %w", ErrUpstream, err)
	}

	for i := range items {
		item := &items[i]
		if item.Header == nil || item.Header.Type != "WORKSHEET" {
			continue
		}
		if item.Name != name && item.Header.Name != name {
			continue
		}
		if id := item.ObjectID(); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no worksheet named %q", ErrNotFound, name)
}

// Column is a worksheet column as the builder UI consumes it.
type Column struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	DataType string `json:"dataType"`
}

// WorksheetColumns returns the column metadata of a worksheet. Upstream
// failures keep their status so the handler can pass it through.
func (s *Service) WorksheetColumns(ctx context.Context, worksheetID string) ([]Column, error) {
	token, err := s.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.metadata.SearchMetadata(ctx, token, thoughtspot.MetadataSearchRequest{
		Metadata:       []thoughtspot.MetadataFilter{{Identifier: worksheetID, Type: thoughtspot.TypeLogicalTable}},
		RecordSize:     1,
		IncludeHeaders: true,
		IncludeDetails: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: column lookup failed: %w", ErrUpstream, err)
	}

	columns := []Column{}
	if len(items) == 0 || items[0].Detail == nil {
		return columns, nil
	}
	for _, col := range items[0].Detail.Columns {
		name := col.Name
		if col.Header != nil && col.Header.Name != "" {
			name = col.Header.Name
		}
		colType := col.Type
		if colType == "" {
			colType = col.ColumnType
		}
		columns = append(columns, Column{
			ID:       name,
			Name:     name,
			Type:     colType,
			DataType: col.DataType,
		})
	}
	return columns, nil
}
