package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/saivenkat-burle/tsembed/internal/service"
	"github.com/saivenkat-burle/tsembed/internal/testutil"
	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

func TestListLiveboards_MapsResults(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Items = []thoughtspot.MetadataItem{
		{ID: "lb-1", Name: "Sales", IsFavorite: true},
		{Header: &thoughtspot.MetadataHeader{ID: "lb-2", Name: "Ops"}},
		{LegacyHeader: &thoughtspot.MetadataHeader{ID: "lb-3", Name: "Retention"}, Favorite: true},
	}

	boards, err := env.Service.ListLiveboards(context.Background())
	if err != nil {
		t.Fatalf("ListLiveboards failed: %v", err)
	}
	if len(boards) != 3 {
		t.Fatalf("expected 3 boards, got %d", len(boards))
	}

	want := []service.Liveboard{
		{ID: "lb-1", Name: "Sales", IsFavorite: true},
		{ID: "lb-2", Name: "Ops"},
		{ID: "lb-3", Name: "Retention", IsFavorite: true},
	}
	for i := range want {
		if boards[i] != want[i] {
			t.Errorf("board %d: got %+v, want %+v", i, boards[i], want[i])
		}
	}
}

func TestListLiveboards_SearchShape(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	if _, err := env.Service.ListLiveboards(context.Background()); err != nil {
		t.Fatalf("ListLiveboards failed: %v", err)
	}

	req := env.Upstream.LastSearch
	if len(req.Metadata) != 1 || req.Metadata[0].Type != thoughtspot.TypeLiveboard {
		t.Errorf("unexpected search filter: %+v", req.Metadata)
	}
	if req.RecordSize != 10 || !req.IncludeHeaders {
		t.Errorf("unexpected search options: %+v", req)
	}
}

func TestCreateLiveboard(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Items = []thoughtspot.MetadataItem{{ID: "new-guid"}}

	board, err := env.Service.CreateLiveboard(context.Background(), "Quarterly", "revenue review")
	if err != nil {
		t.Fatalf("CreateLiveboard failed: %v", err)
	}
	if board.ID != "new-guid" || board.Name != "Quarterly" {
		t.Errorf("unexpected board: %+v", board)
	}

	imp := env.Upstream.LastImport
	if !imp.CreateNew {
		t.Error("expected create_new on import")
	}
	if imp.ImportPolicy != thoughtspot.ImportPolicyPartial {
		t.Errorf("expected PARTIAL policy, got %q", imp.ImportPolicy)
	}
	if len(imp.MetadataTMLs) != 1 {
		t.Fatalf("expected 1 edoc, got %d", len(imp.MetadataTMLs))
	}
	var edoc struct {
		Liveboard struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"liveboard"`
	}
	if err := json.Unmarshal([]byte(imp.MetadataTMLs[0]), &edoc); err != nil {
		t.Fatalf("edoc is not valid JSON: %v", err)
	}
	if edoc.Liveboard.Name != "Quarterly" || edoc.Liveboard.Description != "revenue review" {
		t.Errorf("unexpected edoc: %+v", edoc)
	}

	// the id lookup searches by name
	search := env.Upstream.LastSearch
	if len(search.Metadata) != 1 || search.Metadata[0].Identifier != "Quarterly" {
		t.Errorf("unexpected id lookup: %+v", search.Metadata)
	}
}

func TestCreateLiveboard_IDNotFound(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	// index never catches up

	_, err := env.Service.CreateLiveboard(context.Background(), "Quarterly", "")
	if !errors.Is(err, service.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestSetLiveboardFavorite_OneLookupOneMark(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Users = []thoughtspot.User{{ID: "guid-9", Name: testutil.TestServiceAccount}}

	if err := env.Service.SetLiveboardFavorite(context.Background(), "lb-1", true); err != nil {
		t.Fatalf("SetLiveboardFavorite failed: %v", err)
	}

	if env.Upstream.UserSearchCalls != 1 {
		t.Errorf("expected exactly one identity lookup, got %d", env.Upstream.UserSearchCalls)
	}
	if env.Upstream.FavoriteCalls != 1 {
		t.Errorf("expected exactly one favorite call, got %d", env.Upstream.FavoriteCalls)
	}

	fav := env.Upstream.LastFavorite
	if fav.ObjectType != thoughtspot.TypeLiveboard || fav.ObjectID != "lb-1" {
		t.Errorf("unexpected favorite target: %+v", fav)
	}
	if fav.UserID != "guid-9" {
		t.Errorf("expected resolved user id, got %q", fav.UserID)
	}
	if !fav.Mark {
		t.Error("expected mark")
	}

	// unmark reuses the cached identity
	if err := env.Service.SetLiveboardFavorite(context.Background(), "lb-1", false); err != nil {
		t.Fatalf("SetLiveboardFavorite failed: %v", err)
	}
	if env.Upstream.UserSearchCalls != 1 {
		t.Errorf("identity should stay cached, got %d lookups", env.Upstream.UserSearchCalls)
	}
	if env.Upstream.LastFavorite.Mark {
		t.Error("expected unmark")
	}
}

func TestCopyLiveboard_RenamesEdoc(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.ExportPayload = json.RawMessage(`[{"liveboard":{"name":"Old Name","visualizations":[]}}]`)

	if err := env.Service.CopyLiveboard(context.Background(), "lb-1", "New Name"); err != nil {
		t.Fatalf("CopyLiveboard failed: %v", err)
	}

	exp := env.Upstream.LastExport
	if exp.EdocFormat != thoughtspot.EdocJSON {
		t.Errorf("expected JSON export, got %q", exp.EdocFormat)
	}
	if len(exp.Metadata) != 1 || exp.Metadata[0].Identifier != "lb-1" {
		t.Errorf("unexpected export target: %+v", exp.Metadata)
	}

	imp := env.Upstream.LastImport
	if !imp.CreateNew {
		t.Error("expected create_new on re-import")
	}
	if len(imp.MetadataTMLs) != 1 {
		t.Fatalf("expected 1 edoc, got %d", len(imp.MetadataTMLs))
	}
	if !strings.Contains(imp.MetadataTMLs[0], "New Name") {
		t.Errorf("edoc not renamed: %s", imp.MetadataTMLs[0])
	}
	if strings.Contains(imp.MetadataTMLs[0], "Old Name") {
		t.Errorf("old name survived rename: %s", imp.MetadataTMLs[0])
	}
	if !strings.Contains(imp.MetadataTMLs[0], "visualizations") {
		t.Errorf("edoc content beyond the name was lost: %s", imp.MetadataTMLs[0])
	}
}

func TestCopyLiveboard_ExportFailure(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.ExportErr = errors.New("export down")

	err := env.Service.CopyLiveboard(context.Background(), "lb-1", "New Name")
	if !errors.Is(err, service.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if env.Upstream.ImportCalls != 0 {
		t.Errorf("expected no import after failed export, got %d", env.Upstream.ImportCalls)
	}
}
