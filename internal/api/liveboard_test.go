package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/saivenkat-burle/tsembed/internal/service"
	"github.com/saivenkat-burle/tsembed/internal/testutil"
	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

func TestLiveboards_List(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Items = []thoughtspot.MetadataItem{
		{ID: "lb-1", Name: "Sales", IsFavorite: true},
		{ID: "lb-2", Name: "Ops"},
	}

	var boards []service.Liveboard
	result := testutil.Get(env.Router, "/api/liveboards", &boards)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}
	if boards[0].ID != "lb-1" || !boards[0].IsFavorite {
		t.Errorf("unexpected first board: %+v", boards[0])
	}
}

func TestLiveboards_FailureIs500(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.SearchErr = errors.New("search down")

	result := testutil.Get(env.Router, "/api/liveboards", nil)
	testutil.ExpectStatus(t, http.StatusInternalServerError, result)
}

func TestCreateLiveboard(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Items = []thoughtspot.MetadataItem{{ID: "new-guid"}}

	var response struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		Name    string `json:"name"`
	}
	body := `{"name": "Quarterly", "description": "revenue"}`
	result := testutil.PostJSON(env.Router, "/api/create-liveboard", body, &response)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if !response.Success || response.ID != "new-guid" || response.Name != "Quarterly" {
		t.Errorf("unexpected response: %+v", response)
	}
}

func TestCreateLiveboard_MissingNameIs400(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/create-liveboard", `{"description": "x"}`, nil)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
	if env.Upstream.ImportCalls != 0 {
		t.Errorf("expected no upstream call, got %d", env.Upstream.ImportCalls)
	}
}

func TestLiveboardFavorite_Mark(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Users = []thoughtspot.User{{ID: "guid-9", Name: testutil.TestServiceAccount}}

	var response struct {
		Success bool `json:"success"`
	}
	body := `{"liveboardId": "lb-1", "action": "mark"}`
	result := testutil.PostJSON(env.Router, "/api/liveboard/favorite", body, &response)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if !response.Success {
		t.Error("expected success")
	}
	if !env.Upstream.LastFavorite.Mark {
		t.Error("expected mark")
	}
}

func TestLiveboardFavorite_Unmark(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Users = []thoughtspot.User{{ID: "guid-9", Name: testutil.TestServiceAccount}}

	body := `{"liveboardId": "lb-1", "action": "unmark"}`
	result := testutil.PostJSON(env.Router, "/api/liveboard/favorite", body, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if env.Upstream.LastFavorite.Mark {
		t.Error("expected unmark")
	}
}

func TestLiveboardFavorite_UnresolvedIdentityIs500(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	// no users upstream: identity resolution fails

	body := `{"liveboardId": "lb-1", "action": "mark"}`
	result := testutil.PostJSON(env.Router, "/api/liveboard/favorite", body, nil)
	testutil.ExpectStatus(t, http.StatusInternalServerError, result)
	if env.Upstream.FavoriteCalls != 0 {
		t.Errorf("expected no favorite call without an identity, got %d", env.Upstream.FavoriteCalls)
	}
}

func TestCopyLiveboard(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.ExportPayload = []byte(`[{"liveboard":{"name":"Old"}}]`)

	var response struct {
		Success bool `json:"success"`
	}
	body := `{"liveboardId": "lb-1", "newName": "Copy of Old"}`
	result := testutil.PostJSON(env.Router, "/api/liveboard/copy", body, &response)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if !response.Success {
		t.Error("expected success")
	}
	if env.Upstream.ExportCalls != 1 || env.Upstream.ImportCalls != 1 {
		t.Errorf("expected one export and one import, got %d/%d",
			env.Upstream.ExportCalls, env.Upstream.ImportCalls)
	}
}
