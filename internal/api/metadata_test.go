package api_test

import (
	"net/http"
	"testing"

	"github.com/saivenkat-burle/tsembed/internal/service"
	"github.com/saivenkat-burle/tsembed/internal/testutil"
	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

func TestFindWorksheet(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Items = []thoughtspot.MetadataItem{
		{ID: "ws-1", Name: "Retail Sales", Header: &thoughtspot.MetadataHeader{Type: "WORKSHEET", Name: "Retail Sales"}},
	}

	result := testutil.Get(env.Router, "/api/find-worksheet?name=Retail+Sales", nil)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if string(result.Body) != "ws-1" {
		t.Errorf("expected raw id, got %q", result.Body)
	}
}

func TestFindWorksheet_MissingNameIs400(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.Get(env.Router, "/api/find-worksheet", nil)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
}

func TestFindWorksheet_NotFoundIs404(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.Get(env.Router, "/api/find-worksheet?name=Missing", nil)
	testutil.ExpectStatus(t, http.StatusNotFound, result)
}

func TestColumns(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.Items = []thoughtspot.MetadataItem{
		{
			ID: "ws-1",
			Detail: &thoughtspot.MetadataDetail{
				Columns: []thoughtspot.ColumnDetail{
					{Name: "Region", Type: "ATTRIBUTE", DataType: "VARCHAR"},
				},
			},
		},
	}

	var columns []service.Column
	result := testutil.PostJSON(env.Router, "/api/columns", `{"worksheetId": "ws-1"}`, &columns)
	testutil.ExpectStatus(t, http.StatusOK, result)
	if len(columns) != 1 || columns[0].Name != "Region" {
		t.Errorf("unexpected columns: %+v", columns)
	}
}

func TestColumns_MissingIDIs400(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/columns", `{}`, nil)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
}

func TestColumns_UpstreamStatusPassesThrough(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.Upstream.SearchErr = &thoughtspot.APIError{Status: 403, Body: "forbidden"}

	result := testutil.PostJSON(env.Router, "/api/columns", `{"worksheetId": "ws-1"}`, nil)
	testutil.ExpectStatus(t, http.StatusForbidden, result)
}
