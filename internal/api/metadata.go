package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saivenkat-burle/tsembed/internal/service"
	"github.com/saivenkat-burle/tsembed/internal/thoughtspot"
)

func (a *API) FindWorksheet(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		logApiErr(r, "missing worksheet name")
		http.Error(w, "worksheet name is required", http.StatusBadRequest)
		return
	}

	id, err := a.service.FindWorksheet(r.Context(), name)
	if err != nil {
		logApiErr(r, fmt.Sprintf("worksheet lookup failed: %v", err))
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "worksheet not found", http.StatusNotFound)
			return
		}
		http.Error(w, "error searching for worksheet", http.StatusInternalServerError)
		return
	}
	returnText(id, w)
}

type ColumnsRequest struct {
	WorksheetID string `json:"worksheetId"`
}

// Columns returns a worksheet's column metadata. An upstream failure keeps
// its original status code so the UI can distinguish auth problems from
// missing objects.
func (a *API) Columns(w http.ResponseWriter, r *http.Request) {
	var req ColumnsRequest
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}
	if req.WorksheetID == "" {
		logApiErr(r, "missing worksheet id")
		http.Error(w, "worksheetId is required", http.StatusBadRequest)
		return
	}

	columns, err := a.service.WorksheetColumns(r.Context(), req.WorksheetID)
	if err != nil {
		logApiErr(r, fmt.Sprintf("column lookup failed: %v", err))
		status := http.StatusInternalServerError
		var apiErr *thoughtspot.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		errorJson("error fetching columns", status, w)
		return
	}
	returnJson(columns, w)
}
