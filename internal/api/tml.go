package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saivenkat-burle/tsembed/internal/service"
)

type ExportTMLRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (a *API) ExportTMLByName(w http.ResponseWriter, r *http.Request) {
	var req ExportTMLRequest
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}
	if req.Name == "" || req.Type == "" {
		logApiErr(r, "missing tml export name or type")
		http.Error(w, "name and type are required", http.StatusBadRequest)
		return
	}

	payload, err := a.service.ExportTMLByName(r.Context(), req.Name, req.Type)
	if err != nil {
		logApiErr(r, fmt.Sprintf("tml export failed: %v", err))
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w,
				fmt.Sprintf("object '%s' of type '%s' not found", req.Name, req.Type),
				http.StatusNotFound)
			return
		}
		http.Error(w, "failed to export tml", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

type ImportTMLRequest struct {
	TMLString string `json:"tmlString"`
}

func (a *API) ImportTML(w http.ResponseWriter, r *http.Request) {
	var req ImportTMLRequest
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}
	if req.TMLString == "" {
		logApiErr(r, "missing tml content")
		http.Error(w, "tml content is required", http.StatusBadRequest)
		return
	}

	if err := a.service.ImportTML(r.Context(), req.TMLString); err != nil {
		logApiErr(r, fmt.Sprintf("tml import failed: %v", err))
		http.Error(w, "failed to import tml", http.StatusInternalServerError)
		return
	}
	returnJson(map[string]bool{"success": true}, w)
}
