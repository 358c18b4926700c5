package api

import (
	"fmt"
	"net/http"
)

func (a *API) Liveboards(w http.ResponseWriter, r *http.Request) {
	boards, err := a.service.ListLiveboards(r.Context())
	if err != nil {
		logApiErr(r, fmt.Sprintf("liveboard list failed: %v", err))
		http.Error(w, "error fetching liveboards", http.StatusInternalServerError)
		return
	}
	returnJson(boards, w)
}

type CreateLiveboardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateLiveboardResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

func (a *API) CreateLiveboard(w http.ResponseWriter, r *http.Request) {
	var req CreateLiveboardRequest
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}
	if req.Name == "" {
		logApiErr(r, "missing liveboard name")
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	board, err := a.service.CreateLiveboard(r.Context(), req.Name, req.Description)
	if err != nil {
		logApiErr(r, fmt.Sprintf("liveboard create failed: %v", err))
		http.Error(w, "failed to create dashboard", http.StatusInternalServerError)
		return
	}
	returnJson(CreateLiveboardResponse{Success: true, ID: board.ID, Name: board.Name}, w)
}

type FavoriteRequest struct {
	LiveboardID string `json:"liveboardId"`
	Action      string `json:"action"`
}

func (a *API) LiveboardFavorite(w http.ResponseWriter, r *http.Request) {
	var req FavoriteRequest
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}

	mark := req.Action == "mark"
	if err := a.service.SetLiveboardFavorite(r.Context(), req.LiveboardID, mark); err != nil {
		logApiErr(r, fmt.Sprintf("favorite update failed: %v", err))
		http.Error(w, "error updating favorite", http.StatusInternalServerError)
		return
	}
	returnJson(map[string]bool{"success": true}, w)
}

type CopyLiveboardRequest struct {
	LiveboardID string `json:"liveboardId"`
	NewName     string `json:"newName"`
}

func (a *API) CopyLiveboard(w http.ResponseWriter, r *http.Request) {
	var req CopyLiveboardRequest
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}

	if err := a.service.CopyLiveboard(r.Context(), req.LiveboardID, req.NewName); err != nil {
		logApiErr(r, fmt.Sprintf("liveboard copy failed: %v", err))
		http.Error(w, "error copying liveboard", http.StatusInternalServerError)
		return
	}
	returnJson(map[string]bool{"success": true}, w)
}
