package api

import (
	"fmt"
	"net/http"
)

// GetToken returns the service account's bearer token as raw text, minting a
// fresh one only when the cached token is stale.
func (a *API) GetToken(w http.ResponseWriter, r *http.Request) {
	token, err := a.service.ServiceToken(r.Context())
	if err != nil {
		logApiErr(r, fmt.Sprintf("token issuance failed: %v", err))
		http.Error(w, "error generating token", http.StatusInternalServerError)
		return
	}
	returnText(token, w)
}

// GetABACToken mints an attribute token with the configured default bindings.
func (a *API) GetABACToken(w http.ResponseWriter, r *http.Request) {
	token, err := a.service.AttributeToken(r.Context(), nil, 0)
	if err != nil {
		logApiErr(r, fmt.Sprintf("abac token issuance failed: %v", err))
		http.Error(w, "error generating abac token", http.StatusInternalServerError)
		return
	}
	returnText(token, w)
}
