package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saivenkat-burle/tsembed/internal/service"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login relays an interactive upstream login. On success the rewritten
// session cookies ride back to the browser on a 204.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}

	cookies, err := a.service.InteractiveLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		logApiErr(r, fmt.Sprintf("login failed: %v", err))
		if errors.Is(err, service.ErrNoSession) {
			errorJson("no session cookie received from upstream", http.StatusUnauthorized, w)
			return
		}
		errorJson("upstream login failed", http.StatusInternalServerError, w)
		return
	}

	for _, cookie := range cookies {
		w.Header().Add("Set-Cookie", cookie)
	}
	w.WriteHeader(http.StatusNoContent)
}
