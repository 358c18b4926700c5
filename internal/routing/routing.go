// Package routing assembles the public HTTP surface: the /api subrouter,
// the cross-origin allow-list for the embedding pages, and request logging.
package routing

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/saivenkat-burle/tsembed/internal/api"
)

func BuildRouter(a *api.API, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	s := r.PathPrefix("/api/").Subrouter()
	s.HandleFunc("/login", a.Login).Methods(http.MethodPost)
	s.HandleFunc("/get-token", a.GetToken).Methods(http.MethodGet)
	s.HandleFunc("/get-abac-token", a.GetABACToken).Methods(http.MethodGet)
	s.HandleFunc("/liveboards", a.Liveboards).Methods(http.MethodGet)
	s.HandleFunc("/create-liveboard", a.CreateLiveboard).Methods(http.MethodPost)
	s.HandleFunc("/liveboard/favorite", a.LiveboardFavorite).Methods(http.MethodPost)
	s.HandleFunc("/liveboard/copy", a.CopyLiveboard).Methods(http.MethodPost)
	s.HandleFunc("/find-worksheet", a.FindWorksheet).Methods(http.MethodGet)
	s.HandleFunc("/columns", a.Columns).Methods(http.MethodPost)
	s.HandleFunc("/tml/export-by-name", a.ExportTMLByName).Methods(http.MethodPost)
	s.HandleFunc("/tml/import", a.ImportTML).Methods(http.MethodPost)

	r.Use(requestLogger)

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
	return originGate(allowedOrigins, cors(r))
}

// originGate rejects browser requests from origins outside the allow-list
// before they reach any handler. Requests without an Origin header (curl,
// server-to-server) pass through.
func originGate(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && !allowed[origin] {
			log.Printf("%s %s: origin %s not allowed\n", r.Method, r.RequestURI, origin)
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger tags every request with a short id so interleaved log lines
// from concurrent requests stay attributable.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		log.Printf("[%s] %s %s\n", id[:8], r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}
