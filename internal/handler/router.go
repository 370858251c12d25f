package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"topocat/internal/logging"
)

// NewRouter wires the read-only API. events, when not nil, is mounted at
// /api/events for Server-Sent Events.
func NewRouter(h *CatalogHandler, events http.Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/catalogs", h.ListCatalogs).Methods("GET")
	api.HandleFunc("/catalogs/{catalog}", h.GetCatalog).Methods("GET")
	api.HandleFunc("/catalogs/{catalog}/topologies/{name}", h.GetTopology).Methods("GET")
	api.HandleFunc("/catalogs/{catalog}/topologies/{name}/summary", h.GetSummary).Methods("GET")
	api.HandleFunc("/catalogs/{catalog}/topologies/{name}/path", h.GetPath).Methods("GET")
	api.HandleFunc("/catalogs/{catalog}/topologies/{name}/snapshot", h.GetSnapshot).Methods("GET")
	if events != nil {
		api.Handle("/events", events).Methods("GET")
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.writeError(w, "Not found", req.URL.Path, http.StatusNotFound)
	})

	return Chain(r, Recover, logging.RequestIDMiddleware)
}
