package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"topocat/internal/analysis"
	"topocat/internal/catalog"
	"topocat/internal/codec"
	"topocat/internal/domain"
	"topocat/internal/logging"
	"topocat/internal/repository"
	"topocat/internal/service"
)

// CatalogHandler serves topologies from a CatalogService
type CatalogHandler struct {
	svc           *service.CatalogService
	defaultFormat string
}

// NewCatalogHandler creates a new catalog handler. defaultFormat is used
// when a request names no format.
func NewCatalogHandler(svc *service.CatalogService, defaultFormat string) *CatalogHandler {
	if defaultFormat == "" {
		defaultFormat = "json"
	}
	return &CatalogHandler{svc: svc, defaultFormat: defaultFormat}
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ListCatalogs returns every catalog with its topology names
func (h *CatalogHandler) ListCatalogs(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Describe(), http.StatusOK)
}

// GetCatalog returns one catalog with its topology names
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Catalog(mux.Vars(r)["catalog"])
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	h.writeJSON(w, service.CatalogInfo{Name: c.Name(), Topologies: c.List()}, http.StatusOK)
}

// GetTopology builds a topology and writes it as a document
func (h *CatalogHandler) GetTopology(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	exporter, ok := h.exporter(w, r)
	if !ok {
		return
	}

	topo, err := h.svc.Topology(vars["catalog"], vars["name"])
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	h.writeDocument(w, r, exporter, topo)
}

// GetSnapshot writes a stored version of a topology as a document. The id
// query parameter selects a snapshot; without it the newest is returned.
func (h *CatalogHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	exporter, ok := h.exporter(w, r)
	if !ok {
		return
	}

	topo, err := h.svc.StoredTopology(r.Context(), vars["catalog"], vars["name"], r.URL.Query().Get("id"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	h.writeDocument(w, r, exporter, topo)
}

// exporter resolves the format query parameter, replying 400 when it is
// not supported
func (h *CatalogHandler) exporter(w http.ResponseWriter, r *http.Request) (codec.Exporter, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = h.defaultFormat
	}
	exporter, err := codec.ForFormat(format)
	if err != nil {
		h.writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return exporter, true
}

func (h *CatalogHandler) writeDocument(w http.ResponseWriter, r *http.Request, exporter codec.Exporter, topo *domain.Topology) {
	switch exporter.Format() {
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err := exporter.Export(topo, w); err != nil {
		logging.FromContext(r.Context()).WithError(err).Error("Failed to export topology")
	}
}

// GetSummary returns the structural summary of a topology
func (h *CatalogHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	summary, err := h.svc.Summary(vars["catalog"], vars["name"])
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	h.writeJSON(w, summary, http.StatusOK)
}

// PathResponse is the reply of GetPath
type PathResponse struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Hops int      `json:"hops"`
	Path []string `json:"path"`
}

// GetPath returns the fewest-hop path between two nodes
func (h *CatalogHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		h.writeError(w, "Invalid request", "from and to are required", http.StatusBadRequest)
		return
	}

	topo, err := h.svc.Topology(vars["catalog"], vars["name"])
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	path, err := analysis.New(topo).Path(from, to)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, analysis.ErrNoPath) {
			status = http.StatusUnprocessableEntity
		}
		h.writeError(w, "No path", err.Error(), status)
		return
	}

	h.writeJSON(w, PathResponse{From: from, To: to, Hops: len(path) - 1, Path: path}, http.StatusOK)
}

// Health reports liveness
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]any{
		"status":   "ok",
		"catalogs": len(h.svc.Catalogs()),
	}, http.StatusOK)
}

// writeLookupError maps catalog, snapshot and build errors to HTTP status codes
func (h *CatalogHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownCatalog), errors.Is(err, catalog.ErrUnknownTopologyName),
		errors.Is(err, repository.ErrNotFound):
		h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrNoRepository):
		h.writeError(w, "Snapshots unavailable", err.Error(), http.StatusServiceUnavailable)
	default:
		logging.FromContext(r.Context()).WithError(err).Warn("Failed to build topology")
		h.writeError(w, "Failed to build topology", err.Error(), http.StatusUnprocessableEntity)
	}
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, message, details string, status int) {
	h.writeJSON(w, ErrorResponse{Error: message, Details: details}, status)
}
