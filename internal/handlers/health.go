package handlers

import (
	"net/http"
	"time"

	"gh-notes/internal/contextutil"
	"gh-notes/internal/service"
)

// IndexSizer reports how many documents the search index holds.
type IndexSizer interface {
	Len() int
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	notes service.NoteService
	index IndexSizer
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(notes service.NoteService, index IndexSizer) *HealthHandler {
	return &HealthHandler{
		notes: notes,
		index: index,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "degraded"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Documents found by the startup crawl
	Documents int `json:"documents"`

	// Documents held by the search index
	Indexed int `json:"indexed"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP reports the size of the crawl snapshot and the search index.
// Returns 200 OK if both agree, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	documents := h.notes.Tree(ctx).DocumentCount
	indexed := h.index.Len()

	checks := map[string]string{"snapshot": "ok", "search_index": "ok"}
	var issues []string
	if indexed != documents {
		checks["search_index"] = "error"
		issues = append(issues, "search_index_out_of_sync")
		logger.WarnContext(ctx, "search index does not match snapshot", "documents", documents, "indexed", indexed)
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Documents: documents,
		Indexed:   indexed,
		Checks:    checks,
		Issues:    issues,
	})
}
