package handlers

import (
	"encoding/json"
	"net/http"

	"gh-notes/internal/contextutil"
	"gh-notes/internal/search"
	"gh-notes/internal/service"
)

// maxSearchBody caps the size of a search request body.
const maxSearchBody = 64 << 10

// SearchHandler serves the search form and answers search queries.
type SearchHandler struct {
	notes service.NoteService
	views *Views
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(notes service.NoteService, views *Views) *SearchHandler {
	return &SearchHandler{
		notes: notes,
		views: views,
	}
}

// SearchRequest represents the HTTP request payload for search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse represents the HTTP response payload for search.
type SearchResponse struct {
	Results []search.Match `json:"results"`
}

// searchView holds template data for the search form.
type searchView struct {
	MaxQueryLength int
}

// ServeHTTP renders the form on GET and runs the query on POST.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.serveForm(w, r)
	case http.MethodPost:
		h.serveQuery(w, r)
	default:
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *SearchHandler) serveForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := Page{
		Tree:   h.notes.Tree(ctx).Nodes,
		Active: "/search",
		Title:  "Search",
		Data:   searchView{MaxQueryLength: service.MaxQueryLength},
	}
	if err := h.views.Render(w, r, http.StatusOK, PageSearch, page); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render search page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func (h *SearchHandler) serveQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSearchBody)).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Convert HTTP request to service request
	svcResp, err := h.notes.Search(ctx, service.SearchRequest{Query: req.Query})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to process search request")
		return
	}

	writeJSON(ctx, w, http.StatusOK, SearchResponse{Results: svcResp.Results})
}
