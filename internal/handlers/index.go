package handlers

import (
	"net/http"

	"gh-notes/internal/contextutil"
	"gh-notes/internal/service"
)

// IndexHandler serves the root listing of the collection.
type IndexHandler struct {
	notes service.NoteService
	views *Views
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(notes service.NoteService, views *Views) *IndexHandler {
	return &IndexHandler{
		notes: notes,
		views: views,
	}
}

// ServeHTTP renders the index page with the document count and the menu tree.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	tree := h.notes.Tree(ctx)
	page := Page{
		Tree:   tree.Nodes,
		Active: "/",
		Data:   tree,
	}
	if err := h.views.Render(w, r, http.StatusOK, PageIndex, page); err != nil {
		logger.ErrorContext(ctx, "failed to render index", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
