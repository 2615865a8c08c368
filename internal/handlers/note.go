package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"gh-notes/internal/contextutil"
	"gh-notes/internal/service"
)

// NoteHandler serves markdown notes as rendered HTML pages.
type NoteHandler struct {
	notes service.NoteService
	views *Views
}

// noteView holds template data for rendered note pages.
type noteView struct {
	Location   string
	FileName   string
	Breadcrumb string
	Subtitle   string
	HTML       template.HTML
}

// NewNoteHandler creates a new handler for serving note files.
func NewNoteHandler(notes service.NoteService, views *Views) *NoteHandler {
	return &NoteHandler{
		notes: notes,
		views: views,
	}
}

// ServeHTTP renders the requested note. Directories redirect to the index and
// unknown locations get the not-found page.
func (h *NoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	// r.URL.Path is already percent-decoded.
	requestPath := strings.TrimPrefix(r.URL.Path, "/")

	tree := h.notes.Tree(ctx)
	note, err := h.notes.OpenNote(ctx, requestPath)
	if err != nil {
		h.handleOpenError(w, r, tree, requestPath, err)
		return
	}

	page := Page{
		Tree:   tree.Nodes,
		Active: note.Location,
		Title:  note.Title,
		Data: noteView{
			Location:   note.Location,
			FileName:   note.FileName,
			Breadcrumb: note.Breadcrumb,
			Subtitle:   wordsLabel(note.WordCount),
			// Sanitized by the renderer.
			HTML: template.HTML(note.HTML),
		},
	}
	if err := h.views.Render(w, r, http.StatusOK, PageNote, page); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "location", note.Location, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
	}
}

// handleOpenError maps OpenNote failures to redirects and HTML error pages.
func (h *NoteHandler) handleOpenError(w http.ResponseWriter, r *http.Request, tree service.Tree, requestPath string, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if errors.Is(err, service.ErrIsDirectory) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		logger.InfoContext(ctx, "note not found", "path", requestPath)
		page := Page{
			Tree:   tree.Nodes,
			Active: "/" + strings.Trim(requestPath, "/"),
			Title:  "Not found",
		}
		if err := h.views.Render(w, r, http.StatusNotFound, PageNotFound, page); err != nil {
			logger.ErrorContext(ctx, "failed to render not found page", "error", err)
			http.Error(w, "note not found", http.StatusNotFound)
		}
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	logger.ErrorContext(ctx, "failed to open note", "path", requestPath, "error", err)
	http.Error(w, "failed to render note", http.StatusInternalServerError)
}
