package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_searcher.go -package=mocks gh-notes/internal/service Searcher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_renderer.go -package=mocks gh-notes/internal/service DocumentRenderer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_service.go -package=mocks -mock_names=NoteService=MockNoteService gh-notes/internal/service NoteService

import (
	"context"
	"fmt"
	"os"
	"path"
	"unicode/utf8"

	"gh-notes/internal/contextutil"
	"gh-notes/internal/render"
	"gh-notes/internal/search"
	"gh-notes/internal/vault"
)

// MaxQueryLength bounds the number of characters accepted in a search query.
const MaxQueryLength = 256

// Searcher is the search index as seen by the service layer.
type Searcher interface {
	// Search returns matches ordered best first.
	Search(query string) []search.Match
}

// DocumentRenderer converts raw markdown into HTML.
type DocumentRenderer interface {
	// Render converts raw markdown read from location.
	Render(location string, raw []byte) (render.Document, error)
}

// Note is a rendered document ready for display.
type Note struct {
	Location   string
	FileName   string
	Title      string
	Breadcrumb string
	HTML       string
	WordCount  int
}

// Tree is the navigation view of the collection.
type Tree struct {
	Nodes         []vault.Node
	DocumentCount int
}

// SearchRequest represents a search request in the domain layer.
type SearchRequest struct {
	Query string
}

// SearchResponse represents a search response in the domain layer.
type SearchResponse struct {
	Results []search.Match
}

// NoteService serves documents from the crawled collection.
type NoteService interface {
	// Tree returns the navigation tree built at startup.
	Tree(ctx context.Context) Tree
	// OpenNote reads and renders the document at requestPath.
	OpenNote(ctx context.Context, requestPath string) (Note, error)
	// Search runs a free-text query over titles and contents.
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
}

// noteService implements NoteService.
type noteService struct {
	snapshot *vault.Snapshot
	renderer DocumentRenderer
	searcher Searcher
}

// NewNoteService creates a new NoteService.
func NewNoteService(snapshot *vault.Snapshot, renderer DocumentRenderer, searcher Searcher) NoteService {
	return &noteService{
		snapshot: snapshot,
		renderer: renderer,
		searcher: searcher,
	}
}

func (s *noteService) Tree(ctx context.Context) Tree {
	return Tree{
		Nodes:         s.snapshot.Nodes(),
		DocumentCount: s.snapshot.DocumentCount(),
	}
}

// OpenNote reads the file from disk on every call, so edits show up without a
// restart even though the tree and search index do not.
func (s *noteService) OpenNote(ctx context.Context, requestPath string) (Note, error) {
	logger := contextutil.LoggerFromContext(ctx)

	location, absPath, err := s.snapshot.Resolve(requestPath)
	if err != nil {
		logger.WarnContext(ctx, "rejected note path", "path", requestPath, "error", err)
		return Note{}, noteError(err, requestPath, "failed to resolve note")
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		return Note{}, noteError(err, location, "failed to stat note")
	}
	if info.IsDir() {
		return Note{}, WrapError(ErrIsDirectory, location)
	}
	if !info.Mode().IsRegular() || !vault.IsDocument(info.Name()) {
		return Note{}, WrapError(ErrNotFound, location)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return Note{}, noteError(err, location, "failed to read note")
	}

	doc, err := s.renderer.Render(location, raw)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render note", "location", location, "error", err)
		return Note{}, WrapError(err, "failed to render note")
	}

	fileName := path.Base(location)
	title := vault.FormatTitle(fileName)
	if n, ok := s.snapshot.Lookup(location); ok {
		title = n.Title
	}

	logger.DebugContext(ctx, "note rendered", "location", location, "words", doc.WordCount)
	return Note{
		Location:   location,
		FileName:   fileName,
		Title:      title,
		Breadcrumb: vault.FormatLocation(location),
		HTML:       doc.HTML,
		WordCount:  doc.WordCount,
	}, nil
}

func (s *noteService) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if utf8.RuneCountInString(req.Query) > MaxQueryLength {
		logger.WarnContext(ctx, "search query too long", "length", utf8.RuneCountInString(req.Query))
		return SearchResponse{}, &ValidationError{
			Field:   "query",
			Message: fmt.Sprintf("must be at most %d characters", MaxQueryLength),
		}
	}

	results := s.searcher.Search(req.Query)
	if results == nil {
		results = []search.Match{}
	}

	logger.InfoContext(ctx, "search processed", "query_length", len(req.Query), "results", len(results))
	return SearchResponse{Results: results}, nil
}
