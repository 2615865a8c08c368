package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"gh-notes/internal/render"
	"gh-notes/internal/search"
	"gh-notes/internal/service"
	"gh-notes/internal/service/mocks"
	"gh-notes/internal/vault"
)

func newTestSnapshot(t *testing.T) *vault.Snapshot {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"index.md":               "# Welcome",
		"work/project-a/todo.md": "- ship it",
		"image.png":              "png",
	}
	for rel, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}

	s, err := vault.NewSnapshot(context.Background(), root)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return s
}

func TestNoteService_Tree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshot := newTestSnapshot(t)
	svc := service.NewNoteService(snapshot, mocks.NewMockDocumentRenderer(ctrl), mocks.NewMockSearcher(ctrl))

	tree := svc.Tree(context.Background())
	if tree.DocumentCount != 2 {
		t.Errorf("Tree().DocumentCount = %d, want 2", tree.DocumentCount)
	}
	if len(tree.Nodes) != 2 {
		t.Errorf("Tree().Nodes = %d, want 2", len(tree.Nodes))
	}
}

func TestNoteService_OpenNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshot := newTestSnapshot(t)

	tests := []struct {
		name        string
		requestPath string
		mockSetup   func(*mocks.MockDocumentRenderer)
		wantErr     error
		check       func(service.Note) bool
	}{
		{
			name:        "nested note",
			requestPath: "/work/project-a/todo.md",
			mockSetup: func(m *mocks.MockDocumentRenderer) {
				m.EXPECT().
					Render("/work/project-a/todo.md", []byte("- ship it")).
					Return(render.Document{HTML: "<ul><li>ship it</li></ul>", WordCount: 3, SourceLocation: "/work/project-a/todo.md"}, nil)
			},
			check: func(n service.Note) bool {
				return n.Location == "/work/project-a/todo.md" &&
					n.FileName == "todo.md" &&
					n.Title == "Todo" &&
					n.Breadcrumb == "Work > Project A > Todo" &&
					n.HTML == "<ul><li>ship it</li></ul>" &&
					n.WordCount == 3
			},
		},
		{
			name:        "missing note",
			requestPath: "/nope.md",
			mockSetup:   func(m *mocks.MockDocumentRenderer) {},
			wantErr:     service.ErrNotFound,
		},
		{
			name:        "directory",
			requestPath: "/work",
			mockSetup:   func(m *mocks.MockDocumentRenderer) {},
			wantErr:     service.ErrIsDirectory,
		},
		{
			name:        "not a document",
			requestPath: "/image.png",
			mockSetup:   func(m *mocks.MockDocumentRenderer) {},
			wantErr:     service.ErrNotFound,
		},
		{
			name:        "path traversal",
			requestPath: "/../secret.md",
			mockSetup:   func(m *mocks.MockDocumentRenderer) {},
			wantErr:     service.ErrInvalidInput,
		},
		{
			name:        "render failure",
			requestPath: "/index.md",
			mockSetup: func(m *mocks.MockDocumentRenderer) {
				m.EXPECT().
					Render("/index.md", gomock.Any()).
					Return(render.Document{}, render.ErrRender)
			},
			wantErr: render.ErrRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := mocks.NewMockDocumentRenderer(ctrl)
			tt.mockSetup(renderer)
			svc := service.NewNoteService(snapshot, renderer, mocks.NewMockSearcher(ctrl))

			note, err := svc.OpenNote(context.Background(), tt.requestPath)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("OpenNote(%q) error = %v, want %v", tt.requestPath, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenNote(%q) unexpected error: %v", tt.requestPath, err)
			}
			if tt.check != nil && !tt.check(note) {
				t.Errorf("OpenNote(%q) = %+v, validation failed", tt.requestPath, note)
			}
		})
	}
}

func TestNoteService_OpenNote_ReadsCurrentContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshot := newTestSnapshot(t)
	if err := os.WriteFile(filepath.Join(snapshot.Root(), "index.md"), []byte("# Edited"), 0644); err != nil {
		t.Fatalf("Failed to update file: %v", err)
	}

	renderer := mocks.NewMockDocumentRenderer(ctrl)
	renderer.EXPECT().
		Render("/index.md", []byte("# Edited")).
		Return(render.Document{HTML: "<h1>Edited</h1>"}, nil)

	svc := service.NewNoteService(snapshot, renderer, mocks.NewMockSearcher(ctrl))
	if _, err := svc.OpenNote(context.Background(), "/index.md"); err != nil {
		t.Fatalf("OpenNote() error = %v", err)
	}
}

func TestNoteService_SymlinkedDocumentIsUnlisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "zebra.md")
	if err := os.WriteFile(outside, []byte("zebra stripes"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "index.md"), []byte("# Welcome"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(root, "linked.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	snapshot, err := vault.NewSnapshot(context.Background(), root)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	index := search.Build(snapshot.Records(), search.DefaultOptions())
	svc := service.NewNoteService(snapshot, mocks.NewMockDocumentRenderer(ctrl), index)

	for _, n := range svc.Tree(context.Background()).Nodes {
		if n.Location == "/linked.md" {
			t.Error("Tree() should not list a symlinked document")
		}
	}

	resp, err := svc.Search(context.Background(), service.SearchRequest{Query: "zebra"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("Search() = %+v, want no results", resp.Results)
	}

	if _, err := svc.OpenNote(context.Background(), "/linked.md"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("OpenNote() error = %v, want %v", err, service.ErrNotFound)
	}
}

func TestNoteService_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshot := newTestSnapshot(t)

	tests := []struct {
		name      string
		query     string
		mockSetup func(*mocks.MockSearcher)
		wantErr   bool
		wantLen   int
	}{
		{
			name:  "matches",
			query: "ship",
			mockSetup: func(m *mocks.MockSearcher) {
				m.EXPECT().Search("ship").Return([]search.Match{{Location: "/work/project-a/todo.md", Title: "Todo", Score: 0.3}})
			},
			wantLen: 1,
		},
		{
			name:  "nil results become empty",
			query: "nothing",
			mockSetup: func(m *mocks.MockSearcher) {
				m.EXPECT().Search("nothing").Return(nil)
			},
			wantLen: 0,
		},
		{
			name:      "query too long",
			query:     strings.Repeat("a", service.MaxQueryLength+1),
			mockSetup: func(m *mocks.MockSearcher) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := mocks.NewMockSearcher(ctrl)
			tt.mockSetup(searcher)
			svc := service.NewNoteService(snapshot, mocks.NewMockDocumentRenderer(ctrl), searcher)

			resp, err := svc.Search(context.Background(), service.SearchRequest{Query: tt.query})

			if tt.wantErr {
				var validationErr *service.ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("Search() error = %v, want service.ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() unexpected error: %v", err)
			}
			if resp.Results == nil {
				t.Error("Search() results should never be nil")
			}
			if len(resp.Results) != tt.wantLen {
				t.Errorf("Search() returned %d results, want %d", len(resp.Results), tt.wantLen)
			}
		})
	}
}
