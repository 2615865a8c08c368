package vault

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.md":      "welcome",
		"work/todo.md":  "ship it",
		"work/ideas.md": "more ideas",
	})

	s, err := NewSnapshot(context.Background(), root)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return s
}

func TestNewSnapshot(t *testing.T) {
	s := newTestSnapshot(t)

	if s.DocumentCount() != 3 {
		t.Errorf("DocumentCount() = %d, want 3", s.DocumentCount())
	}
	if len(s.Nodes()) != 2 {
		t.Errorf("Nodes() = %d top-level nodes, want 2", len(s.Nodes()))
	}
	if len(s.Records()) != 3 {
		t.Errorf("Records() = %d, want 3", len(s.Records()))
	}
	if !filepath.IsAbs(s.Root()) {
		t.Errorf("Root() = %q, want absolute path", s.Root())
	}
}

func TestNewSnapshot_MissingRoot(t *testing.T) {
	s, err := NewSnapshot(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("NewSnapshot() expected error, got nil")
	}
	if s != nil {
		t.Error("NewSnapshot() should return nil on error")
	}
}

func TestSnapshot_RecordsIsACopy(t *testing.T) {
	s := newTestSnapshot(t)

	records := s.Records()
	records[0].Title = "changed"

	if s.Records()[0].Title == "changed" {
		t.Error("Records() should not expose internal storage")
	}
}

func TestSnapshot_Lookup(t *testing.T) {
	s := newTestSnapshot(t)

	tests := []struct {
		name     string
		location string
		wantOK   bool
		wantKind Kind
	}{
		{name: "root document", location: "/index.md", wantOK: true, wantKind: KindFile},
		{name: "directory", location: "/work", wantOK: true, wantKind: KindDirectory},
		{name: "nested document", location: "/work/todo.md", wantOK: true, wantKind: KindFile},
		{name: "unknown", location: "/nope.md", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := s.Lookup(tt.location)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.location, ok, tt.wantOK)
			}
			if ok && n.Kind != tt.wantKind {
				t.Errorf("Lookup(%q) kind = %s, want %s", tt.location, n.Kind, tt.wantKind)
			}
		})
	}
}

func TestSnapshot_Resolve(t *testing.T) {
	s := newTestSnapshot(t)

	tests := []struct {
		name         string
		requestPath  string
		wantLocation string
		wantRel      string
		wantErr      bool
	}{
		{name: "nested note", requestPath: "/work/todo.md", wantLocation: "/work/todo.md", wantRel: "work/todo.md"},
		{name: "without leading slash", requestPath: "index.md", wantLocation: "/index.md", wantRel: "index.md"},
		{name: "redundant slashes", requestPath: "//work//todo.md", wantLocation: "/work/todo.md", wantRel: "work/todo.md"},
		{name: "traversal", requestPath: "/../etc/passwd", wantErr: true},
		{name: "embedded traversal", requestPath: "/work/../../secret.md", wantErr: true},
		{name: "empty", requestPath: "", wantErr: true},
		{name: "root only", requestPath: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			location, abs, err := s.Resolve(tt.requestPath)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPath) {
					t.Errorf("Resolve(%q) error = %v, want ErrInvalidPath", tt.requestPath, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.requestPath, err)
			}
			if location != tt.wantLocation {
				t.Errorf("Resolve(%q) location = %q, want %q", tt.requestPath, location, tt.wantLocation)
			}
			wantAbs := filepath.Join(s.Root(), filepath.FromSlash(tt.wantRel))
			if abs != wantAbs {
				t.Errorf("Resolve(%q) abs = %q, want %q", tt.requestPath, abs, wantAbs)
			}
		})
	}
}
