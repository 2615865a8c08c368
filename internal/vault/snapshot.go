package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ErrInvalidPath is returned when a requested path is empty or escapes the notes root.
var ErrInvalidPath = errors.New("invalid path")

// Snapshot is the result of crawling the notes folder once at startup.
// It is never modified after NewSnapshot returns, so it can be shared freely.
type Snapshot struct {
	root       string
	nodes      []Node
	records    []Record
	byLocation map[string]Node
}

// NewSnapshot crawls root and returns the resulting tree and search records.
// It fails if root cannot be listed.
func NewSnapshot(ctx context.Context, root string) (*Snapshot, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve notes folder %s: %w", root, err)
	}

	nodes, records, err := Crawl(ctx, absRoot, "")
	if err != nil {
		return nil, fmt.Errorf("failed to crawl notes folder: %w", err)
	}

	s := &Snapshot{
		root:       absRoot,
		nodes:      nodes,
		records:    records,
		byLocation: make(map[string]Node),
	}
	s.indexNodes(nodes)
	return s, nil
}

func (s *Snapshot) indexNodes(nodes []Node) {
	for _, n := range nodes {
		s.byLocation[n.Location] = n
		if n.IsDir() {
			s.indexNodes(n.Children)
		}
	}
}

// Root returns the absolute path of the notes folder.
func (s *Snapshot) Root() string {
	return s.root
}

// Nodes returns the top level of the tree. Callers must not modify nested children.
func (s *Snapshot) Nodes() []Node {
	return slices.Clone(s.nodes)
}

// Records returns one search record per document, in crawl order.
func (s *Snapshot) Records() []Record {
	return slices.Clone(s.records)
}

// DocumentCount returns the number of documents found by the crawl.
func (s *Snapshot) DocumentCount() int {
	return len(s.records)
}

// Lookup returns the node stored under location, if any.
func (s *Snapshot) Lookup(location string) (Node, bool) {
	n, ok := s.byLocation[location]
	return n, ok
}

// Resolve maps a request path onto the filesystem beneath the notes root.
// It returns the cleaned location (with a leading slash) and the absolute path.
func (s *Snapshot) Resolve(requestPath string) (location string, absPath string, err error) {
	rel, err := cleanRelPath(requestPath)
	if err != nil {
		return "", "", err
	}
	abs, err := buildAbsPath(s.root, rel)
	if err != nil {
		return "", "", err
	}
	return "/" + rel, abs, nil
}

func cleanRelPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	for _, segment := range strings.Split(filepath.ToSlash(trimmed), "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: path traversal detected", ErrInvalidPath)
		}
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+trimmed), "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, raw)
	}
	return cleaned, nil
}

func buildAbsPath(root, rel string) (string, error) {
	root = filepath.Clean(root)
	abs := filepath.Join(root, filepath.FromSlash(rel))

	if !strings.HasPrefix(abs, root+string(os.PathSeparator)) && abs != root {
		return "", fmt.Errorf("%w: path escapes notes root", ErrInvalidPath)
	}
	return abs, nil
}
