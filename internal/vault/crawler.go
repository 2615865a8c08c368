package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gh-notes/internal/contextutil"
)

// Kind distinguishes directory nodes from document nodes.
type Kind string

const (
	KindDirectory Kind = "directory"
	KindFile      Kind = "file"
)

// Node is one element of the navigation tree.
type Node struct {
	Kind     Kind   `json:"type"`
	Location string `json:"location"` // Slash-separated path from the notes root (e.g., "/work/todo.md")
	Title    string `json:"title"`
	Children []Node `json:"files,omitempty"` // Always nil for files
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool {
	return n.Kind == KindDirectory
}

// Record is the searchable form of a document found during the crawl.
type Record struct {
	Location string
	Title    string
	Content  string // Raw, unrendered document text
}

// Crawl lists root/location recursively and returns the navigation tree for that
// directory together with one Record per document found beneath it.
//
// Entries are visited in lexicographic order of their names. At every level the
// directories come first, then the documents, each group keeping that order.
// Entries that are neither regular documents nor directories are ignored,
// symlinks included, as are entries that cannot be stat'ed or read. Only a failure to list root/location itself is
// returned as an error.
func Crawl(ctx context.Context, root, location string) ([]Node, []Record, error) {
	var records []Record
	nodes, err := crawl(ctx, root, location, &records)
	if err != nil {
		return nil, nil, err
	}
	return nodes, records, nil
}

func crawl(ctx context.Context, root, location string, records *[]Record) ([]Node, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logger := contextutil.LoggerFromContext(ctx)
	dir := filepath.Join(root, filepath.FromSlash(location))

	// os.ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var directories, files []Node
	for _, entry := range entries {
		name := entry.Name()
		entryLocation := location + "/" + name
		entryPath := filepath.Join(dir, name)

		info, err := os.Lstat(entryPath)
		if err != nil {
			logger.WarnContext(ctx, "skipping entry that cannot be stat'ed", "path", entryPath, "error", err)
			continue
		}

		if info.Mode().IsRegular() && IsDocument(name) {
			content, err := os.ReadFile(entryPath)
			if err != nil {
				logger.WarnContext(ctx, "skipping unreadable document", "path", entryPath, "error", err)
				continue
			}
			title := FormatTitle(name)
			files = append(files, Node{
				Kind:     KindFile,
				Location: entryLocation,
				Title:    title,
			})
			*records = append(*records, Record{
				Location: entryLocation,
				Title:    title,
				Content:  string(content),
			})
			continue
		}
		// Symlinks are neither regular files nor directories under Lstat.
		if !info.IsDir() {
			continue
		}

		children, err := crawl(ctx, root, entryLocation, records)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.WarnContext(ctx, "skipping unreadable directory", "path", entryPath, "error", err)
			continue
		}
		directories = append(directories, Node{
			Kind:     KindDirectory,
			Location: entryLocation,
			Title:    FormatTitle(name),
			Children: children,
		})
	}

	nodes := make([]Node, 0, len(directories)+len(files))
	nodes = append(nodes, directories...)
	nodes = append(nodes, files...)
	return nodes, nil
}
