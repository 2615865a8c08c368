package handlers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

// HighlightStylesheet is the generated stylesheet served next to the embedded assets.
const HighlightStylesheet = "chroma.css"

// HighlightStyler writes the CSS for highlighted code blocks.
type HighlightStyler interface {
	WriteHighlightCSS(w io.Writer) error
}

// StaticHandler serves the embedded assets under /static/.
type StaticHandler struct {
	files        http.Handler
	highlightCSS []byte
	etags        map[string]string // Keyed by asset name below /static/
}

// NewStaticHandler builds the asset handler. The highlight stylesheet is
// generated once here.
func NewStaticHandler(styler HighlightStyler) (*StaticHandler, error) {
	var css bytes.Buffer
	if err := styler.WriteHighlightCSS(&css); err != nil {
		return nil, fmt.Errorf("failed to generate highlight stylesheet: %w", err)
	}

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	return &StaticHandler{
		files:        http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
		highlightCSS: css.Bytes(),
		etags:        computeStaticETags(css.Bytes()),
	}, nil
}

// ServeHTTP serves one asset with cache headers. Unknown names fall through
// to the file server, which answers 404.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/static/")
	if etag, ok := h.etags[name]; ok {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	if name == HighlightStylesheet {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		_, _ = w.Write(h.highlightCSS)
		return
	}
	h.files.ServeHTTP(w, r)
}

// computeStaticETags hashes each embedded asset and the generated stylesheet.
func computeStaticETags(highlightCSS []byte) map[string]string {
	etags := map[string]string{HighlightStylesheet: etagOf(highlightCSS)}
	entries, _ := staticFS.ReadDir("static")
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := staticFS.ReadFile("static/" + entry.Name())
		if err != nil {
			continue
		}
		etags[entry.Name()] = etagOf(data)
	}
	return etags
}

func etagOf(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:])[:16] + `"`
}
