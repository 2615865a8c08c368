package render

import (
	"bytes"
	"net/url"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// externalLinkTransformer marks off-site links so they open in a new browsing
// context without a window.opener reference.
type externalLinkTransformer struct {
	target string
	rel    string
}

func (t *externalLinkTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch link := n.(type) {
		case *ast.Link:
			if isExternal(link.Destination) {
				t.mark(link)
			}
		case *ast.AutoLink:
			if link.AutoLinkType == ast.AutoLinkURL && isExternalAutoLink(link.URL(source)) {
				t.mark(link)
			}
		}
		return ast.WalkContinue, nil
	})
}

func (t *externalLinkTransformer) mark(n ast.Node) {
	if t.target != "" {
		n.SetAttributeString("target", []byte(t.target))
	}
	if t.rel != "" {
		n.SetAttributeString("rel", []byte(t.rel))
	}
}

// isExternal reports whether dest points off-site: an absolute http(s) URL or
// a protocol-relative URL. A bare "www.host" destination is a relative path.
func isExternal(dest []byte) bool {
	if bytes.HasPrefix(dest, []byte("//")) {
		return true
	}
	u, err := url.Parse(string(dest))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isExternalAutoLink also accepts "www." URLs, which linkify renders with an
// http scheme.
func isExternalAutoLink(dest []byte) bool {
	return isExternal(dest) || bytes.HasPrefix(bytes.ToLower(dest), []byte("www."))
}
