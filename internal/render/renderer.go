// Package render turns markdown documents into sanitized HTML fragments.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

// ErrRender is returned when a document cannot be converted to HTML.
var ErrRender = errors.New("render failed")

// Options toggles the stages of the rendering pipeline.
type Options struct {
	TOC           bool // Insert a table of contents under a "Contents" heading
	Slugs         bool // Give headings stable id attributes
	ExternalLinks bool // Open off-site links in a new tab with safe rel attributes
	Highlight     bool // Syntax-highlight fenced code blocks
	Sanitize      bool // Run the serialized HTML through an allow-list policy

	LinkTarget     string
	LinkRel        []string
	HighlightStyle string
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{
		TOC:            true,
		Slugs:          true,
		ExternalLinks:  true,
		Highlight:      true,
		Sanitize:       true,
		LinkTarget:     "_blank",
		LinkRel:        []string{"noopener", "noreferer"},
		HighlightStyle: "github",
	}
}

// Document is the rendered form of one markdown file.
type Document struct {
	HTML           string
	WordCount      int
	SourceLocation string
}

// Renderer converts markdown to HTML. It holds no per-call state and is safe
// for concurrent use.
type Renderer struct {
	opts     Options
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// pipeline collects what the enabled stages contribute to the goldmark setup.
type pipeline struct {
	extensions   []goldmark.Extender
	parserOpts   []parser.Option
	transformers []util.PrioritizedValue
	policy       *bluemonday.Policy
}

type stage struct {
	name    string
	enabled bool
	apply   func(*pipeline)
}

// stages lists the pipeline in the order it is applied to a document.
func (o Options) stages() []stage {
	return []stage{
		{name: "parse", enabled: true, apply: func(p *pipeline) {
			p.extensions = append(p.extensions, extension.GFM)
		}},
		{name: "toc", enabled: o.TOC, apply: func(p *pipeline) {
			p.transformers = append(p.transformers, util.Prioritized(&tocTransformer{}, 100))
		}},
		{name: "slugs", enabled: o.Slugs, apply: func(p *pipeline) {
			p.parserOpts = append(p.parserOpts, parser.WithAutoHeadingID())
		}},
		{name: "external-links", enabled: o.ExternalLinks, apply: func(p *pipeline) {
			p.transformers = append(p.transformers, util.Prioritized(&externalLinkTransformer{
				target: o.LinkTarget,
				rel:    strings.Join(o.LinkRel, " "),
			}, 200))
		}},
		{name: "highlight", enabled: o.Highlight, apply: func(p *pipeline) {
			p.extensions = append(p.extensions, highlighting.NewHighlighting(
				highlighting.WithStyle(o.HighlightStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			))
		}},
		{name: "sanitize", enabled: o.Sanitize, apply: func(p *pipeline) {
			p.policy = newPolicy()
		}},
	}
}

// New builds a Renderer from the enabled stages of opts.
func New(opts Options) *Renderer {
	p := &pipeline{}
	for _, s := range opts.stages() {
		if s.enabled {
			s.apply(p)
		}
	}
	if len(p.transformers) > 0 {
		p.parserOpts = append(p.parserOpts, parser.WithASTTransformers(p.transformers...))
	}

	return &Renderer{
		opts: opts,
		markdown: goldmark.New(
			goldmark.WithExtensions(p.extensions...),
			goldmark.WithParserOptions(p.parserOpts...),
		),
		policy: p.policy,
	}
}

// Render converts raw markdown read from location into a Document.
// The same input always produces the same HTML.
func (r *Renderer) Render(location string, raw []byte) (Document, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert(raw, &buf); err != nil {
		return Document{}, fmt.Errorf("%w: convert markdown: %w", ErrRender, err)
	}

	html := buf.String()
	if r.policy != nil {
		html = r.policy.Sanitize(html)
	}

	return Document{
		HTML:           html,
		WordCount:      CountWords(string(raw)),
		SourceLocation: location,
	}, nil
}

// WriteHighlightCSS writes the stylesheet for the classes emitted by the
// highlight stage.
func (r *Renderer) WriteHighlightCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, styles.Get(r.opts.HighlightStyle)); err != nil {
		return fmt.Errorf("write highlight css: %w", err)
	}
	return nil
}

// CountWords counts whitespace-separated words. Blank input counts as zero.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
