package render

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var tocHeading = regexp.MustCompile(`(?i)^(?:(?:table[ -]of[ -])?contents?|toc)$`)

// tocTransformer replaces the body of the first "Contents" section with a nested
// list of links to the headings that follow it, up to the first heading
// shallower than the marker.
type tocTransformer struct{}

func (t *tocTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var marker *ast.Heading
	var entries []*ast.Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		if marker == nil {
			if tocHeading.MatchString(nodeText(h, source)) {
				marker = h
			}
			continue
		}
		// A shallower heading closes the section the marker belongs to.
		if h.Level < marker.Level {
			break
		}
		entries = append(entries, h)
	}
	if marker == nil || len(entries) == 0 {
		return
	}

	// Drop whatever sits between the marker and the next heading.
	for n := marker.NextSibling(); n != nil; {
		if _, ok := n.(*ast.Heading); ok {
			break
		}
		next := n.NextSibling()
		doc.RemoveChild(doc, n)
		n = next
	}

	doc.InsertAfter(doc, marker, buildTOC(entries, source))
}

// buildTOC nests each heading under the closest preceding heading that is
// shallower than it. A frame's level is the shallowest level listed in it.
func buildTOC(entries []*ast.Heading, source []byte) *ast.List {
	type frame struct {
		level int // 0 until the first item is added
		list  *ast.List
	}
	stack := []*frame{{list: newTightList()}}

	for _, h := range entries {
		for len(stack) > 1 && h.Level <= stack[len(stack)-2].level {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if top.level != 0 && h.Level > top.level {
			parent := top.list.LastChild()
			sub := newTightList()
			parent.AppendChild(parent, sub)
			top = &frame{level: h.Level, list: sub}
			stack = append(stack, top)
		}
		if top.level == 0 || h.Level < top.level {
			top.level = h.Level
		}

		block := ast.NewTextBlock()
		block.AppendChild(block, tocEntry(h, source))
		item := ast.NewListItem(2)
		item.AppendChild(item, block)
		top.list.AppendChild(top.list, item)
	}
	return stack[0].list
}

func newTightList() *ast.List {
	l := ast.NewList('-')
	l.IsTight = true
	return l
}

// tocEntry links to the heading when it has an id, and falls back to plain text.
func tocEntry(h *ast.Heading, source []byte) ast.Node {
	label := ast.NewString([]byte(nodeText(h, source)))
	id, ok := h.AttributeString("id")
	if !ok {
		return label
	}
	value, ok := id.([]byte)
	if !ok || len(value) == 0 {
		return label
	}

	link := ast.NewLink()
	link.Destination = append([]byte("#"), value...)
	link.AppendChild(link, label)
	return link
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			if v.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
