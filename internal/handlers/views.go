package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"gh-notes/internal/vault"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Views.Render.
const (
	PageIndex    = "index"
	PageSearch   = "search"
	PageNote     = "note"
	PageNotFound = "404"
)

// Site holds display settings shared by every page.
type Site struct {
	Name            string
	GithubNotesLink string
	Font            string
	DarkModeToggle  bool
}

// Page is the data passed to the layout. Data carries the page-specific view.
type Page struct {
	Site   Site
	Tree   []vault.Node
	Active string // Location highlighted in the menu
	Title  string
	Data   any
}

// menuView is the argument of the recursive "tree" template.
type menuView struct {
	Nodes  []vault.Node
	Active string
}

// Views renders the embedded HTML templates.
type Views struct {
	site  Site
	pages map[string]*template.Template
}

// NewViews parses every page together with the shared layout.
func NewViews(site Site) (*Views, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{PageIndex, PageSearch, PageNote, PageNotFound} {
		tmpl, err := template.New(name).Funcs(funcMap()).ParseFS(templateFS,
			"templates/layout.html",
			"templates/tree.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Views{site: site, pages: pages}, nil
}

// Site returns the display settings the views were built with.
func (v *Views) Site() Site {
	return v.site
}

// Render writes the named page with the given status. Requests sent by the
// client-side navigation (X-PJAX header) receive the content block only.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) error {
	tmpl, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	page.Site = v.site

	block := "layout"
	if isPJAX(r) {
		block = "content"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, block, page); err != nil {
		return fmt.Errorf("failed to execute %s template: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func isPJAX(r *http.Request) bool {
	return r.Header.Get("X-PJAX") != ""
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"isEqual":        isEqual,
		"pluralise":      pluralise,
		"commify":        commify,
		"formatTitle":    vault.FormatTitle,
		"formatLocation": vault.FormatLocation,
		"menu": func(nodes []vault.Node, active string) menuView {
			return menuView{Nodes: nodes, Active: active}
		},
	}
}

// isEqual compares the printed form of both values, so 1 and "1" are equal.
func isEqual(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// pluralise returns n followed by the singular or plural form.
func pluralise(n int, singular, plural string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// commify inserts thousands separators: 1234567 becomes "1,234,567".
func commify(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b bytes.Buffer
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// wordsLabel formats a word count for a note subtitle.
func wordsLabel(n int) string {
	if n == 1 {
		return commify(n) + " word"
	}
	return commify(n) + " words"
}
