package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	classNames  = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)
	blankTarget = regexp.MustCompile(`^_blank$`)
	relValues   = regexp.MustCompile(`^[a-z ]+$`)
)

// newPolicy extends the user-generated-content policy with what the other
// stages emit: chroma classes, link target/rel and task list checkboxes.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("class").Matching(classNames).OnElements("pre", "code", "span", "div")
	p.AllowAttrs("target").Matching(blankTarget).OnElements("a")
	p.AllowAttrs("rel").Matching(relValues).OnElements("a")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return p
}
