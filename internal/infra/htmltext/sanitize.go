// Package htmltext turns untrusted HTML fragments into display-safe markup.
// Sanitizing is backed by bluemonday and paragraph wrapping by goquery.
package htmltext

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// allowedElements is the structural and text-formatting subset kept in summaries.
var allowedElements = []string{
	"p", "br",
	"ul", "ol", "li",
	"em", "strong",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"blockquote", "code", "pre",
}

// Formatter sanitizes and paragraph-wraps HTML fragments.
// It is safe for concurrent use.
type Formatter struct {
	policy *bluemonday.Policy
}

// NewFormatter returns a Formatter using the summary allow-list.
func NewFormatter() *Formatter {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedElements...)
	return &Formatter{policy: p}
}

// Sanitize strips every element and attribute outside the allow-list.
// Script and style elements are dropped together with their content.
func (f *Formatter) Sanitize(fragment string) string {
	return strings.TrimSpace(f.policy.Sanitize(fragment))
}

// AllowedElements returns a copy of the element allow-list.
func AllowedElements() []string {
	out := make([]string, len(allowedElements))
	copy(out, allowedElements)
	return out
}
