package summary

import (
	"html"
	"regexp"
	"strings"
)

var (
	fencedBlock = regexp.MustCompile("(?s)```(?:[A-Za-z0-9_+-]+[ \\t]*\\n|[ \\t]*\\n?)(.*?)\\n?```")
	inlineCode  = regexp.MustCompile("`([^`]+)`")
	htmlTag     = regexp.MustCompile(`<[^>]+>`)
	bulletLine  = regexp.MustCompile(`^[-*•]\s+(.+)$`)
)

// Normalizer converts raw model output into sanitized display HTML.
// It holds no mutable state.
type Normalizer struct {
	formatter HTMLFormatter
}

// NewNormalizer creates a Normalizer backed by formatter.
func NewNormalizer(formatter HTMLFormatter) *Normalizer {
	return &Normalizer{formatter: formatter}
}

// Normalize strips markdown code fences, structures plain text into
// paragraphs and lists, sanitizes the result and wraps stray text in
// paragraphs. Text that already contains tags is not re-escaped. Blank input
// yields "".
func (n *Normalizer) Normalize(raw string) string {
	text := StripCodeFences(raw)
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if !htmlTag.MatchString(text) {
		text = StructurePlainText(text)
	}
	text = n.formatter.Sanitize(text)
	return strings.TrimSpace(n.formatter.AutoParagraph(text))
}

// StripCodeFences removes fenced code block markers and inline backticks,
// keeping the enclosed text.
func StripCodeFences(text string) string {
	text = fencedBlock.ReplaceAllString(text, "$1")
	text = inlineCode.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// StructurePlainText escapes each line and emits bullet runs as <ul> lists
// and every other non-blank line as a paragraph. A blank line closes an open list.
func StructurePlainText(text string) string {
	var out []string
	inList := false
	closeList := func() {
		if inList {
			out = append(out, "</ul>")
			inList = false
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			closeList()
			continue
		}
		if m := bulletLine.FindStringSubmatch(line); m != nil {
			if !inList {
				out = append(out, "<ul>")
				inList = true
			}
			out = append(out, "<li>"+html.EscapeString(m[1])+"</li>")
			continue
		}
		closeList()
		out = append(out, "<p>"+html.EscapeString(line)+"</p>")
	}
	closeList()

	return strings.Join(out, "\n")
}
