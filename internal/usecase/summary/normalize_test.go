package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tldr-summary/internal/infra/htmltext"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(htmltext.NewFormatter())
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"html fence", "```html\n<p>hi</p>\n```", "<p>hi</p>"},
		{"bare fence", "```\nplain\n```", "plain"},
		{"other language", "```markdown\n- a\n```", "- a"},
		{"inline fence without newline", "```hello world```", "hello world"},
		{"inline code", "use `go test` now", "use go test now"},
		{"fence inside html", "<p>intro</p>\n```html\n<ul><li>x</li></ul>\n```", "<p>intro</p>\n<ul><li>x</li></ul>"},
		{"no fences", "nothing here", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestStructurePlainText(t *testing.T) {
	got := StructurePlainText("Intro & more\n- one\n* two\n• three\n\nOutro <3")
	want := strings.Join([]string{
		"<p>Intro &amp; more</p>",
		"<ul>",
		"<li>one</li>",
		"<li>two</li>",
		"<li>three</li>",
		"</ul>",
		"<p>Outro &lt;3</p>",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestStructurePlainText_ListClosedAtEnd(t *testing.T) {
	assert.Equal(t, "<ul>\n<li>a</li>\n</ul>", StructurePlainText("- a"))
}

func TestStructurePlainText_MarkerNeedsWhitespace(t *testing.T) {
	assert.Equal(t, "<p>-dash</p>", StructurePlainText("-dash"))
}

func TestNormalizer_BulletRoundTrip(t *testing.T) {
	out := newTestNormalizer().Normalize("- a\n- b\n\nc")

	assert.Equal(t, 1, strings.Count(out, "<ul>"))
	assert.Equal(t, 2, strings.Count(out, "<li>"))
	assert.Contains(t, out, "<li>a</li>")
	assert.Contains(t, out, "<li>b</li>")
	assert.Contains(t, out, "<p>c</p>")
	assert.Less(t, strings.Index(out, "</ul>"), strings.Index(out, "<p>c</p>"))
}

func TestNormalizer_SanitizerSafety(t *testing.T) {
	out := newTestNormalizer().Normalize("<script>alert(1)</script><p>hi</p>")
	assert.Contains(t, out, "<p>hi</p>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert(1)")
}

func TestNormalizer_StripsDangerousAttributes(t *testing.T) {
	out := newTestNormalizer().Normalize(`<p onmouseover="x()">a</p><iframe src="//evil"></iframe><img src=x onerror=y>`)
	assert.Equal(t, "<p>a</p>", out)
}

func TestNormalizer_BlankInput(t *testing.T) {
	n := newTestNormalizer()
	for _, in := range []string{"", "   ", "\n\n", "```\n\n```", "``` ```"} {
		assert.Equal(t, "", n.Normalize(in), "input %q", in)
	}
}

func TestNormalizer_HTMLIsNotReEscaped(t *testing.T) {
	out := newTestNormalizer().Normalize("<p>Tom &amp; Jerry</p>")
	assert.Equal(t, "<p>Tom &amp; Jerry</p>", out)
}

func TestNormalizer_FencedHTML(t *testing.T) {
	out := newTestNormalizer().Normalize("```html\n<ul><li>x</li></ul>\n<p>y</p>\n```")
	assert.Equal(t, "<ul><li>x</li></ul>\n<p>y</p>", out)
}

func TestNormalizer_BareTextAroundHTMLIsWrapped(t *testing.T) {
	out := newTestNormalizer().Normalize("Summary:<ul><li>x</li></ul>Read more.")
	assert.Equal(t, "<p>Summary:</p>\n<ul><li>x</li></ul>\n<p>Read more.</p>", out)
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := newTestNormalizer()
	inputs := []string{
		"<p>hi</p><ul><li>a &amp; b</li></ul>",
		"<h2>Title</h2>text under title",
		"<blockquote>quoted</blockquote><pre><code>x := 1</code></pre>",
		"<p><strong>Bold</strong> and <em>em</em></p>",
		"- a\n- b\n\nc",
		"plain line one\nplain line two",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
	}
}
