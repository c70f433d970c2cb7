package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_Sanitize(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "script removed with content",
			input:    "<script>alert(1)</script><p>hi</p>",
			expected: "<p>hi</p>",
		},
		{
			name:     "event handler attribute stripped",
			input:    `<p onclick="steal()">text</p>`,
			expected: "<p>text</p>",
		},
		{
			name:     "iframe dropped",
			input:    `<iframe src="https://evil.example"></iframe><strong>ok</strong>`,
			expected: "<strong>ok</strong>",
		},
		{
			name:     "disallowed wrapper keeps its text",
			input:    "<div><span>inner</span></div>",
			expected: "inner",
		},
		{
			name:     "allowed structure kept",
			input:    "<h2>Title</h2><ul><li><em>a</em></li></ul><blockquote>q</blockquote><pre><code>x</code></pre>",
			expected: "<h2>Title</h2><ul><li><em>a</em></li></ul><blockquote>q</blockquote><pre><code>x</code></pre>",
		},
		{
			name:     "links are not allowed",
			input:    `<a href="javascript:alert(1)">click</a>`,
			expected: "click",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Sanitize(tt.input))
		})
	}
}

func TestFormatter_SanitizeIsStable(t *testing.T) {
	f := NewFormatter()
	once := f.Sanitize(`<p>Tom &amp; Jerry &lt;3</p><ul><li>x</li></ul>`)
	assert.Equal(t, once, f.Sanitize(once))
}

func TestAllowedElements_ReturnsCopy(t *testing.T) {
	list := AllowedElements()
	list[0] = "script"
	assert.Equal(t, "p", AllowedElements()[0])
}
