package htmltext

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blankLines = regexp.MustCompile(`\n[ \t]*\n\s*`)

// blockElements are never wrapped in a paragraph.
var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Li:         true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
}

// AutoParagraph wraps top-level runs of text and inline elements in <p> tags.
// Blank lines inside top-level text split a run into separate paragraphs and
// single newlines inside a paragraph become <br/>. Block elements are rendered
// unchanged, so the output of AutoParagraph is a fixed point of AutoParagraph.
func (f *Formatter) AutoParagraph(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	body, err := parseBody(fragment)
	if err != nil {
		return fragment
	}

	var parts []string
	var para bytes.Buffer
	closePara := func() {
		chunk := strings.TrimSpace(para.String())
		para.Reset()
		if chunk == "" {
			return
		}
		parts = append(parts, "<p>"+strings.ReplaceAll(chunk, "\n", "<br/>\n")+"</p>")
	}

	for n := body.FirstChild; n != nil; n = n.NextSibling {
		switch {
		case n.Type == html.ElementNode && blockElements[n.DataAtom]:
			closePara()
			var b bytes.Buffer
			if err := html.Render(&b, n); err != nil {
				return fragment
			}
			parts = append(parts, b.String())
		case n.Type == html.TextNode:
			for i, piece := range blankLines.Split(n.Data, -1) {
				if i > 0 {
					closePara()
				}
				if err := html.Render(&para, &html.Node{Type: html.TextNode, Data: piece}); err != nil {
					return fragment
				}
			}
		case n.Type == html.ElementNode:
			if err := html.Render(&para, n); err != nil {
				return fragment
			}
		}
	}
	closePara()

	return strings.Join(parts, "\n")
}

func parseBody(fragment string) (*html.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}, nil
	}
	return body.Get(0), nil
}
