package assistant

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/garyellow/syllabus-assistant-go/internal/sliceutil"
	"github.com/garyellow/syllabus-assistant-go/internal/syllabus"
)

// inlineLinkPattern matches [text](http...) with an optional title.
var inlineLinkPattern = regexp.MustCompile(`\[([^\]\n]+)\]\((https?://[^)\s]+)(?:\s+"[^"]*")?\)`)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// StripInlineLinks reduces markdown inline links to their text.
func StripInlineLinks(s string) string {
	return inlineLinkPattern.ReplaceAllString(s, "$1")
}

// CitedLessonLinks returns the lesson links cited in a markdown reply,
// whether written as inline links, autolinks or bare URLs, in order of
// first occurrence.
func CitedLessonLinks(reply string) []string {
	src := []byte(reply)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var links []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest string
		switch node := n.(type) {
		case *ast.Link:
			dest = string(node.Destination)
		case *ast.AutoLink:
			dest = string(node.URL(src))
		default:
			return ast.WalkContinue, nil
		}
		links = append(links, syllabus.ExtractLessonLinks(dest)...)
		return ast.WalkSkipChildren, nil
	})
	return sliceutil.Unique(links)
}
