// Package render turns submission bodies into HTML for preview.
package render

import (
	"bytes"

	"gitlab.com/golang-commonmark/markdown"
)

// raw HTML stays disabled: submission bodies come from any authenticated member
var parser = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// Markdown renders CommonMark source to HTML. Empty input renders to "".
func Markdown(source string) string {
	if source == "" {
		return ""
	}
	tokens := parser.Parse([]byte(source))

	var result bytes.Buffer
	if err := parser.RenderTokens(&result, tokens); err != nil {
		return ""
	}
	return result.String()
}
