// Package preview turns compiled documents into syntax-highlighted HTML
// and re-renders them when the source files change.
package preview

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Renderer renders source text to a standalone HTML page. Highlighting is
// best-effort: when tokenising fails the compiled text still comes back as
// an escaped plain-text page, never an error.
type Renderer struct {
	style       string
	lineNumbers bool
}

// NewRenderer creates a renderer using the named chroma style. Unknown
// style names fall back to the chroma default.
func NewRenderer(style string, lineNumbers bool) *Renderer {
	return &Renderer{style: style, lineNumbers: lineNumbers}
}

// HTML renders source as a highlighted standalone HTML document. The
// filename picks the lexer; unrecognized names get a plain-text lexer.
func (r *Renderer) HTML(filename, source string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(r.style)
	if style == nil {
		style = styles.Fallback
	}

	opts := []chromahtml.Option{chromahtml.Standalone(true), chromahtml.TabWidth(4)}
	if r.lineNumbers {
		opts = append(opts, chromahtml.WithLineNumbers(true))
	}
	formatter := chromahtml.New(opts...)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plainHTML(filename, source)
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return plainHTML(filename, source)
	}
	return buf.String()
}

// plainHTML is the degraded rendering used when highlighting fails. The
// compiled text must always survive to the page.
func plainHTML(title, source string) string {
	return fmt.Sprintf("<!DOCTYPE html>\n<html><head><title>%s</title></head><body><pre>%s</pre></body></html>\n",
		html.EscapeString(title), html.EscapeString(source))
}
