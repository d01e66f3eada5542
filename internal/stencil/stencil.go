// Package stencil compiles a stencil document against a fragment mapping.
// Regions whose names have a fragment are replaced by the fragment body,
// re-indented to the stencil's code column; regions with no matching
// fragment pass through byte-for-byte, markers included.
package stencil

import (
	"strings"

	"chaffc/internal/chaff"
	"chaffc/internal/region"
)

// Compile rewrites text by splicing frags into its regions. The result is a
// pure function of its inputs: same text and fragments, same output. An
// unterminated region fails the compile; no truncated output is returned.
//
// A nil or empty mapping leaves every region untouched, so the output
// equals the input.
func Compile(text string, frags chaff.Fragments) (string, error) {
	var out strings.Builder
	out.Grow(len(text))

	cursor := 0
	for {
		r, ok, err := region.Locate(text, cursor)
		if err != nil {
			return "", err
		}
		if !ok {
			out.WriteString(text[cursor:])
			return out.String(), nil
		}

		body, found := frags[r.Name]
		if !found {
			// Unmatched region: markers, name line and body stay verbatim.
			out.WriteString(text[cursor:r.Next])
			cursor = r.Next
			continue
		}

		out.WriteString(text[cursor:r.Start])
		out.WriteString(reindent(body, lineIndent(text, r.Start)))
		cursor = r.Next
	}
}

// lineIndent returns the literal whitespace prefix of the line containing
// offset. Multi-line fragment bodies are re-aligned to this column.
func lineIndent(text string, offset int) string {
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	end := lineStart
	for end < offset && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[lineStart:end]
}

// reindent rewrites every newline in body to newline+indent so that lines
// after the first keep the column the region's start marker sat at. The
// text before the insertion point already carries the first line's indent.
func reindent(body, indent string) string {
	if indent == "" {
		return body
	}
	return strings.ReplaceAll(body, "\n", "\n"+indent)
}
