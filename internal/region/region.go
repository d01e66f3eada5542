// Package region implements the scanner for marker-delimited regions in
// chaff and stencil documents. A region starts with a "### Region: <name>"
// line and runs to the next "### EndRegion" literal. The scanner is a pure
// function over its inputs; callers drive it with an integer cursor.
package region

import (
	"fmt"
	"strings"
)

// Marker literals. These must match existing chaff and stencil files
// byte-for-byte, so they are not configurable.
const (
	StartMarker = "### Region: "
	EndMarker   = "### EndRegion"
)

// Region is a located, named span within a marked document. Offsets are
// byte offsets into the text the region was located in.
type Region struct {
	// Name is the text after the start marker up to the end of that line,
	// whitespace-trimmed. Names are case-sensitive and not required to be
	// unique within a document.
	Name string

	// Start is the offset of the first byte of the start marker.
	Start int

	// BodyStart is the offset just past the line break that ends the start
	// marker line. The region body is text[BodyStart:End].
	BodyStart int

	// End is the offset of the first byte of the end marker. The body ends
	// here; the markers themselves are covered by [Start, Next).
	End int

	// Next is the offset just past the end marker, where the scan for the
	// following region resumes.
	Next int
}

// Body returns the raw body of the region within text, the span strictly
// between the start marker line and the end marker. No trimming is applied.
func (r Region) Body(text string) string {
	if r.BodyStart >= r.End {
		return ""
	}
	return text[r.BodyStart:r.End]
}

// MalformedError reports a start marker with no matching end marker in the
// remaining text. Extraction and compilation fail outright on this rather
// than producing a span that silently runs to end-of-text.
type MalformedError struct {
	Name   string // best-effort region name from the start marker line
	Offset int    // byte offset of the offending start marker
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("unterminated region %q: start marker at offset %d has no matching %q", e.Name, e.Offset, EndMarker)
}

// Locate finds the first region whose start marker begins at or after the
// offset from. It returns ok=false when no start marker remains, which is
// the terminal condition for scan loops. A start marker without a matching
// end marker yields a *MalformedError.
func Locate(text string, from int) (Region, bool, error) {
	if from < 0 {
		from = 0
	}
	if from >= len(text) {
		return Region{}, false, nil
	}

	rel := strings.Index(text[from:], StartMarker)
	if rel < 0 {
		return Region{}, false, nil
	}
	start := from + rel
	nameStart := start + len(StartMarker)

	// The name runs to the end of the start marker line.
	nameEnd := len(text)
	bodyStart := len(text)
	if nl := strings.IndexByte(text[nameStart:], '\n'); nl >= 0 {
		nameEnd = nameStart + nl
		bodyStart = nameEnd + 1
	}
	name := strings.TrimSpace(text[nameStart:nameEnd])

	endRel := strings.Index(text[nameStart:], EndMarker)
	if endRel < 0 {
		return Region{}, false, &MalformedError{Name: name, Offset: start}
	}
	end := nameStart + endRel

	return Region{
		Name:      name,
		Start:     start,
		BodyStart: bodyStart,
		End:       end,
		Next:      end + len(EndMarker),
	}, true, nil
}

// List scans the whole text left to right and returns every region in
// document order. Regions do not overlap: each scan resumes just past the
// previous region's end marker. The first unterminated region aborts the
// whole listing.
func List(text string) ([]Region, error) {
	var regions []Region
	cursor := 0
	for {
		r, ok, err := Locate(text, cursor)
		if err != nil {
			return nil, err
		}
		if !ok {
			return regions, nil
		}
		regions = append(regions, r)
		cursor = r.Next
	}
}
