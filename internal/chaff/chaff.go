// Package chaff extracts named fragments from a chaff document: the
// student-edited file whose region bodies get spliced into a stencil.
package chaff

import (
	"sort"
	"strings"

	"chaffc/internal/region"
)

// Fragments maps region names to their trimmed bodies. When a name appears
// more than once in the document, the last occurrence in scan order wins;
// earlier bodies are silently overwritten.
type Fragments map[string]string

// Names returns the fragment names in sorted order.
func (f Fragments) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extract scans the chaff text left to right and returns the fragment
// mapping of all its regions. An unterminated region fails the whole
// extraction; no partial mapping is returned.
func Extract(text string) (Fragments, error) {
	regions, err := region.List(text)
	if err != nil {
		return nil, err
	}

	frags := make(Fragments, len(regions))
	for _, r := range regions {
		frags[r.Name] = strings.TrimSpace(r.Body(text))
	}
	return frags, nil
}
