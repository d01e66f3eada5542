// Package report records what a compilation run did per chaff: which
// regions the chaff defined, which stencil regions they matched, and the
// chaff's declared expected test failures. Runs serialize to JSON and
// summarize to the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"chaffc/internal/chaff"
	"chaffc/internal/region"
)

// ChaffResult is the outcome of compiling one chaff against the stencil.
type ChaffResult struct {
	Chaff            string   `json:"chaff_name"`
	RegionsDefined   []string `json:"regions_defined"`
	RegionsMatched   []string `json:"regions_matched"`
	RegionsUnmatched []string `json:"regions_unmatched"`
	ExpectedFailures []string `json:"expected_failures,omitempty"`
	OutputDir        string   `json:"output_dir,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// Failed reports whether the chaff's compilation failed.
func (r ChaffResult) Failed() bool { return r.Error != "" }

// Run is one invocation of the compiler across a set of chaffs.
type Run struct {
	ID        string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Results   []ChaffResult `json:"results"`
}

// NewRun creates a run with a fresh ID.
func NewRun() *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// Add appends a chaff result to the run.
func (r *Run) Add(result ChaffResult) {
	r.Results = append(r.Results, result)
}

// Failed reports whether any chaff in the run failed.
func (r *Run) Failed() bool {
	for _, res := range r.Results {
		if res.Failed() {
			return true
		}
	}
	return false
}

// WriteJSON writes the run to path as indented JSON.
func (r *Run) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Encode writes the run as indented JSON to w.
func (r *Run) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(r)
}

// Describe builds the result for one chaff by matching its fragments
// against the stencil's regions. The stencil text must already have been
// validated by compilation; a malformed stencil here yields empty region
// lists rather than a second error path.
func Describe(chaffName, stencilText string, frags chaff.Fragments, failures []string) ChaffResult {
	result := ChaffResult{
		Chaff:            chaffName,
		RegionsDefined:   frags.Names(),
		ExpectedFailures: failures,
	}

	stencilRegions, err := region.List(stencilText)
	if err != nil {
		return result
	}

	matched := make(map[string]bool)
	unmatched := make(map[string]bool)
	for _, reg := range stencilRegions {
		if _, ok := frags[reg.Name]; ok {
			matched[reg.Name] = true
		} else {
			unmatched[reg.Name] = true
		}
	}
	result.RegionsMatched = sortedKeys(matched)
	result.RegionsUnmatched = sortedKeys(unmatched)
	return result
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
