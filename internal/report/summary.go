package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors for the terminal summary.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Summarize writes a colored per-chaff summary of the run to w.
func Summarize(w io.Writer, run *Run) {
	for _, res := range run.Results {
		if res.Failed() {
			fmt.Fprintln(w, failureStyle.Render(fmt.Sprintf("Chaff %s failed!", res.Chaff)))
			fmt.Fprintln(w, detailStyle.Render("  "+res.Error))
			continue
		}

		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Chaff %s compiled.", res.Chaff)))
		if len(res.RegionsMatched) > 0 {
			fmt.Fprintln(w, mutedStyle.Render("  regions spliced: "+strings.Join(res.RegionsMatched, ", ")))
		}
		if len(res.RegionsUnmatched) > 0 {
			fmt.Fprintln(w, mutedStyle.Render("  regions left as authored: "+strings.Join(res.RegionsUnmatched, ", ")))
		}
		if len(res.ExpectedFailures) > 0 {
			fmt.Fprintln(w, detailStyle.Render("  expects failures: "+strings.Join(res.ExpectedFailures, ", ")))
		}
	}
}
