package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chaffc/internal/chaff"
	"chaffc/internal/region"
)

// regionsCmd lists the regions of any marked document.
var regionsCmd = &cobra.Command{
	Use:   "regions [file]",
	Short: "List the regions of a chaff or template document",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegions,
}

func runRegions(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	text := string(data)

	regions, err := region.List(text)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if len(regions) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no regions\n", args[0])
		return nil
	}

	for _, r := range regions {
		body := strings.TrimSpace(r.Body(text))
		lines := 0
		if body != "" {
			lines = strings.Count(body, "\n") + 1
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-30s offset %6d  %3d line(s)\n", r.Name, r.Start, lines)
	}

	if failures := chaff.ExpectedFailures(text); len(failures) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "expected failures: %s\n", strings.Join(failures, ", "))
	}
	return nil
}
