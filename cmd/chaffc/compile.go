package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chaffc/internal/chaff"
	"chaffc/internal/exercise"
	"chaffc/internal/report"
)

var (
	compileAll  bool
	compileOut  string
	compileJSON string
)

// compileCmd compiles selected chaffs against the exercise's code tree.
var compileCmd = &cobra.Command{
	Use:   "compile [chaff...]",
	Short: "Compile chaff documents into the template source tree",
	Long: `Compiles each selected chaff against the code/ tree, writing one output
directory per chaff. Two names are always available on top of the *.chaff
files: "stencil" (the handout, compiled from the stencil document's
fragments) and "solution" (the code tree copied through untouched).`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().BoolVarP(&compileAll, "all", "a", false, "Compile every chaff, plus stencil and solution")
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "Output directory (default from config)")
	compileCmd.Flags().StringVarP(&compileJSON, "json", "j", "", "Write a JSON report to this file")
}

// selection is one compile target: a chaff document, the stencil, or the
// pristine solution (nil path).
type selection struct {
	name string
	path string // empty for the solution
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	layout, err := exercise.Discover(exerciseDir, cfg.CodeDir)
	if err != nil {
		return err
	}

	selections, err := selectTargets(layout, args)
	if err != nil {
		return err
	}

	outDir := compileOut
	if outDir == "" {
		outDir = filepath.Join(exerciseDir, cfg.Compile.OutputDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	stencilText, err := os.ReadFile(layout.StencilPath)
	if err != nil {
		return fmt.Errorf("reading stencil: %w", err)
	}

	tc := &exercise.TreeCompiler{Workers: cfg.Compile.Workers, Log: logger}
	run := report.NewRun()

	for _, sel := range selections {
		result, err := compileOne(ctx, tc, layout, sel, outDir, string(stencilText))
		if err != nil {
			// Malformed documents fail this chaff but not the whole run;
			// context cancellation stops everything.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("chaff failed", zap.String("chaff", sel.name), zap.Error(err))
			result = report.ChaffResult{Chaff: sel.name, Error: err.Error()}
		}
		run.Add(result)
	}

	report.Summarize(cmd.OutOrStdout(), run)

	if compileJSON != "" {
		if err := run.WriteJSON(compileJSON); err != nil {
			return err
		}
		logger.Info("wrote report", zap.String("path", compileJSON))
	}

	if run.Failed() {
		return fmt.Errorf("one or more chaffs failed to compile")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Compiled %d targets to '%s'\n", len(selections), outDir)
	return nil
}

// selectTargets resolves the requested chaff names against the exercise
// layout. The stencil and solution pseudo-chaffs are always eligible.
func selectTargets(layout *exercise.Layout, requested []string) ([]selection, error) {
	available := []selection{{name: exercise.SolutionName}}
	available = append(available, selection{name: "stencil", path: layout.StencilPath})
	for _, path := range layout.ChaffPaths {
		available = append(available, selection{name: exercise.ChaffName(path), path: path})
	}

	if compileAll {
		return available, nil
	}

	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		want[name] = true
	}

	var selected []selection
	for _, sel := range available {
		if want[sel.name] {
			selected = append(selected, sel)
			delete(want, sel.name)
		}
	}
	for name := range want {
		return nil, fmt.Errorf("unknown chaff %q; available: %v", name, names(available))
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no chaffs specified; available: %v (or use --all)", names(available))
	}
	return selected, nil
}

func names(sels []selection) []string {
	out := make([]string, len(sels))
	for i, s := range sels {
		out[i] = s.name
	}
	return out
}

// compileOne compiles a single target into its own subdirectory of outDir.
func compileOne(ctx context.Context, tc *exercise.TreeCompiler, layout *exercise.Layout, sel selection, outDir, stencilText string) (report.ChaffResult, error) {
	var frags chaff.Fragments
	var failures []string

	if sel.path != "" {
		data, err := os.ReadFile(sel.path)
		if err != nil {
			return report.ChaffResult{}, err
		}
		frags, err = chaff.Extract(string(data))
		if err != nil {
			return report.ChaffResult{}, err
		}
		failures = chaff.ExpectedFailures(string(data))
	}

	target := filepath.Join(outDir, sel.name)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return report.ChaffResult{}, err
	}
	if err := tc.Compile(ctx, layout.CodeDir, target, frags); err != nil {
		return report.ChaffResult{}, err
	}

	result := report.Describe(sel.name, stencilText, frags, failures)
	result.OutputDir = target
	return result, nil
}
