package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chaffc/cmd/chaffc/picker"
	"chaffc/internal/chaff"
	"chaffc/internal/exercise"
	"chaffc/internal/preview"
	"chaffc/internal/stencil"
)

var (
	previewOut   string
	previewWatch bool
	previewStyle string
)

// previewCmd renders one compiled template file as highlighted HTML.
var previewCmd = &cobra.Command{
	Use:   "preview [chaff] [template-file]",
	Short: "Render a template file with a chaff's fragments spliced in",
	Long: `Splices a chaff document's fragments into one file of the code/ tree and
renders the result as a standalone, syntax-highlighted HTML page.

When the chaff or the template file is not named on the command line and
more than one candidate exists, an interactive picker opens. With --watch
the preview re-renders whenever the chaff or the template file changes.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "HTML output file (default: <chaff>-preview.html)")
	previewCmd.Flags().BoolVar(&previewWatch, "watch", false, "Re-render when the chaff or template changes")
	previewCmd.Flags().StringVar(&previewStyle, "style", "", "Chroma style (default from config)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	layout, err := exercise.Discover(exerciseDir, cfg.CodeDir)
	if err != nil {
		return err
	}

	chaffPath, err := resolveChaff(layout, args)
	if err != nil {
		return err
	}
	templateRel, err := resolveTemplate(layout, args)
	if err != nil {
		return err
	}
	templatePath := filepath.Join(layout.CodeDir, templateRel)

	style := previewStyle
	if style == "" {
		style = cfg.Preview.Style
	}
	renderer := preview.NewRenderer(style, cfg.Preview.LineNumbers)

	outPath := previewOut
	if outPath == "" {
		outPath = exercise.ChaffName(chaffPath) + "-preview.html"
	}

	render := func() error {
		html, err := renderPreview(chaffPath, templatePath, templateRel, renderer)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
			return err
		}
		logger.Info("rendered preview",
			zap.String("chaff", chaffPath),
			zap.String("template", templateRel),
			zap.String("out", outPath))
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", outPath)

	if !previewWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := preview.NewWatcher(
		[]string{chaffPath, templatePath},
		cfg.Preview.DebounceDuration(),
		logger,
		func(path string) {
			if err := render(); err != nil {
				// A malformed edit mid-save should not kill watch mode;
				// report and wait for the next change.
				logger.Warn("re-render failed", zap.String("path", path), zap.Error(err))
			}
		})
	if err != nil {
		return err
	}
	w.Start(ctx)
	defer w.Stop()

	fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes (Ctrl+C to stop)...")
	<-ctx.Done()
	return nil
}

// renderPreview runs the extract+compile+render pipeline once.
func renderPreview(chaffPath, templatePath, templateRel string, renderer *preview.Renderer) (string, error) {
	chaffText, err := os.ReadFile(chaffPath)
	if err != nil {
		return "", fmt.Errorf("reading chaff: %w", err)
	}
	templateText, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}

	frags, err := chaff.Extract(string(chaffText))
	if err != nil {
		return "", fmt.Errorf("%s: %w", chaffPath, err)
	}
	compiled, err := stencil.Compile(string(templateText), frags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", templateRel, err)
	}

	return renderer.HTML(templateRel, compiled), nil
}

// resolveChaff picks the chaff document to preview: the first positional
// argument when given, otherwise an interactive choice.
func resolveChaff(layout *exercise.Layout, args []string) (string, error) {
	if len(args) >= 1 {
		path, ok := layout.ChaffByName(args[0])
		if !ok {
			return "", fmt.Errorf("unknown chaff %q; available: %v", args[0], layout.ChaffNames())
		}
		return path, nil
	}

	if len(layout.ChaffPaths) == 0 {
		return "", fmt.Errorf("no chaff documents in %s", layout.Dir)
	}
	name, err := picker.Pick("Choose a chaff", layout.ChaffNames())
	if err != nil {
		return "", err
	}
	path, _ := layout.ChaffByName(name)
	return path, nil
}

// resolveTemplate picks the template file, relative to the code directory.
func resolveTemplate(layout *exercise.Layout, args []string) (string, error) {
	candidates, err := listTemplates(layout.CodeDir)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no template files under %s", layout.CodeDir)
	}

	if len(args) >= 2 {
		rel := filepath.Clean(args[1])
		for _, c := range candidates {
			if c == rel {
				return rel, nil
			}
		}
		return "", fmt.Errorf("template %q not found under %s", args[1], layout.CodeDir)
	}

	return picker.Pick("Choose a template file", candidates)
}

// listTemplates lists the candidate template files, relative to codeDir.
func listTemplates(codeDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(codeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(codeDir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing template files: %w", err)
	}
	return files, nil
}
