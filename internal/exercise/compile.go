package exercise

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chaffc/internal/chaff"
	"chaffc/internal/stencil"
)

// DefaultWorkers bounds the tree compiler's concurrency when the caller
// does not set one.
const DefaultWorkers = 4

// TreeCompiler compiles every file of a template source tree against one
// chaff's fragment mapping, preserving directory structure. Files are
// independent of each other, so they compile on a bounded worker pool.
type TreeCompiler struct {
	Workers int
	Log     *zap.Logger
}

// Compile walks codeDir and writes the compiled counterpart of every file
// under outDir. A nil mapping copies the tree through verbatim, which is
// how the pristine solution is produced. The first malformed template file
// fails the whole run.
func (tc *TreeCompiler) Compile(ctx context.Context, codeDir, outDir string, frags chaff.Fragments) error {
	log := tc.Log
	if log == nil {
		log = zap.NewNop()
	}
	workers := tc.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	// Materialize the directory skeleton up front so workers never race
	// on MkdirAll.
	var files []string
	err := filepath.WalkDir(codeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(codeDir, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			return os.MkdirAll(filepath.Join(outDir, rel), 0o755)
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking code directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src := filepath.Join(codeDir, rel)
			dst := filepath.Join(outDir, rel)
			if err := compileFile(src, dst, frags); err != nil {
				return fmt.Errorf("%s: %w", rel, err)
			}
			log.Debug("compiled template file",
				zap.String("file", rel),
				zap.Int("fragments", len(frags)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("compiled template tree",
		zap.String("code_dir", codeDir),
		zap.String("out_dir", outDir),
		zap.Int("files", len(files)))
	return nil
}

// compileFile compiles a single template file to dst.
func compileFile(src, dst string, frags chaff.Fragments) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	out, err := stencil.Compile(string(data), frags)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(out), 0o644)
}
