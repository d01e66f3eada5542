// Package exercise handles the on-disk layout of a chaff exercise: one
// stencil file at the directory root, any number of chaff documents in the
// subtree, and a code/ directory of template sources that get compiled per
// chaff.
package exercise

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// StencilExt marks the single template document at the exercise root.
	StencilExt = ".stencil"
	// ChaffExt marks chaff documents anywhere in the exercise subtree.
	ChaffExt = ".chaff"
	// DefaultCodeDir is the subdirectory holding the template source tree.
	DefaultCodeDir = "code"

	// SolutionName is the reserved chaff name for the pristine solution:
	// the code tree copied through with no fragments applied.
	SolutionName = "solution"
)

var (
	ErrNoStencil        = errors.New("no stencil file found in the root of the directory")
	ErrMultipleStencils = errors.New("multiple stencil files found in the root of the directory")
)

// Layout describes a discovered exercise directory.
type Layout struct {
	Dir         string
	StencilPath string
	ChaffPaths  []string
	CodeDir     string
}

// FindStencil returns the single *.stencil file at the root of dir.
// Zero or multiple candidates are both errors: the stencil is the one
// authoritative template document for the exercise.
func FindStencil(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading exercise directory: %w", err)
	}

	var stencils []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), StencilExt) {
			stencils = append(stencils, filepath.Join(dir, entry.Name()))
		}
	}

	switch len(stencils) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNoStencil, dir)
	case 1:
		return stencils[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrMultipleStencils, dir)
	}
}

// FindChaffs walks the whole subtree of dir and returns every *.chaff file,
// in walk order.
func FindChaffs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ChaffExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking exercise directory: %w", err)
	}
	return paths, nil
}

// ChaffName derives the display name of a chaff document from its file
// name: the basename up to the first dot.
func ChaffName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// Discover locates the stencil and chaff documents of an exercise
// directory. codeDir is the name of the template source subdirectory;
// empty means DefaultCodeDir. Discover fails when the stencil is missing
// or ambiguous, but an absent code directory is left to the caller: the
// preview path never touches it.
func Discover(dir, codeDir string) (*Layout, error) {
	stencil, err := FindStencil(dir)
	if err != nil {
		return nil, err
	}
	chaffs, err := FindChaffs(dir)
	if err != nil {
		return nil, err
	}
	if codeDir == "" {
		codeDir = DefaultCodeDir
	}
	return &Layout{
		Dir:         dir,
		StencilPath: stencil,
		ChaffPaths:  chaffs,
		CodeDir:     filepath.Join(dir, codeDir),
	}, nil
}

// ChaffByName returns the path of the chaff with the given display name,
// or false when the exercise defines no such chaff.
func (l *Layout) ChaffByName(name string) (string, bool) {
	for _, path := range l.ChaffPaths {
		if ChaffName(path) == name {
			return path, true
		}
	}
	return "", false
}

// ChaffNames returns the display names of all chaff documents, in
// discovery order.
func (l *Layout) ChaffNames() []string {
	names := make([]string, 0, len(l.ChaffPaths))
	for _, path := range l.ChaffPaths {
		names = append(names, ChaffName(path))
	}
	return names
}
