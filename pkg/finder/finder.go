// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

// Package finder scans a source tree for code files of supported languages.
package finder

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/sommerfeld-io/source2adoc/pkg/codefile"
)

// Finder walks a source directory.
type Finder struct {
	sourceDir string
	excludes  []string
	skipDirs  []string
}

// NewFinder creates a Finder for the code files below sourceDir.
func NewFinder(sourceDir string) *Finder {
	return &Finder{sourceDir: sourceDir}
}

// SetExcludes sets the paths and glob patterns to skip. Patterns are relative to the source
// directory and use forward slashes. A pattern without a slash also matches file and directory
// names at any depth, like in .gitignore.
func (f *Finder) SetExcludes(patterns []string) error {
	f.excludes = f.excludes[:0]
	for _, p := range patterns {
		p = strings.TrimSpace(filepath.ToSlash(p))
		p = strings.TrimPrefix(p, "./")
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			continue
		}
		if _, err := doublestar.Match(p, p); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		f.excludes = append(f.excludes, p)
	}
	return nil
}

// SkipDir excludes a directory given relative to the working directory, typically the output
// directory when it lies inside the source tree.
func (f *Finder) SkipDir(dir string) {
	if abs, err := filepath.Abs(dir); err == nil {
		f.skipDirs = append(f.skipDirs, abs)
	}
}

// FindSourceCodeFiles returns the supported code files in lexical order.
func (f *Finder) FindSourceCodeFiles() ([]*codefile.CodeFile, error) {
	info, err := os.Stat(f.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("unable to access source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source directory %s is not a directory", f.sourceDir)
	}

	var files []*codefile.CodeFile
	err = filepath.WalkDir(f.sourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == f.sourceDir {
			return nil
		}
		if d.IsDir() {
			if f.isSkipped(p) || f.isExcluded(p) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || f.isExcluded(p) {
			return nil
		}
		cf := codefile.NewCodeFile(p)
		if cf.IsSupportedLanguage() {
			files = append(files, cf)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to scan source directory %s: %w", f.sourceDir, err)
	}
	return files, nil
}

func (f *Finder) isSkipped(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for _, skip := range f.skipDirs {
		if abs == skip {
			return true
		}
	}
	return false
}

func (f *Finder) isExcluded(p string) bool {
	if len(f.excludes) == 0 {
		return false
	}
	rel, err := filepath.Rel(f.sourceDir, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)
	found := strings.TrimPrefix(filepath.ToSlash(p), "./")
	base := path.Base(rel)

	for _, pattern := range f.excludes {
		for _, candidate := range []string{rel, found} {
			if matchPattern(pattern, candidate) {
				return true
			}
		}
		if !strings.Contains(pattern, "/") && matchPattern(pattern, base) {
			return true
		}
	}
	return false
}

// matchPattern matches a glob pattern or, for plain paths, the path itself and everything
// below it.
func matchPattern(pattern, name string) bool {
	if name == pattern || strings.HasPrefix(name, pattern+"/") {
		return true
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
