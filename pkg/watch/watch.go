// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

// Package watch triggers a callback when code files in a source tree change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/sommerfeld-io/source2adoc/pkg/codefile"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the time to wait for further events before the callback runs. Editors
// often write a file several times in a row.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a directory tree recursively.
type Watcher struct {
	root     string
	skipDirs []string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *log.Logger
}

// New creates a Watcher for all directories below root. Directories created later are added
// while the Watcher runs.
func New(root string, logger *log.Logger) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("unable to access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify new watcher error: %w", err)
	}
	w := &Watcher{
		root:     filepath.Clean(root),
		debounce: DefaultDebounce,
		fsw:      fsw,
		logger:   logger,
	}
	if err := w.addTree(w.root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce changes the debounce interval.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// SkipDir ignores events below dir, typically the output directory.
func (w *Watcher) SkipDir(dir string) {
	if abs, err := filepath.Abs(dir); err == nil {
		w.skipDirs = append(w.skipDirs, abs)
	}
}

func (w *Watcher) skipped(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, skip := range w.skipDirs {
		if abs == skip || strings.HasPrefix(abs, skip+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipped(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("fsnotify add error for dir %q: %w", path, err)
		}
		w.logger.Debug("Watching directory.", "dir", path)
		return nil
	})
}

// relevant reports whether the event concerns a code file. New directories are added to the
// watch list and count as relevant since they may already contain code files.
func (w *Watcher) relevant(e fsnotify.Event) bool {
	if w.skipped(e.Name) {
		return false
	}
	if e.Has(fsnotify.Create) {
		if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
			if err := w.addTree(e.Name); err != nil {
				w.logger.Warn("Unable to watch new directory.", "dir", e.Name, "err", err)
			}
			return true
		}
	}
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Remove) && !e.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(e.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return codefile.NewCodeFile(e.Name).IsSupportedLanguage()
}

// Run calls onChange after relevant changes until ctx is cancelled. Errors returned by
// onChange are logged and do not stop the Watcher. Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.fsw.Close()

	trigger := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return errors.New("unexpected close from watcher.Errors")
				}
				return fmt.Errorf("unexpected notify error: %w", err)
			case e, ok := <-w.fsw.Events:
				if !ok {
					return errors.New("unexpected close from watcher.Events")
				}
				if !w.relevant(e) {
					continue
				}
				w.logger.Debug("Change detected.", "file", e.Name, "op", e.Op.String())
				select {
				case trigger <- struct{}{}:
				default:
				}
			}
		}
	})

	g.Go(func() error {
		timer := time.NewTimer(w.debounce)
		timer.Stop()
		for {
			select {
			case <-gctx.Done():
				timer.Stop()
				return gctx.Err()
			case <-trigger:
				timer.Reset(w.debounce)
			case <-timer.C:
				if err := onChange(gctx); err != nil {
					w.logger.Error("Regeneration failed.", "err", err)
				}
			}
		}
	})

	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
