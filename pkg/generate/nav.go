// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package generate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sommerfeld-io/source2adoc/pkg/filelock"
)

// renderNav lists the generated pages as Antora cross references, relative to outputDir.
func renderNav(outputDir string, results []Result) (string, error) {
	var sb strings.Builder
	for _, result := range results {
		rel, err := filepath.Rel(outputDir, result.AdocFile)
		if err != nil {
			return "", fmt.Errorf("unable to compute navigation entry for %s: %w", result.AdocFile, err)
		}
		fmt.Fprintf(&sb, "* xref:%s[%s]\n", filepath.ToSlash(rel), result.CodeFile)
	}
	return sb.String(), nil
}

func (r *Runner) writeNav(results []Result) error {
	content, err := renderNav(r.opts.OutputDir, results)
	if err != nil {
		return err
	}
	navFile := filepath.Join(r.opts.OutputDir, r.opts.Nav)
	if err := filelock.AtomicWrite(navFile, []byte(content)); err != nil {
		return fmt.Errorf("unable to write navigation file: %w", err)
	}
	r.logger.Debug("Wrote navigation file.", "file", navFile, "entries", len(results))
	return nil
}
