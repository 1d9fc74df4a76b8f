// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package junitxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/sommerfeld-io/source2adoc/pkg/filelock"
)

// Write encodes the report, including the XML declaration, to w.
func (testsuites JUnitTestSuites) Write(w io.Writer) error {
	if _, err := io.WriteString(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(testsuites); err != nil {
		return fmt.Errorf("failed to encode XML document: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write XML footer: %w", err)
	}
	return nil
}

// WriteFile writes the report to the file at path. The file is replaced atomically while holding
// path + ".lock", so parallel runs sharing a report path do not interleave.
func (testsuites JUnitTestSuites) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := testsuites.Write(&buf); err != nil {
		return err
	}
	if err := filelock.LockAndWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write report file: %w", err)
	}
	return nil
}
