// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/sommerfeld-io/source2adoc/pkg/codefile"
	"github.com/spf13/cobra"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages and their file patterns",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			patterns := map[string][]string{}
			for _, p := range codefile.SupportedPatterns() {
				patterns[p.Language] = append(patterns[p.Language], p.Match)
			}
			for _, lang := range codefile.SupportedLanguages() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s%s\n", lang, strings.Join(patterns[lang], ", "))
			}
		},
	}
}
