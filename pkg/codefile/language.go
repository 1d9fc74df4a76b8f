// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package codefile

import "strings"

// Languages of code files. Their comments are marked by the hash symbol (#).
const (
	LanguageBash         = "bash"
	LanguageYml          = "yml"
	LanguageDockerfile   = "Dockerfile"
	LanguageVagrant      = "Vagrantfile"
	LanguageMake         = "Makefile"
	LanguageRuby         = "ruby"
	LanguageNotSupported = "not-supported"
)

// Pattern maps a file name pattern to the language of matching files.
type Pattern struct {
	// Match is either a suffix (".sh") or a well-known file name ("Dockerfile").
	Match    string
	Language string
}

// isFilename reports whether the pattern is a file name rather than an extension. File name
// patterns also match files that start with the name, like Dockerfile.docs.
func (p Pattern) isFilename() bool {
	return !strings.HasPrefix(p.Match, ".")
}

// The order is the lookup order.
var supportedPatterns = []Pattern{
	{Match: ".sh", Language: LanguageBash},
	{Match: ".yml", Language: LanguageYml},
	{Match: ".yaml", Language: LanguageYml},
	{Match: ".rb", Language: LanguageRuby},
	{Match: "Dockerfile", Language: LanguageDockerfile},
	{Match: "Vagrantfile", Language: LanguageVagrant},
	{Match: "Makefile", Language: LanguageMake},
}

// SupportedPatterns returns the file name patterns of all supported languages.
func SupportedPatterns() []Pattern {
	result := make([]Pattern, len(supportedPatterns))
	copy(result, supportedPatterns)
	return result
}

// SupportedLanguages returns the distinct supported languages in lookup order.
func SupportedLanguages() []string {
	var langs []string
	seen := map[string]bool{}
	for _, p := range supportedPatterns {
		if !seen[p.Language] {
			seen[p.Language] = true
			langs = append(langs, p.Language)
		}
	}
	return langs
}

// identifyLanguage returns the language of the file and whether it is supported.
func identifyLanguage(filename string) (string, bool) {
	for _, p := range supportedPatterns {
		if strings.HasSuffix(filename, p.Match) {
			return p.Language, true
		}
		if p.isFilename() && strings.HasPrefix(filename, p.Match) {
			return p.Language, true
		}
	}
	return LanguageNotSupported, false
}
