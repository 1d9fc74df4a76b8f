// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package codefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDir = "testdata"

func TestSplitPathAndFilename(t *testing.T) {
	tests := []struct {
		path             string
		expectedPath     string
		expectedFilename string
	}{
		{path: "/path/to/source.sh", expectedPath: "/path/to", expectedFilename: "source.sh"},
		{path: "path/to/Dockerfile", expectedPath: "path/to", expectedFilename: "Dockerfile"},
		{path: "source.sh", expectedPath: "", expectedFilename: "source.sh"},
	}

	for _, tt := range tests {
		path, filename := splitPathAndFilename(tt.path)
		require.Equal(t, tt.expectedPath, path, "Incorrect path")
		require.Equal(t, tt.expectedFilename, filename, "Incorrect filename")
	}
}

func TestIdentifyLanguage(t *testing.T) {
	tests := []struct {
		filename  string
		expected  string
		supported bool
	}{
		{filename: "config.yml", expected: LanguageYml, supported: true},
		{filename: "config.yaml", expected: LanguageYml, supported: true},
		{filename: "Dockerfile", expected: LanguageDockerfile, supported: true},
		{filename: "Dockerfile.docs", expected: LanguageDockerfile, supported: true},
		{filename: "app.Dockerfile", expected: LanguageDockerfile, supported: true},
		{filename: "Vagrantfile.prod", expected: LanguageVagrant, supported: true},
		{filename: "Makefile", expected: LanguageMake, supported: true},
		{filename: "script.sh", expected: LanguageBash, supported: true},
		{filename: "tasks.rb", expected: LanguageRuby, supported: true},
		{filename: "script.go", expected: LanguageNotSupported, supported: false},
		{filename: "bashrc", expected: LanguageNotSupported, supported: false},
		{filename: "index.adoc", expected: LanguageNotSupported, supported: false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			lang, supported := identifyLanguage(tt.filename)
			require.Equal(t, tt.expected, lang, "Incorrect language identification")
			require.Equal(t, tt.supported, supported, "Invalid supported status")
		})
	}
}

func TestSupportedLanguagesAreDistinct(t *testing.T) {
	langs := SupportedLanguages()
	require.Equal(t, []string{LanguageBash, LanguageYml, LanguageRuby, LanguageDockerfile, LanguageVagrant, LanguageMake}, langs)
	require.Len(t, SupportedPatterns(), 7)
}

func TestGetters(t *testing.T) {
	codeFile := NewCodeFile("/path/to/source.sh")
	require.Equal(t, "/path/to", codeFile.Path())
	require.Equal(t, "source.sh", codeFile.Filename())
	require.Equal(t, "/path/to/source.sh", codeFile.FullPath())
	require.Equal(t, LanguageBash, codeFile.Language())
	require.True(t, codeFile.IsSupportedLanguage())

	bare := NewCodeFile("Makefile")
	require.Equal(t, "", bare.Path())
	require.Equal(t, "Makefile", bare.FullPath())
}

func TestReadFileContent(t *testing.T) {
	codeFile := NewCodeFile(filepath.Join(sampleDir, "good", "small-comment.sh"))
	require.NoError(t, codeFile.ReadFileContent(), "Error reading file content")

	expected := `#!/bin/bash
## Lorem ipsum dolor sit amet, consetetur sadipscing elitr, sed diam nonumy eirmod tempor invidunt
## ut labore et dolore magna aliquyam erat, sed diam voluptua.

## Not part of the header comment
`
	require.Equal(t, expected, codeFile.FileContent())
}

func TestReadMissingFile(t *testing.T) {
	codeFile := NewCodeFile(filepath.Join(sampleDir, "does-not-exist.sh"))
	require.Error(t, codeFile.ReadFileContent())
}

func TestParseDocumentation(t *testing.T) {
	codeFile := &CodeFile{
		path:          filepath.Join(sampleDir, "good"),
		name:          "small-comment.sh",
		lang:          LanguageBash,
		supportedLang: true,
		fileContent: `#!/bin/bash
## Lorem ipsum dolor sit amet, consetetur sadipscing elitr, sed diam nonumy eirmod tempor invidunt
# ignore me because I do not follow the comment convention. Maybe I am a typo.
## ut labore et dolore magna aliquyam erat, sed diam voluptua.

## Not part of the header comment
`,
	}

	expected := `= small-comment.sh

[cols="1,5"]
|===
|Language |` + LanguageBash + `
|Path |testdata/good/small-comment.sh
|===

Lorem ipsum dolor sit amet, consetetur sadipscing elitr, sed diam nonumy eirmod tempor invidunt
ut labore et dolore magna aliquyam erat, sed diam voluptua.
`

	require.NoError(t, codeFile.Parse())
	require.Equal(t, expected, codeFile.parsedDocumentation())
	require.True(t, codeFile.HasHeaderDocs())

	// parsing twice must not duplicate the sections
	require.NoError(t, codeFile.Parse())
	require.Equal(t, expected, codeFile.parsedDocumentation())
}

func TestParseKeepsEmptyMarkerLines(t *testing.T) {
	codeFile := NewCodeFile(filepath.Join(sampleDir, "good", "Dockerfile"))
	require.NoError(t, codeFile.ReadFileContent())
	require.NoError(t, codeFile.Parse())
	require.Contains(t, codeFile.parsedDocumentation(),
		"Image for the documentation build.\n\nThe image bundles Antora and the AsciiDoc toolchain.\n")
}

func TestParseWithoutHeaderDocs(t *testing.T) {
	codeFile := NewCodeFile(filepath.Join(sampleDir, "nodocs", "plain.sh"))
	require.NoError(t, codeFile.ReadFileContent())
	require.NoError(t, codeFile.Parse())
	require.False(t, codeFile.HasHeaderDocs())
	require.Contains(t, codeFile.parsedDocumentation(), "= plain.sh")
}

func TestParseMarkdownComments(t *testing.T) {
	codeFile := NewCodeFile(filepath.Join(sampleDir, "good", "markdown.yml"))
	codeFile.SetCommentFormat(FormatMarkdown)
	require.NoError(t, codeFile.ReadFileContent())
	require.NoError(t, codeFile.Parse())

	docs := codeFile.parsedDocumentation()
	require.Contains(t, docs, "== Pipeline\n")
	require.Contains(t, docs, "Runs the _docs_ job:")
	require.Contains(t, docs, "* build\n* publish\n")
}

func TestParseCommentFormat(t *testing.T) {
	format, err := ParseCommentFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatPlain, format)

	format, err = ParseCommentFormat("markdown")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, format)

	_, err = ParseCommentFormat("rst")
	require.Error(t, err)
}

func TestDocumentationFileName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"small-comment.sh", "small-comment-sh.adoc"},
		{"Dockerfile", "dockerfile.adoc"},
		{"docker-compose.prod.yml", "docker-compose-prod-yml.adoc"},
	}
	for _, tt := range tests {
		codeFile := &CodeFile{path: "some/path", name: tt.name}
		require.Equal(t, tt.expected, codeFile.documentationFileName())
	}
}

func TestWriteDocumentationFile(t *testing.T) {
	outputDir := t.TempDir()
	codeFile := &CodeFile{
		path:          "some/path",
		name:          "unittest.sh",
		lang:          LanguageBash,
		supportedLang: true,
		documentationParts: []DocumentationPart{
			{
				sectionType:    DocumentationPartHeader,
				sectionContent: "Lorem ipsum dolor sit amet, consetetur sadipscing elitr",
			},
		},
	}

	written, err := codeFile.WriteDocumentationFile(outputDir)
	require.NoError(t, err, "Error writing documentation file")
	require.Equal(t, filepath.Join(outputDir, "some", "path", "unittest-sh.adoc"), written)

	content, err := os.ReadFile(written)
	require.NoError(t, err, "Documentation file does not exist")
	require.Equal(t, "Lorem ipsum dolor sit amet, consetetur sadipscing elitr", string(content))
}
