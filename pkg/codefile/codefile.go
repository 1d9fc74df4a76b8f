// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

// Package codefile reads source code files, extracts their header documentation and renders it
// as AsciiDoc.
package codefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sommerfeld-io/source2adoc/pkg/filelock"
	"github.com/sommerfeld-io/source2adoc/pkg/markup"
)

// CommentFormat describes the markup used inside the header comments.
type CommentFormat string

const (
	// FormatPlain copies comment text to the AsciiDoc output as is.
	FormatPlain CommentFormat = "plain"
	// FormatMarkdown converts comment text from Markdown to AsciiDoc.
	FormatMarkdown CommentFormat = "markdown"
)

// ParseCommentFormat validates a comment format name. The empty string selects FormatPlain.
func ParseCommentFormat(name string) (CommentFormat, error) {
	switch CommentFormat(name) {
	case "", FormatPlain:
		return FormatPlain, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown comment format %q (allowed: %s, %s)", name, FormatPlain, FormatMarkdown)
}

const headerMarker = "##"

// DocumentationPartType tells the sections of a generated document apart.
type DocumentationPartType string

const (
	// DocumentationPartMetadata is the title and the table with language and path.
	DocumentationPartMetadata DocumentationPartType = "metadata"
	// DocumentationPartHeader is the text of the leading ## comments.
	DocumentationPartHeader DocumentationPartType = "header"
)

// DocumentationPart is a rendered section of the documentation of a CodeFile.
type DocumentationPart struct {
	sectionType    DocumentationPartType
	sectionContent string
}

// CodeFile represents a source code file in the file system.
type CodeFile struct {
	path               string
	name               string
	lang               string
	supportedLang      bool
	format             CommentFormat
	fileContent        string
	documentationParts []DocumentationPart
}

// NewCodeFile creates a CodeFile for the file at fullPath. The file is not read.
func NewCodeFile(fullPath string) *CodeFile {
	path, name := splitPathAndFilename(fullPath)
	lang, supported := identifyLanguage(name)

	return &CodeFile{
		path:          path,
		name:          name,
		lang:          lang,
		supportedLang: supported,
		format:        FormatPlain,
	}
}

// splitPathAndFilename returns the directory without trailing slash and the file name.
// A path without directory yields an empty directory.
func splitPathAndFilename(path string) (string, string) {
	dir, file := filepath.Split(path)
	return strings.TrimSuffix(dir, string(filepath.Separator)), file
}

// Path returns the directory of the CodeFile as it was found.
func (cf *CodeFile) Path() string {
	return cf.path
}

// Filename returns the name of the CodeFile.
func (cf *CodeFile) Filename() string {
	return cf.name
}

// FullPath returns the directory and name of the CodeFile.
func (cf *CodeFile) FullPath() string {
	if cf.path == "" {
		return cf.name
	}
	return cf.path + "/" + cf.name
}

// Language returns the language of the CodeFile.
func (cf *CodeFile) Language() string {
	return cf.lang
}

// IsSupportedLanguage returns true if documentation can be generated for the CodeFile.
func (cf *CodeFile) IsSupportedLanguage() bool {
	return cf.supportedLang
}

// SetCommentFormat selects how the header comments are rendered by Parse.
func (cf *CodeFile) SetCommentFormat(format CommentFormat) {
	cf.format = format
}

// FileContent returns the content of the CodeFile.
func (cf *CodeFile) FileContent() string {
	return cf.fileContent
}

// ReadFileContent reads the content of the CodeFile from the file system.
func (cf *CodeFile) ReadFileContent() error {
	content, err := os.ReadFile(cf.FullPath())
	if err != nil {
		return fmt.Errorf("failed to read code file: %w", err)
	}
	cf.fileContent = string(content)
	return nil
}

// Parse extracts the documentation parts from the file content. Parsing again replaces the
// previous result.
func (cf *CodeFile) Parse() error {
	cf.documentationParts = nil
	cf.parseMetadata()
	if err := cf.parseHeaderDocs(); err != nil {
		return fmt.Errorf("failed to parse header docs from code file %s: %w", cf.FullPath(), err)
	}
	return nil
}

// HasHeaderDocs reports whether Parse found any header documentation.
func (cf *CodeFile) HasHeaderDocs() bool {
	for _, part := range cf.documentationParts {
		if part.sectionType == DocumentationPartHeader && strings.TrimSpace(part.sectionContent) != "" {
			return true
		}
	}
	return false
}

// parsedDocumentation returns the documentation ready to be written to a file.
func (cf *CodeFile) parsedDocumentation() string {
	var sb strings.Builder
	for _, part := range cf.documentationParts {
		sb.WriteString(part.sectionContent)
	}
	return sb.String()
}

func (cf *CodeFile) parseMetadata() {
	var sb strings.Builder
	sb.WriteString("= " + cf.name + "\n")
	sb.WriteString("\n")
	sb.WriteString("[cols=\"1,5\"]\n")
	sb.WriteString("|===\n")
	sb.WriteString("|Language |" + cf.Language() + "\n")
	sb.WriteString("|Path |" + cf.FullPath() + "\n")
	sb.WriteString("|===\n")
	sb.WriteString("\n")

	cf.documentationParts = append(cf.documentationParts, DocumentationPart{
		sectionType:    DocumentationPartMetadata,
		sectionContent: sb.String(),
	})
}

// parseHeaderDocs collects the comments marked with ## at the beginning of the file. Lines
// without the marker are skipped and the first empty line ends the header.
func (cf *CodeFile) parseHeaderDocs() error {
	var sb strings.Builder
	for _, line := range strings.Split(cf.fileContent, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			break
		}
		if !strings.HasPrefix(line, headerMarker) {
			continue
		}
		sb.WriteString(cf.trimComment(line) + "\n")
	}

	content := sb.String()
	if cf.format == FormatMarkdown && content != "" {
		content = markup.Convert([]byte(content))
	}

	cf.documentationParts = append(cf.documentationParts, DocumentationPart{
		sectionType:    DocumentationPartHeader,
		sectionContent: content,
	})
	return nil
}

// trimComment strips the marker from a header line. Markdown keeps the indentation after the
// first blank because it is significant for code blocks and nested lists.
func (cf *CodeFile) trimComment(line string) string {
	text := strings.TrimPrefix(line, headerMarker)
	if cf.format == FormatMarkdown {
		return strings.TrimRight(strings.TrimPrefix(text, " "), " \t")
	}
	return strings.TrimSpace(text)
}

// documentationFileName returns the name of the documentation file in kebab-case.
func (cf *CodeFile) documentationFileName() string {
	name := strings.ReplaceAll(cf.Filename(), ".", "-")
	name = strings.ToLower(name)
	return name + ".adoc"
}

// DocumentationFilePath returns where the documentation is written below outputDir. The
// directory structure of the code file is mirrored.
func (cf *CodeFile) DocumentationFilePath(outputDir string) string {
	return filepath.Join(outputDir, cf.Path(), cf.documentationFileName())
}

// WriteDocumentationFile writes the parsed documentation to outputDir and returns the path of the
// written file. An existing file is replaced.
func (cf *CodeFile) WriteDocumentationFile(outputDir string) (string, error) {
	adocFile := cf.DocumentationFilePath(outputDir)
	if err := filelock.AtomicWrite(adocFile, []byte(cf.parsedDocumentation())); err != nil {
		return "", fmt.Errorf("failed to write documentation for %s: %w", cf.FullPath(), err)
	}
	return adocFile, nil
}
