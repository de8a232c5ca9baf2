// Package types defines every cross‑package data structure used by the gather CLI.
package types

import (
	"fmt"
	"strings"
)

const (
	CommandCollect = "collect"
	CommandTree    = "tree"
	CommandTokens  = "tokens"
	CommandInit    = "init"

	// DefaultMaxSize is the largest file size, in bytes, collected unless configured otherwise.
	DefaultMaxSize int64 = 102400

	// DefaultRootPath is used when no root path argument is given.
	DefaultRootPath = "."
)

// Format selects the document encoding produced by the collect command.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatXML      Format = "xml"

	formatMarkdownAlias = "md"

	unknownFormatMessage = "Unknown format: %s. Use 'markdown' or 'xml'."
)

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(FormatMarkdown), formatMarkdownAlias:
		return FormatMarkdown, nil
	case string(FormatXML):
		return FormatXML, nil
	default:
		return "", fmt.Errorf(unknownFormatMessage, value)
	}
}

// SelectionConfig is the immutable input of one traversal.
type SelectionConfig struct {
	// Root is the directory the traversal starts from.
	Root string
	// Include holds glob patterns a match key must satisfy; empty matches everything.
	Include []string
	// Exclude holds glob patterns that drop a match key; empty drops nothing.
	Exclude []string
	// MaxSize is the inclusive upper bound of a collected file's byte size.
	MaxSize int64
	// UseGitignore enables global, repository exclude and .gitignore rules inside a Git repository.
	UseGitignore bool
	// UseIgnoreFile enables .ignore rules, which apply with or without a repository.
	UseIgnoreFile bool
	// IncludeHidden keeps entries whose path contains a segment starting with a dot.
	IncludeHidden bool
}

// NewSelectionConfig returns a SelectionConfig with the default size limit and ignore handling.
func NewSelectionConfig(root string) SelectionConfig {
	return SelectionConfig{
		Root:          root,
		MaxSize:       DefaultMaxSize,
		UseGitignore:  true,
		UseIgnoreFile: true,
	}
}

// CollectedFile is one selected file with its decoded text content.
type CollectedFile struct {
	// RelativePath is slash separated and relative to the traversal root.
	RelativePath string
	Content      string
}

// ByteLength reports the size of the decoded content in bytes.
func (file CollectedFile) ByteLength() int {
	return len(file.Content)
}
