package output

import (
	"fmt"
	"strings"

	"github.com/temirov/gather/internal/types"
)

const (
	markdownSummaryFormat = "<!-- %d files | %d bytes | ~%d tokens -->\n\n"
	markdownHeadingFormat = "## `%s`\n\n"
	markdownFence         = "```"
	newline               = "\n"
)

type markdownRenderer struct{}

// Render writes one heading and fenced code block per file.
func (markdownRenderer) Render(files []types.CollectedFile, options Options) (string, error) {
	var builder strings.Builder
	if options.IncludeSummary {
		totals, err := summarize(files, options.Counter)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&builder, markdownSummaryFormat, totals.Files, totals.Bytes, totals.Tokens)
	}
	for _, file := range files {
		fmt.Fprintf(&builder, markdownHeadingFormat, file.RelativePath)
		builder.WriteString(markdownFence)
		builder.WriteString(LanguageTag(file.RelativePath))
		builder.WriteString(newline)
		builder.WriteString(strings.TrimRight(file.Content, newline))
		builder.WriteString(newline)
		builder.WriteString(markdownFence)
		builder.WriteString(newline)
		builder.WriteString(newline)
	}
	return builder.String(), nil
}
