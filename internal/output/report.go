package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/gather/internal/tokenizer"
)

const (
	treeIndentUnit        = "  "
	treeFooterFormat      = "\n%d files\n"
	tokenReportLineFormat = "%8d tokens  %8d bytes  %s\n"
	tokenReportTotal      = "\n%8d tokens  %8d bytes  total (%d files)\n"
	pathSeparator         = "/"
)

// WriteTree prints the root name, each path's final segment indented by its
// depth below the root, and the number of paths.
func WriteTree(writer io.Writer, rootName string, paths []string) error {
	var builder strings.Builder
	builder.WriteString(rootName)
	builder.WriteString(newline)
	for _, relativePath := range paths {
		segments := strings.Split(relativePath, pathSeparator)
		builder.WriteString(strings.Repeat(treeIndentUnit, len(segments)-1))
		builder.WriteString(segments[len(segments)-1])
		builder.WriteString(newline)
	}
	fmt.Fprintf(&builder, treeFooterFormat, len(paths))
	_, err := io.WriteString(writer, builder.String())
	return err
}

// WriteTokenReport prints one line per file followed by the totals line.
func WriteTokenReport(writer io.Writer, counts []tokenizer.FileCount, totals tokenizer.Totals) error {
	var builder strings.Builder
	for _, count := range counts {
		fmt.Fprintf(&builder, tokenReportLineFormat, count.Tokens, count.Bytes, count.Path)
	}
	fmt.Fprintf(&builder, tokenReportTotal, totals.Tokens, totals.Bytes, totals.Files)
	_, err := io.WriteString(writer, builder.String())
	return err
}
