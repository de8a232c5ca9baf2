package output

import (
	"fmt"
	"strings"

	"github.com/temirov/gather/internal/types"
)

const (
	xmlOpenContext  = "<context>\n"
	xmlCloseContext = "</context>\n"
	xmlMetaFormat   = "  <meta files=\"%d\" tokens=\"~%d\"/>\n"
	xmlOpenFile     = "  <file path=\"%s\">\n"
	xmlCloseFile    = "  </file>\n"
)

// contentEscaper replaces in a single pass, so ampersands introduced by the
// other entities are never escaped twice.
var contentEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attributeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")

// EscapeContent escapes the markup characters of file content.
func EscapeContent(content string) string {
	return contentEscaper.Replace(content)
}

type xmlRenderer struct{}

// Render writes a context element holding one file element per file.
func (xmlRenderer) Render(files []types.CollectedFile, options Options) (string, error) {
	var builder strings.Builder
	builder.WriteString(xmlOpenContext)
	if options.IncludeSummary {
		totals, err := summarize(files, options.Counter)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&builder, xmlMetaFormat, totals.Files, totals.Tokens)
	}
	for _, file := range files {
		fmt.Fprintf(&builder, xmlOpenFile, attributeEscaper.Replace(file.RelativePath))
		escaped := EscapeContent(file.Content)
		builder.WriteString(escaped)
		if !strings.HasSuffix(escaped, newline) {
			builder.WriteString(newline)
		}
		builder.WriteString(xmlCloseFile)
	}
	builder.WriteString(xmlCloseContext)
	return builder.String(), nil
}
