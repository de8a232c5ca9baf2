// Package output renders collected files as documents and reports.
package output

import (
	"fmt"

	"github.com/temirov/gather/internal/tokenizer"
	"github.com/temirov/gather/internal/types"
)

const unsupportedFormatErrorFormat = "unsupported format %q"

// Options controls optional parts of a rendered document.
type Options struct {
	// IncludeSummary adds a leading file, byte and token summary.
	IncludeSummary bool
	// Counter estimates tokens for the summary. Nil selects the heuristic estimator.
	Counter tokenizer.Counter
}

// Renderer encodes an ordered set of collected files as a single document.
type Renderer interface {
	Render(files []types.CollectedFile, options Options) (string, error)
}

// NewRenderer returns the Renderer for the format.
func NewRenderer(format types.Format) (Renderer, error) {
	switch format {
	case types.FormatMarkdown:
		return markdownRenderer{}, nil
	case types.FormatXML:
		return xmlRenderer{}, nil
	default:
		return nil, fmt.Errorf(unsupportedFormatErrorFormat, format)
	}
}

func summarize(files []types.CollectedFile, counter tokenizer.Counter) (tokenizer.Totals, error) {
	_, totals, err := tokenizer.CountFiles(counter, files)
	return totals, err
}
