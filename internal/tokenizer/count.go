package tokenizer

import (
	"fmt"

	"github.com/temirov/gather/internal/types"
)

// FileCount holds the token estimate and byte length of one collected file.
type FileCount struct {
	Path   string
	Tokens int
	Bytes  int
}

// Totals aggregates FileCount values over a selected set.
type Totals struct {
	Files  int
	Tokens int
	Bytes  int
}

// CountFiles estimates tokens for every file in order. A nil counter uses the heuristic.
func CountFiles(counter Counter, files []types.CollectedFile) ([]FileCount, Totals, error) {
	if counter == nil {
		counter = HeuristicCounter{}
	}
	counts := make([]FileCount, 0, len(files))
	var totals Totals
	for _, file := range files {
		tokens, err := counter.CountString(file.Content)
		if err != nil {
			return nil, Totals{}, fmt.Errorf("count tokens for %s: %w", file.RelativePath, err)
		}
		counts = append(counts, FileCount{
			Path:   file.RelativePath,
			Tokens: tokens,
			Bytes:  file.ByteLength(),
		})
		totals.Files++
		totals.Tokens += tokens
		totals.Bytes += file.ByteLength()
	}
	return counts, totals, nil
}
