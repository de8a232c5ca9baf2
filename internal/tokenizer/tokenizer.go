// Package tokenizer estimates token counts for collected file content.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	// HeuristicModelName selects the fixed bytes-per-token estimator.
	HeuristicModelName = "heuristic"

	defaultEncodingName = "cl100k_base"

	errorEncodingFormat = "initialize tokenizer %s: %w"
)

var encodingNames = map[string]struct{}{
	"cl100k_base": {},
	"o200k_base":  {},
	"p50k_base":   {},
	"p50k_edit":   {},
	"r50k_base":   {},
}

// NewCounter returns a Counter for the requested model together with the resolved model name.
// An empty model or HeuristicModelName yields the heuristic estimator.
func NewCounter(cfg Config) (Counter, string, error) {
	model := strings.TrimSpace(cfg.Model)
	lowerModel := strings.ToLower(model)
	if lowerModel == "" || lowerModel == HeuristicModelName {
		return HeuristicCounter{}, HeuristicModelName, nil
	}

	if _, isEncoding := encodingNames[lowerModel]; isEncoding {
		encoding, err := tiktoken.GetEncoding(lowerModel)
		if err != nil {
			return nil, "", fmt.Errorf(errorEncodingFormat, lowerModel, err)
		}
		return openAICounter{encoding: encoding, name: lowerModel}, lowerModel, nil
	}

	if isOpenAIModel(lowerModel) {
		encoding, err := tiktoken.EncodingForModel(lowerModel)
		if err == nil && encoding != nil {
			return openAICounter{encoding: encoding, name: lowerModel}, model, nil
		}
	}

	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf(errorEncodingFormat, defaultEncodingName, fallbackErr)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

func isOpenAIModel(model string) bool {
	prefixes := []string{
		"gpt-",
		"text-embedding",
		"davinci",
		"curie",
		"babbage",
		"ada",
		"code-",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
