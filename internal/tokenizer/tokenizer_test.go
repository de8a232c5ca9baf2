package tokenizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/temirov/gather/internal/types"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(string) (int, error) { return 0, errors.New("boom") }

func TestEstimateTokens(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "two bytes", input: "hi", expected: 1},
		{name: "eleven bytes", input: "hello world", expected: 3},
		{name: "exactly four bytes", input: "abcd", expected: 1},
		{name: "five bytes", input: "abcde", expected: 2},
		{name: "multibyte counts bytes", input: "é", expected: 1},
		{name: "large", input: strings.Repeat("x", 4001), expected: 1001},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := EstimateTokens(testCase.input); actual != testCase.expected {
				t.Fatalf("expected %d tokens, got %d", testCase.expected, actual)
			}
		})
	}
}

func TestNewCounterDefaultsToHeuristic(t *testing.T) {
	for _, model := range []string{"", "heuristic", " Heuristic "} {
		counter, resolved, err := NewCounter(Config{Model: model})
		if err != nil {
			t.Fatalf("NewCounter(%q) error: %v", model, err)
		}
		if resolved != HeuristicModelName {
			t.Fatalf("expected %s, got %s", HeuristicModelName, resolved)
		}
		tokens, countErr := counter.CountString("hello world")
		if countErr != nil || tokens != 3 {
			t.Fatalf("expected 3 tokens, got %d (%v)", tokens, countErr)
		}
	}
}

func TestCountFilesAggregatesTotals(t *testing.T) {
	files := []types.CollectedFile{
		{RelativePath: "a.rs", Content: "hello world"},
		{RelativePath: "b.md", Content: "hi"},
	}
	counts, totals, err := CountFiles(nil, files)
	if err != nil {
		t.Fatalf("CountFiles error: %v", err)
	}
	if len(counts) != 2 || counts[0].Path != "a.rs" || counts[0].Tokens != 3 || counts[0].Bytes != 11 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if totals.Files != 2 || totals.Tokens != 4 || totals.Bytes != 13 {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	_, stubTotals, stubErr := CountFiles(testCounter{}, files)
	if stubErr != nil {
		t.Fatalf("CountFiles with stub error: %v", stubErr)
	}
	if stubTotals.Tokens != 13 {
		t.Fatalf("expected stub counter to be used, got %d tokens", stubTotals.Tokens)
	}
}

func TestCountFilesPropagatesCounterErrors(t *testing.T) {
	_, _, err := CountFiles(failingCounter{}, []types.CollectedFile{{RelativePath: "x.txt", Content: "x"}})
	if err == nil || !strings.Contains(err.Error(), "x.txt") {
		t.Fatalf("expected wrapped error naming the file, got %v", err)
	}
}
