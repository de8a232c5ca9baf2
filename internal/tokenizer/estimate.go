package tokenizer

// bytesPerToken approximates GPT and Claude tokenization of English text and code.
const bytesPerToken = 4

// EstimateTokens returns ceil(len(text)/4) computed on the byte length with integer arithmetic.
func EstimateTokens(text string) int {
	return (len(text) + bytesPerToken - 1) / bytesPerToken
}

// HeuristicCounter implements Counter with EstimateTokens.
type HeuristicCounter struct{}

func (HeuristicCounter) Name() string {
	return HeuristicModelName
}

func (HeuristicCounter) CountString(input string) (int, error) {
	return EstimateTokens(input), nil
}

var _ Counter = HeuristicCounter{}
