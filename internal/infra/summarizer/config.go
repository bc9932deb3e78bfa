package summarizer

// promptSuffix is the fixed instructional suffix appended to the input
// text. The completion after "Tl;dr" is the condensed summary.
const promptSuffix = "\n\nTl;dr"

// Fixed generation parameters. Low randomness, bounded output length and
// mild repetition discouragement; not user-configurable.
const (
	defaultTemperature      = 0.1
	defaultMaxTokens        = 50
	defaultTopP             = 1
	defaultFrequencyPenalty = 0
	defaultPresencePenalty  = 0.5
)

// maxInputChars caps the text shipped to a completion API so an oversized
// paste cannot blow the model's context window.
const maxInputChars = 10000

// truncateInput bounds the input text for the completion request.
func truncateInput(text string) (string, bool) {
	if len(text) <= maxInputChars {
		return text, false
	}
	return text[:maxInputChars] + "...", true
}

// buildPrompt appends the fixed instructional suffix to the input text.
func buildPrompt(text string) string {
	return text + promptSuffix
}
