package llm

import (
	"fmt"
	"strings"

	"github.com/puzzlekit/wordjudge/internal/model"
)

// promptTemplate is the evaluation instruction sent for every word.
// The model is asked to reason first and then emit JSON; the worked
// examples anchor both ends of the rating scale.
const promptTemplate = `Evaluate the following word for its suitability in a crossword puzzle grid. Rate its quality on a scale from %d to %d, where:
  - %d indicates a low quality (e.g. typos, unknown or random strings),
  - %d indicates a high quality (e.g. common, interesting words).

Please provide your chain-of-thought reasoning first, then output the final result as a JSON object with the fields "word", "analysis", and "rating". Make sure the JSON object is valid and contains all required fields.

For example:
  - For the word 'asdfg': It appears to be a random string or typo, so it should receive a rating of %d.
    Output: {"word": "asdfg", "analysis": "It appears to be a random string or typo.", "rating": %d}

  - For the word 'apple': It is a common and interesting word, making it a good candidate, so it might receive a rating of %d.
    Output: {"word": "apple", "analysis": "It is a common and interesting word.", "rating": %d}

Now, evaluate the word: '%s'.`

// BuildPrompt returns the evaluation prompt for a word. When systemHint is
// non-empty it is prepended as an extra instruction, letting configuration
// profiles bias ratings toward a particular puzzle style.
func BuildPrompt(word, systemHint string) string {
	prompt := fmt.Sprintf(promptTemplate,
		model.MinRating, model.MaxRating,
		model.MinRating, model.MaxRating,
		model.MinRating, model.MinRating,
		model.MaxRating, model.MaxRating,
		word,
	)

	if hint := strings.TrimSpace(systemHint); hint != "" {
		return hint + "\n\n" + prompt
	}
	return prompt
}
