package llm

import (
	"strings"
	"testing"
)

// TestBuildPrompt verifies the evaluation prompt structure.
func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("contains the target word", func(t *testing.T) {
		t.Parallel()

		prompt := BuildPrompt("xylophone", "")
		if !strings.Contains(prompt, "'xylophone'") {
			t.Errorf("prompt missing target word: %q", prompt)
		}
	})

	t.Run("explains the rating scale", func(t *testing.T) {
		t.Parallel()

		prompt := BuildPrompt("apple", "")
		if !strings.Contains(prompt, "scale from 10 to 50") {
			t.Errorf("prompt missing rating scale: %q", prompt)
		}
	})

	t.Run("includes both anchor examples", func(t *testing.T) {
		t.Parallel()

		prompt := BuildPrompt("apple", "")
		if !strings.Contains(prompt, `"word": "asdfg"`) {
			t.Error("prompt missing low-quality example")
		}
		if !strings.Contains(prompt, `"word": "apple"`) {
			t.Error("prompt missing high-quality example")
		}
	})

	t.Run("prepends system hint when set", func(t *testing.T) {
		t.Parallel()

		hint := "Prefer entries suitable for themeless grids."
		prompt := BuildPrompt("apple", hint)
		if !strings.HasPrefix(prompt, hint) {
			t.Errorf("expected prompt to start with hint, got %q", prompt[:60])
		}
	})

	t.Run("ignores blank system hint", func(t *testing.T) {
		t.Parallel()

		if BuildPrompt("apple", "   ") != BuildPrompt("apple", "") {
			t.Error("expected blank hint to be ignored")
		}
	})
}
