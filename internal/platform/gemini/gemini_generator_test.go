package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenning/cardbox-api/internal/generation"
)

func TestParseCards(t *testing.T) {
	t.Parallel()

	t.Run("parses a well formed reply", func(t *testing.T) {
		t.Parallel()

		parsed, err := parseCards(`{"cards":[
			{"front":"What is mitosis?","back":"Cell division"},
			{"front":"What is ATP?","back":"Energy currency"}
		]}`)
		require.NoError(t, err)
		require.Len(t, parsed.Cards, 2)
		assert.Equal(t, "What is mitosis?", parsed.Cards[0].Front)
		assert.Equal(t, "Cell division", parsed.Cards[0].Back)
	})

	t.Run("parses an empty card list", func(t *testing.T) {
		t.Parallel()

		parsed, err := parseCards(`{"cards":[]}`)
		require.NoError(t, err)
		assert.Empty(t, parsed.Cards)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		_, err := parseCards("   ")
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := parseCards(`{"cards": [`)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		t.Parallel()

		parsed, err := parseCards(`{"cards":[{"front":"Q","back":"A","hint":"x"}],"meta":1}`)
		require.NoError(t, err)
		require.Len(t, parsed.Cards, 1)
	})
}
