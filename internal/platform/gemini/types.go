// Package gemini implements the generation interface using Google's
// Gemini API.
package gemini

// responseSchema represents the expected structure of the model response.
type responseSchema struct {
	// Cards is the array of flashcards generated from the input text
	Cards []cardSchema `json:"cards"`
}

// cardSchema represents a single flashcard in the API response
type cardSchema struct {
	// Front is the question or prompt side of the flashcard
	Front string `json:"front"`

	// Back is the answer side of the flashcard
	Back string `json:"back"`
}
