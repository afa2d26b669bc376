package domain

// Card represents a single front/back flashcard.
//
// Cards are produced in memory by the generation service and persisted in
// bulk when their collection is saved. The ID is assigned by the document
// store at save time and is empty for cards that have not been persisted.
// Duplicate front/back content is permitted; cards carry no uniqueness
// constraint of their own.
type Card struct {
	ID    string `json:"id,omitempty"`
	Front string `json:"front"`
	Back  string `json:"back"`
}
