package dto

// BatchFlashcardItem is one accepted candidate in a batch commit. Source
// records provenance: ai-full for verbatim acceptance, ai-edited when the
// user changed the card before accepting.
type BatchFlashcardItem struct {
	Front  string `json:"front" validate:"required,min=1,max=200"`
	Back   string `json:"back" validate:"required,min=1,max=500"`
	Source string `json:"source" validate:"required,oneof=ai-full ai-edited"`
}

// BatchCreateFlashcardsRequest is the body of
// POST /api/decks/:deckId/flashcards/batch.
type BatchCreateFlashcardsRequest struct {
	GenerationID string               `json:"generationId" validate:"required,uuid"`
	Flashcards   []BatchFlashcardItem `json:"flashcards" validate:"required,min=1,max=50,dive"`
}

func (r BatchCreateFlashcardsRequest) Validate() error {
	return validate.Struct(r)
}

type BatchCreateFlashcardsResponse struct {
	CreatedCount int    `json:"createdCount"`
	GenerationID string `json:"generationId"`
}

type CreateFlashcardRequest struct {
	Front string `json:"front" validate:"required,min=1,max=200"`
	Back  string `json:"back" validate:"required,min=1,max=500"`
}

func (r CreateFlashcardRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateFlashcardRequest struct {
	Front *string `json:"front" validate:"omitempty,min=1,max=200"`
	Back  *string `json:"back" validate:"omitempty,min=1,max=500"`
}

func (r UpdateFlashcardRequest) Validate() error {
	return validate.Struct(r)
}

type FlashcardResponse struct {
	ID           string  `json:"id"`
	DeckID       string  `json:"deckId"`
	GenerationID *string `json:"generationId,omitempty"`
	Front        string  `json:"front"`
	Back         string  `json:"back"`
	Source       string  `json:"source"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type FlashcardListResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards"`
	Pagination PaginationResponse  `json:"pagination"`
}
