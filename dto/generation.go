package dto

// GenerateFlashcardsRequest is the body of POST /api/ai/generate-flashcards.
// Source text bounds are the product constants: 1000-10000 characters.
type GenerateFlashcardsRequest struct {
	SourceText string `json:"sourceText" validate:"required,min=1000,max=10000"`
	DeckID     string `json:"deckId" validate:"required,uuid"`
}

func (r GenerateFlashcardsRequest) Validate() error {
	return validate.Struct(r)
}

// FlashcardCandidate is one unconfirmed front/back pair produced by the
// model. Candidates carry no identity or status here; that state is added by
// the review workflow.
type FlashcardCandidate struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type GenerateFlashcardsResponse struct {
	GenerationID string               `json:"generationId"`
	Candidates   []FlashcardCandidate `json:"candidates"`
}

// RateLimitedResponse is the 429 body for the AI endpoint quota.
type RateLimitedResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Remaining int    `json:"remaining"`
}

type GenerationResponse struct {
	ID                  string `json:"id"`
	DeckID              string `json:"deckId"`
	Model               string `json:"model"`
	GeneratedCount      int    `json:"generatedCount"`
	AcceptedUnedited    int    `json:"acceptedUneditedCount"`
	AcceptedEdited      int    `json:"acceptedEditedCount"`
	SourceTextLength    int    `json:"sourceTextLength"`
	GenerationDuration  int64  `json:"generationDuration"`
	CreatedAt           string `json:"createdAt"`
}
