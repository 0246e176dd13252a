package shared

const (
	UserID = "user_id"

	// Flashcard provenance tags. The ai-full/ai-edited split is what the
	// acceptance metrics on a generation are computed from.
	SourceAIFull   = "ai-full"
	SourceAIEdited = "ai-edited"
	SourceManual   = "manual"

	MaxFlashcardFrontLength = 200
	MaxFlashcardBackLength  = 500

	MinSourceTextLength = 1000
	MaxSourceTextLength = 10000

	MaxBatchFlashcards = 50
)
