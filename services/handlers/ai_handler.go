package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/shared"
)

type AIHandler struct {
	generationSvc GenerationServiceInterface
}

func NewAIHandler(generationSvc GenerationServiceInterface) *AIHandler {
	return &AIHandler{
		generationSvc: generationSvc,
	}
}

// @Summary Generate Flashcards
// @Description Generate flashcard candidates from source text using AI
// @Tags ai
// @Accept json
// @Produce json
// @Param generateRequest body dto.GenerateFlashcardsRequest true "Generation request"
// @Success 200 {object} dto.GenerateFlashcardsResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 429 {object} dto.RateLimitedResponse
// @Router /api/ai/generate-flashcards [post]
func (h *AIHandler) GenerateFlashcards(c *fiber.Ctx) error {
	var req dto.GenerateFlashcardsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseRaw(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	userID := c.Locals(shared.UserID).(string)

	result, err := h.generationSvc.GenerateCandidates(c.Context(), req.SourceText, req.DeckID, userID)
	if err != nil {
		return err
	}

	return shared.ResponseRaw(c, fiber.StatusOK, result)
}
