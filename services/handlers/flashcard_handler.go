package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/shared"
)

type FlashcardHandler struct {
	flashcardSvc FlashcardServiceInterface
}

func NewFlashcardHandler(flashcardSvc FlashcardServiceInterface) *FlashcardHandler {
	return &FlashcardHandler{
		flashcardSvc: flashcardSvc,
	}
}

// @Summary Batch Create Flashcards
// @Description Create flashcards from accepted AI-generated candidates
// @Tags flashcards
// @Accept json
// @Produce json
// @Param deckId path string true "Deck ID"
// @Param batchRequest body dto.BatchCreateFlashcardsRequest true "Batch create request"
// @Success 201 {object} dto.BatchCreateFlashcardsResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} shared.Response
// @Router /api/decks/{deckId}/flashcards/batch [post]
func (h *FlashcardHandler) BatchCreateFlashcards(c *fiber.Ctx) error {
	deckID := c.Params("deckId")

	var req dto.BatchCreateFlashcardsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseRaw(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	userID := c.Locals(shared.UserID).(string)

	result, err := h.flashcardSvc.CreateFromAIGeneration(req, deckID, userID)
	if err != nil {
		return err
	}

	return shared.ResponseRaw(c, fiber.StatusCreated, result)
}

// @Summary Create Flashcard
// @Description Create a single flashcard manually
// @Tags flashcards
// @Accept json
// @Produce json
// @Param deckId path string true "Deck ID"
// @Param createRequest body dto.CreateFlashcardRequest true "Create request"
// @Success 201 {object} shared.Response{data=dto.FlashcardResponse}
// @Router /api/decks/{deckId}/flashcards [post]
func (h *FlashcardHandler) CreateFlashcard(c *fiber.Ctx) error {
	deckID := c.Params("deckId")

	var req dto.CreateFlashcardRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseRaw(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	userID := c.Locals(shared.UserID).(string)

	flashcard, err := h.flashcardSvc.CreateFlashcard(req, deckID, userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", flashcard)
}

// @Summary List Flashcards
// @Description Get paginated flashcards for a deck
// @Tags flashcards
// @Accept json
// @Produce json
// @Param deckId path string true "Deck ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} shared.Response{data=dto.FlashcardListResponse}
// @Router /api/decks/{deckId}/flashcards [get]
func (h *FlashcardHandler) GetFlashcards(c *fiber.Ctx) error {
	deckID := c.Params("deckId")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	userID := c.Locals(shared.UserID).(string)

	flashcards, err := h.flashcardSvc.GetFlashcards(deckID, userID, page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", flashcards)
}

// @Summary Update Flashcard
// @Description Update a flashcard's front or back text
// @Tags flashcards
// @Accept json
// @Produce json
// @Param flashcardId path string true "Flashcard ID"
// @Param updateRequest body dto.UpdateFlashcardRequest true "Update request"
// @Success 200 {object} shared.Response{data=dto.FlashcardResponse}
// @Router /api/flashcards/{flashcardId} [put]
func (h *FlashcardHandler) UpdateFlashcard(c *fiber.Ctx) error {
	flashcardID := c.Params("flashcardId")

	var req dto.UpdateFlashcardRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseRaw(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	userID := c.Locals(shared.UserID).(string)

	flashcard, err := h.flashcardSvc.UpdateFlashcard(flashcardID, userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", flashcard)
}

// @Summary Delete Flashcard
// @Description Delete a flashcard
// @Tags flashcards
// @Accept json
// @Produce json
// @Param flashcardId path string true "Flashcard ID"
// @Success 200 {object} shared.Response
// @Router /api/flashcards/{flashcardId} [delete]
func (h *FlashcardHandler) DeleteFlashcard(c *fiber.Ctx) error {
	flashcardID := c.Params("flashcardId")
	userID := c.Locals(shared.UserID).(string)

	if err := h.flashcardSvc.DeleteFlashcard(flashcardID, userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}
