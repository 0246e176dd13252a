package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/shared"
)

type DeckHandler struct {
	deckSvc DeckServiceInterface
}

func NewDeckHandler(deckSvc DeckServiceInterface) *DeckHandler {
	return &DeckHandler{
		deckSvc: deckSvc,
	}
}

// @Summary List Decks
// @Description Get the authenticated user's decks with flashcard counts
// @Tags decks
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} shared.Response{data=dto.DeckListResponse}
// @Router /api/decks [get]
func (h *DeckHandler) GetDecks(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	userID := c.Locals(shared.UserID).(string)

	decks, err := h.deckSvc.GetDecks(userID, page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", decks)
}

// @Summary Get Deck
// @Description Get a single deck
// @Tags decks
// @Accept json
// @Produce json
// @Param deckId path string true "Deck ID"
// @Success 200 {object} shared.Response{data=dto.DeckResponse}
// @Router /api/decks/{deckId} [get]
func (h *DeckHandler) GetDeck(c *fiber.Ctx) error {
	deckID := c.Params("deckId")
	userID := c.Locals(shared.UserID).(string)

	deck, err := h.deckSvc.GetDeck(deckID, userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", deck)
}

// @Summary Create Deck
// @Description Create a new deck
// @Tags decks
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateDeckRequest true "Create request"
// @Success 201 {object} shared.Response{data=dto.DeckResponse}
// @Router /api/decks [post]
func (h *DeckHandler) CreateDeck(c *fiber.Ctx) error {
	var req dto.CreateDeckRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseRaw(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	userID := c.Locals(shared.UserID).(string)

	deck, err := h.deckSvc.CreateDeck(req, userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", deck)
}

// @Summary Update Deck
// @Description Update a deck's name or description
// @Tags decks
// @Accept json
// @Produce json
// @Param deckId path string true "Deck ID"
// @Param updateRequest body dto.UpdateDeckRequest true "Update request"
// @Success 200 {object} shared.Response{data=dto.DeckResponse}
// @Router /api/decks/{deckId} [put]
func (h *DeckHandler) UpdateDeck(c *fiber.Ctx) error {
	deckID := c.Params("deckId")

	var req dto.UpdateDeckRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseRaw(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	userID := c.Locals(shared.UserID).(string)

	deck, err := h.deckSvc.UpdateDeck(deckID, userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", deck)
}

// @Summary Delete Deck
// @Description Delete a deck and its flashcards
// @Tags decks
// @Accept json
// @Produce json
// @Param deckId path string true "Deck ID"
// @Success 200 {object} shared.Response
// @Router /api/decks/{deckId} [delete]
func (h *DeckHandler) DeleteDeck(c *fiber.Ctx) error {
	deckID := c.Params("deckId")
	userID := c.Locals(shared.UserID).(string)

	if err := h.deckSvc.DeleteDeck(deckID, userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}
