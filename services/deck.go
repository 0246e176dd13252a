package services

import (
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/model"
	"github.com/jakobos/10x-cards/services/repositories"
	"github.com/jakobos/10x-cards/shared"
)

type DeckService struct {
	context.DefaultService

	sqlSvc *PostgresService

	deckRepo *repositories.DeckRepository
}

const DECK_SVC = "deck_svc"

func (svc DeckService) Id() string {
	return DECK_SVC
}

func (svc *DeckService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *DeckService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.deckRepo = repositories.NewDeckRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *DeckService) GetDecks(userID string, page, limit int) (*dto.DeckListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	decks, total, err := svc.deckRepo.GetDecks(userID, (page-1)*limit, limit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.DeckResponse, len(decks))
	for i := range decks {
		count, err := svc.deckRepo.CountFlashcards(decks[i].ID)
		if err != nil {
			log.WithError(err).WithField("deck_id", decks[i].ID).Error("Failed to count flashcards")
		}
		responses[i] = mapDeckToResponse(&decks[i], count)
	}

	return &dto.DeckListResponse{
		Decks:      responses,
		Pagination: paginationResponse(page, limit, total),
	}, nil
}

func (svc *DeckService) GetDeck(deckID, userID string) (*dto.DeckResponse, error) {
	deck, err := svc.deckRepo.GetDeck(deckID, userID)
	if err != nil {
		return nil, shared.NewNotFoundError("Deck not found")
	}

	count, err := svc.deckRepo.CountFlashcards(deck.ID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	response := mapDeckToResponse(deck, count)
	return &response, nil
}

func (svc *DeckService) CreateDeck(req dto.CreateDeckRequest, userID string) (*dto.DeckResponse, error) {
	deck, err := svc.deckRepo.CreateDeck(&model.Deck{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	response := mapDeckToResponse(deck, 0)
	return &response, nil
}

func (svc *DeckService) UpdateDeck(deckID, userID string, req dto.UpdateDeckRequest) (*dto.DeckResponse, error) {
	deck, err := svc.deckRepo.GetDeck(deckID, userID)
	if err != nil {
		return nil, shared.NewNotFoundError("Deck not found")
	}

	if req.Name != nil {
		deck.Name = *req.Name
	}
	if req.Description != nil {
		deck.Description = *req.Description
	}
	deck.UpdatedAt = time.Now()

	if err := svc.deckRepo.UpdateDeck(deck); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	count, _ := svc.deckRepo.CountFlashcards(deck.ID)
	response := mapDeckToResponse(deck, count)
	return &response, nil
}

func (svc *DeckService) DeleteDeck(deckID, userID string) error {
	if _, err := svc.deckRepo.GetDeck(deckID, userID); err != nil {
		return shared.NewNotFoundError("Deck not found")
	}

	if err := svc.deckRepo.DeleteDeck(deckID, userID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	return nil
}

func mapDeckToResponse(deck *model.Deck, flashcardCount int64) dto.DeckResponse {
	return dto.DeckResponse{
		ID:             deck.ID,
		Name:           deck.Name,
		Description:    deck.Description,
		FlashcardCount: flashcardCount,
		CreatedAt:      deck.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      deck.UpdatedAt.Format(time.RFC3339),
	}
}
