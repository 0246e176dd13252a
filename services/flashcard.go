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

type FlashcardService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	monitoringSvc *MonitoringService

	deckRepo       *repositories.DeckRepository
	flashcardRepo  *repositories.FlashcardRepository
	generationRepo *repositories.GenerationRepository
}

const FLASHCARD_SVC = "flashcard_svc"

func (svc FlashcardService) Id() string {
	return FLASHCARD_SVC
}

func (svc *FlashcardService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *FlashcardService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	db := svc.sqlSvc.Db()
	svc.deckRepo = repositories.NewDeckRepository(db)
	svc.flashcardRepo = repositories.NewFlashcardRepository(db)
	svc.generationRepo = repositories.NewGenerationRepository(db)
	return nil
}

// CreateFromAIGeneration commits a batch of accepted candidates and writes
// the acceptance metrics onto the generation record. The metrics update is
// best effort: a failure there is logged and swallowed, the created cards
// stand.
func (svc *FlashcardService) CreateFromAIGeneration(req dto.BatchCreateFlashcardsRequest, deckID, userID string) (*dto.BatchCreateFlashcardsResponse, error) {
	if _, err := svc.deckRepo.GetDeck(deckID, userID); err != nil {
		return nil, shared.NewNotFoundError("Deck not found or does not belong to user")
	}

	if _, err := svc.generationRepo.GetGeneration(req.GenerationID, userID, deckID); err != nil {
		return nil, shared.NewNotFoundError("Generation not found or does not belong to user and deck")
	}

	uneditedCount := 0
	editedCount := 0
	generationID := req.GenerationID

	flashcards := make([]model.Flashcard, len(req.Flashcards))
	for i, card := range req.Flashcards {
		if card.Source == shared.SourceAIEdited {
			editedCount++
		} else {
			uneditedCount++
		}

		flashcards[i] = model.Flashcard{
			DeckID:       deckID,
			GenerationID: &generationID,
			Front:        card.Front,
			Back:         card.Back,
			Source:       card.Source,
		}
	}

	if err := svc.flashcardRepo.CreateFlashcards(flashcards); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := svc.generationRepo.UpdateAcceptanceMetrics(req.GenerationID, uneditedCount, editedCount); err != nil {
		// Flashcards are committed; losing the metrics update is acceptable.
		log.WithError(err).WithField("generation_id", req.GenerationID).
			Error("Failed to update generation metrics")
	}

	svc.monitoringSvc.RecordAcceptedFlashcards(uneditedCount, editedCount)

	return &dto.BatchCreateFlashcardsResponse{
		CreatedCount: len(flashcards),
		GenerationID: req.GenerationID,
	}, nil
}

func (svc *FlashcardService) CreateFlashcard(req dto.CreateFlashcardRequest, deckID, userID string) (*dto.FlashcardResponse, error) {
	if _, err := svc.deckRepo.GetDeck(deckID, userID); err != nil {
		return nil, shared.NewNotFoundError("Deck not found or does not belong to user")
	}

	flashcard, err := svc.flashcardRepo.CreateFlashcard(&model.Flashcard{
		DeckID: deckID,
		Front:  req.Front,
		Back:   req.Back,
		Source: shared.SourceManual,
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return mapFlashcardToResponse(flashcard), nil
}

func (svc *FlashcardService) GetFlashcards(deckID, userID string, page, limit int) (*dto.FlashcardListResponse, error) {
	if _, err := svc.deckRepo.GetDeck(deckID, userID); err != nil {
		return nil, shared.NewNotFoundError("Deck not found or does not belong to user")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	flashcards, total, err := svc.flashcardRepo.GetFlashcards(deckID, (page-1)*limit, limit)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.FlashcardResponse, len(flashcards))
	for i := range flashcards {
		responses[i] = *mapFlashcardToResponse(&flashcards[i])
	}

	return &dto.FlashcardListResponse{
		Flashcards: responses,
		Pagination: paginationResponse(page, limit, total),
	}, nil
}

func (svc *FlashcardService) UpdateFlashcard(flashcardID, userID string, req dto.UpdateFlashcardRequest) (*dto.FlashcardResponse, error) {
	flashcard, err := svc.getOwnedFlashcard(flashcardID, userID)
	if err != nil {
		return nil, err
	}

	if req.Front != nil {
		flashcard.Front = *req.Front
	}
	if req.Back != nil {
		flashcard.Back = *req.Back
	}

	if err := svc.flashcardRepo.UpdateFlashcard(flashcard); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return mapFlashcardToResponse(flashcard), nil
}

func (svc *FlashcardService) DeleteFlashcard(flashcardID, userID string) error {
	if _, err := svc.getOwnedFlashcard(flashcardID, userID); err != nil {
		return err
	}

	if err := svc.flashcardRepo.DeleteFlashcard(flashcardID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	return nil
}

// getOwnedFlashcard resolves a flashcard through its deck's owner. A card
// in another user's deck is indistinguishable from a missing one.
func (svc *FlashcardService) getOwnedFlashcard(flashcardID, userID string) (*model.Flashcard, error) {
	flashcard, err := svc.flashcardRepo.GetFlashcard(flashcardID)
	if err != nil {
		return nil, shared.NewNotFoundError("Flashcard not found")
	}

	if _, err := svc.deckRepo.GetDeck(flashcard.DeckID, userID); err != nil {
		return nil, shared.NewNotFoundError("Flashcard not found")
	}

	return flashcard, nil
}

func mapFlashcardToResponse(flashcard *model.Flashcard) *dto.FlashcardResponse {
	return &dto.FlashcardResponse{
		ID:           flashcard.ID,
		DeckID:       flashcard.DeckID,
		GenerationID: flashcard.GenerationID,
		Front:        flashcard.Front,
		Back:         flashcard.Back,
		Source:       flashcard.Source,
		CreatedAt:    flashcard.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    flashcard.UpdatedAt.Format(time.RFC3339),
	}
}

func paginationResponse(page, limit int, total int64) dto.PaginationResponse {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return dto.PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
