package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jakobos/10x-cards/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RequiredAuth() fiber.Handler
}

type DeckServiceInterface interface {
	GetDecks(userID string, page, limit int) (*dto.DeckListResponse, error)
	GetDeck(deckID, userID string) (*dto.DeckResponse, error)
	CreateDeck(req dto.CreateDeckRequest, userID string) (*dto.DeckResponse, error)
	UpdateDeck(deckID, userID string, req dto.UpdateDeckRequest) (*dto.DeckResponse, error)
	DeleteDeck(deckID, userID string) error
}

type FlashcardServiceInterface interface {
	CreateFromAIGeneration(req dto.BatchCreateFlashcardsRequest, deckID, userID string) (*dto.BatchCreateFlashcardsResponse, error)
	CreateFlashcard(req dto.CreateFlashcardRequest, deckID, userID string) (*dto.FlashcardResponse, error)
	GetFlashcards(deckID, userID string, page, limit int) (*dto.FlashcardListResponse, error)
	UpdateFlashcard(flashcardID, userID string, req dto.UpdateFlashcardRequest) (*dto.FlashcardResponse, error)
	DeleteFlashcard(flashcardID, userID string) error
}

type GenerationServiceInterface interface {
	GenerateCandidates(ctx context.Context, sourceText, deckID, userID string) (*dto.GenerateFlashcardsResponse, error)
}
