package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/model"
	"github.com/jakobos/10x-cards/services/repositories"
	"github.com/jakobos/10x-cards/shared"
)

// aiClient is what the orchestration needs from the structured-generation
// client; the interface keeps the service testable with a fake provider.
type aiClient interface {
	GenerateJSON(ctx context.Context, params GenerationParams, out interface{}) error
}

type deckResolver interface {
	GetDeck(deckID, userID string) (*model.Deck, error)
}

type generationStore interface {
	CreateGeneration(generation *model.Generation) (*model.Generation, error)
}

type generationMetrics interface {
	RecordGeneration(status string, duration time.Duration, candidateCount int)
}

// GenerationService orchestrates one AI flashcard-generation call:
// fingerprint the source text, call the model with a fixed schema, measure
// the call, persist the generation record. The record is written only after
// the model responded, so a failed call leaves no partial state.
type GenerationService struct {
	appContext.DefaultService

	sqlSvc *PostgresService

	ai          aiClient
	metrics     generationMetrics
	deckRepo    deckResolver
	generations generationStore
}

const GENERATION_SVC = "generation_svc"

const (
	generationModel       = "openai/gpt-4o-mini"
	generationTemperature = 0.7
	generationMaxTokens   = 2048
)

const generationSystemPrompt = `You are an expert educational content creator specializing in creating high-quality flashcards.

Your task is to analyze the provided text and generate flashcards that:
- Focus on key concepts, definitions, and important information
- Are clear, concise, and easy to understand
- Have questions (front) that are specific and unambiguous
- Have answers (back) that are accurate and complete
- Are pedagogically effective for learning and retention

Generate between 5-8 flashcards based on the content richness of the text.`

// flashcardGenerationSchema bounds the response to 3-10 front/back pairs.
var flashcardGenerationSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"flashcards": map[string]interface{}{
			"type":        "array",
			"description": "Array of generated flashcard candidates",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"front": map[string]interface{}{
						"type":        "string",
						"description": "The question or prompt for the flashcard (front side)",
					},
					"back": map[string]interface{}{
						"type":        "string",
						"description": "The answer or explanation for the flashcard (back side)",
					},
				},
				"required":             []string{"front", "back"},
				"additionalProperties": false,
			},
			"minItems": 3,
			"maxItems": 10,
		},
	},
	"required":             []string{"flashcards"},
	"additionalProperties": false,
}

func (svc GenerationService) Id() string {
	return GENERATION_SVC
}

func (svc *GenerationService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *GenerationService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.metrics = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.ai = svc.Service(OPENROUTER_SVC).(*OpenRouterService)
	svc.deckRepo = repositories.NewDeckRepository(svc.sqlSvc.Db())
	svc.generations = repositories.NewGenerationRepository(svc.sqlSvc.Db())
	return nil
}

// GenerateCandidates runs the full generation flow for one source text.
// Taxonomy errors from the model client pass through untouched so the http
// layer can map them per kind.
func (svc *GenerationService) GenerateCandidates(ctx context.Context, sourceText, deckID, userID string) (*dto.GenerateFlashcardsResponse, error) {
	// Resolve the deck first so a bad deck id never spends an AI call.
	if _, err := svc.deckRepo.GetDeck(deckID, userID); err != nil {
		return nil, shared.NewNotFoundError("Deck not found or does not belong to user")
	}

	startTime := time.Now()

	sum := sha256.Sum256([]byte(sourceText))
	sourceTextHash := hex.EncodeToString(sum[:])

	temperature := generationTemperature
	userPrompt := fmt.Sprintf("Generate flashcards from the following text:\n\n%s\n\nCreate flashcards that capture the most important information from this text.", sourceText)

	var result struct {
		Flashcards []dto.FlashcardCandidate `json:"flashcards"`
	}

	err := svc.ai.GenerateJSON(ctx, GenerationParams{
		SystemPrompt: generationSystemPrompt,
		UserPrompt:   userPrompt,
		JSONSchema:   flashcardGenerationSchema,
		Model:        generationModel,
		Temperature:  &temperature,
		MaxTokens:    generationMaxTokens,
	}, &result)

	duration := time.Since(startTime)

	if err != nil {
		svc.metrics.RecordGeneration("failed", duration, 0)
		return nil, err
	}

	generation, err := svc.generations.CreateGeneration(&model.Generation{
		UserID:             userID,
		DeckID:             deckID,
		Model:              generationModel,
		GeneratedCount:     len(result.Flashcards),
		SourceTextHash:     sourceTextHash,
		SourceTextLength:   len(sourceText),
		GenerationDuration: duration.Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save generation record: %w", err)
	}

	svc.metrics.RecordGeneration("success", duration, len(result.Flashcards))

	log.WithFields(log.Fields{
		"generation_id": generation.ID,
		"deck_id":       deckID,
		"count":         len(result.Flashcards),
		"duration_ms":   duration.Milliseconds(),
	}).Info("Generated flashcard candidates")

	return &dto.GenerateFlashcardsResponse{
		GenerationID: generation.ID,
		Candidates:   result.Flashcards,
	}, nil
}
