package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	_ "github.com/jakobos/10x-cards/docs"
	"github.com/jakobos/10x-cards/services/handlers"
	"github.com/jakobos/10x-cards/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	deckSvc       *DeckService
	flashcardSvc  *FlashcardService
	generationSvc *GenerationService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.deckSvc = svc.Service(DECK_SVC).(*DeckService)
	svc.flashcardSvc = svc.Service(FLASHCARD_SVC).(*FlashcardService)
	svc.generationSvc = svc.Service(GENERATION_SVC).(*GenerationService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.app = fiber.New(fiber.Config{
		AppName:      "10x-cards",
		ErrorHandler: svc.handleError,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	log.WithField("port", svc.port).Info("http service listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) registerRoutes() {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	deckHandler := handlers.NewDeckHandler(svc.deckSvc)
	flashcardHandler := handlers.NewFlashcardHandler(svc.flashcardSvc)
	aiHandler := handlers.NewAIHandler(svc.generationSvc)

	svc.app.Get("/ping", svc.ping)
	svc.app.Get("/swagger/*", swagger.HandlerDefault)

	api := svc.app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	ai := api.Group("/ai", svc.authSvc.RequiredAuth(), svc.rateLimitSvc.AIRateLimit())
	ai.Post("/generate-flashcards", aiHandler.GenerateFlashcards)

	decks := api.Group("/decks", svc.authSvc.RequiredAuth(), svc.rateLimitSvc.APIRateLimit())
	decks.Get("/", deckHandler.GetDecks)
	decks.Post("/", deckHandler.CreateDeck)
	decks.Get("/:deckId", deckHandler.GetDeck)
	decks.Put("/:deckId", deckHandler.UpdateDeck)
	decks.Delete("/:deckId", deckHandler.DeleteDeck)

	decks.Get("/:deckId/flashcards", flashcardHandler.GetFlashcards)
	decks.Post("/:deckId/flashcards", flashcardHandler.CreateFlashcard)
	decks.Post("/:deckId/flashcards/batch", flashcardHandler.BatchCreateFlashcards)

	flashcards := api.Group("/flashcards", svc.authSvc.RequiredAuth(), svc.rateLimitSvc.APIRateLimit())
	flashcards.Put("/:flashcardId", flashcardHandler.UpdateFlashcard)
	flashcards.Delete("/:flashcardId", flashcardHandler.DeleteFlashcard)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

// handleError translates service errors into response codes. Provider
// errors from the AI client never leak upstream detail to the caller.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var authErr *shared.AuthenticationError
	if errors.As(err, &authErr) {
		log.WithError(err).Error("ai provider rejected credentials")
		return shared.ResponseRaw(c, fiber.StatusInternalServerError, fiber.Map{
			"error": "AI service configuration error. Please contact support.",
		})
	}

	var rateErr *shared.RateLimitError
	if errors.As(err, &rateErr) {
		c.Set("Retry-After", "60")
		return shared.ResponseRaw(c, fiber.StatusServiceUnavailable, fiber.Map{
			"error": "AI service is currently busy. Please try again in a moment.",
		})
	}

	var badErr *shared.BadRequestError
	if errors.As(err, &badErr) {
		return shared.ResponseRaw(c, fiber.StatusUnprocessableEntity, fiber.Map{
			"error": "The AI service could not process your text. Please try different content.",
		})
	}

	var netErr *shared.NetworkError
	if errors.As(err, &netErr) {
		return shared.ResponseRaw(c, fiber.StatusServiceUnavailable, fiber.Map{
			"error": "Could not reach the AI service. Please check your connection and try again.",
		})
	}

	var parseErr *shared.ParsingError
	if errors.As(err, &parseErr) {
		return shared.ResponseRaw(c, fiber.StatusBadGateway, fiber.Map{
			"error": "The AI service returned an unexpected response. Please try again.",
		})
	}

	var serverErr *shared.ServerError
	if errors.As(err, &serverErr) {
		return shared.ResponseRaw(c, fiber.StatusServiceUnavailable, fiber.Map{
			"error": "The AI service is temporarily unavailable. Please try again later.",
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
