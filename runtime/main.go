package main

import (
	"github.com/jakobos/10x-cards/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.PostgresService{},
		&services.RedisService{},
		&services.MonitoringService{},
		&services.OpenRouterService{},
		&services.RateLimitService{},

		&services.AuthService{},
		&services.DeckService{},
		&services.FlashcardService{},
		&services.GenerationService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("service context exited")
		return
	}
}
