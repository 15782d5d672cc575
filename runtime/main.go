package main

import (
	"os"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"

	"github.com/prophesy-fun/prophesy_api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	setLogLevel(os.Getenv("LOG_LEVEL"))

	ctx, err := context.NewCtx(
		&services.MonitoringService{},
		&services.DatabaseService{},
		&services.RedisService{},
		&services.JWTService{},
		&services.IdentityService{},
		&services.RateLimitService{},
		&services.AdmissionService{},

		&services.TweetService{},
		&services.UserService{},
		&services.TwitterService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure services")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service stopped")
		return
	}
}

func setLogLevel(level string) {
	if level == "" {
		level = "info"
	}

	zl, err := zerolog.ParseLevel(level)
	if err != nil {
		zl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(zl)

	if ll, err := logrus.ParseLevel(level); err == nil {
		logrus.SetLevel(ll)
	}
}
