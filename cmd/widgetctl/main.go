package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

func main() {
	_ = godotenv.Load()
	utils.InitLogger(envOr("LOG_LEVEL", "warn"), "development")

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Error().Err(err).Msg("widgetctl failed")
		os.Exit(1)
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
