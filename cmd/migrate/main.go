package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/config"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"
)

func main() {
	var module string
	var command string

	flag.StringVar(&module, "module", "widget", "Module to migrate")
	flag.StringVar(&command, "cmd", "up", "Migration command (up, down, version, force)")
	flag.Parse()

	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	utils.InitLogger(cfg.LogLevel, cfg.Env)
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("❌ DATABASE_URL is empty; in-memory sessions need no migrations")
	}

	dialect, databaseURL, err := dialectOf(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Unsupported database")
	}

	// Migration path
	migrationPath := fmt.Sprintf("file://migrations/%s/%s", module, dialect)

	log.Info().Str("module", module).Str("path", migrationPath).Str("database", maskDatabaseURL(cfg.DatabaseURL)).Msg("🔄 Running migrations")

	// Create migrate instance
	m, err := migrate.New(migrationPath, databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create migrate instance")
	}
	defer m.Close()

	// Execute command
	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("❌ Migration UP failed")
		}
		log.Info().Msg("✅ Migrations UP completed!")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("❌ Migration DOWN failed")
		}
		log.Info().Msg("✅ Migrations DOWN completed!")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("❌ Failed to get version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("📌 Current version")

	case "force":
		if len(flag.Args()) < 1 {
			log.Fatal().Msg("❌ Please provide version number for force command")
		}
		forceVersion, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Invalid version number")
		}
		if err := m.Force(forceVersion); err != nil {
			log.Fatal().Err(err).Msg("❌ Force failed")
		}
		log.Info().Int("version", forceVersion).Msg("✅ Forced version")

	default:
		log.Fatal().Msgf("❌ Unknown command: %s (use: up, down, version, force)", command)
	}
}

// dialectOf picks the migration set matching the DATABASE_URL scheme.
// dialectOf picks the migration directory for url and returns the url in the
// form golang-migrate expects. sqlite "file:" DSNs become "sqlite://".
func dialectOf(url string) (string, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres", url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return "sqlite", url, nil
	case strings.HasPrefix(url, "file:"):
		return "sqlite", "sqlite://" + strings.TrimPrefix(url, "file:"), nil
	}
	return "", "", fmt.Errorf("unsupported DATABASE_URL scheme")
}

// maskDatabaseURL hides password in database URL for logging
func maskDatabaseURL(url string) string {
	if len(url) < 20 {
		return "***"
	}
	return url[:20] + "***" + url[len(url)-10:]
}
