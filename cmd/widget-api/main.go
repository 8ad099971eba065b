package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/theme"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/widget"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/handlers"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/repositories"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/modules/widget/services"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/config"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/database"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/ask-assistant-widget/cmd/widget-api/docs"
)

// @title Ask the Assistant Widget API
// @version 1.0
// @description Widget sessions for the Ask the Assistant chat widget
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	utils.InitLogger(cfg.LogLevel, cfg.Env)
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("🚀 Starting widget-api")

	// Theme defaults
	defaults := theme.Defaults()
	if cfg.ThemeDefaultsFile != "" {
		if defaults, err = theme.LoadDefaults(cfg.ThemeDefaultsFile); err != nil {
			log.Fatal().Err(err).Msg("failed to load theme defaults")
		}
	}

	// Session store
	var sessionRepo repositories.SessionRepo
	if cfg.DatabaseURL != "" {
		db, err := database.NewDB(cfg.DatabaseURL, cfg.LogLevel == "debug")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect database")
		}
		defer db.Close()
		sessionRepo = repositories.NewSessionRepo(db.GORM)
	} else {
		log.Warn().Msg("⚠️  DATABASE_URL not set, widget sessions are kept in memory")
		sessionRepo = repositories.NewMemorySessionRepo()
	}

	// Bot platform client and services
	platform := botapi.NewClient(cfg.BotAPIBaseURL, cfg.HTTPTimeout)
	sessionService := services.NewSessionService(sessionRepo, platform, widget.Options{
		AskTimeout:    cfg.AskTimeout,
		Debug:         cfg.DemoHalDebug,
		ThemeDefaults: defaults,
	}, cfg.DefaultAlias)
	log.Info().Str("bot_api", platform.BaseURL()).Msg("🤖 Bot platform configured")

	// Idle session sweep
	sched := scheduler.New()
	if err := sched.Add("session-sweep", cfg.SessionSweepSchedule, func() {
		if _, err := sessionService.SweepIdle(cfg.SessionTTL); err != nil {
			utils.LogError("session sweep failed", err, nil)
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule session sweep")
	}
	sched.Start()
	defer sched.Stop()

	// Init handlers
	healthHandler := handlers.NewHealthHandler()
	sessionHandler := handlers.NewSessionHandler(sessionService)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Ask the Assistant Widget API",
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Widget session routes
	sessionHandler.Register(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down widget-api")
		_ = app.Shutdown()
	}()

	log.Info().Msgf("✅ widget-api running at :%s", cfg.Port)
	log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
