package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hirescope/hirescope/internal/cache"
	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/domain/fiber/handler"
	"github.com/hirescope/hirescope/internal/middleware"
	"github.com/hirescope/hirescope/internal/ratelimit"
	"github.com/hirescope/hirescope/internal/service"
	"github.com/hirescope/hirescope/internal/usecase"
)

func main() {
	ctx := context.Background()
	envErr := godotenv.Load()

	appConfig := config.LoadAppConfig()
	log := newLogger(appConfig.Env)
	if envErr != nil {
		// Fine in deployed environments where config comes from the host.
		log.Debug().Msg("no .env file loaded")
	}

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	scraperConfig := config.LoadScraperConfig()
	pacer := ratelimit.NewPacer(scraperConfig.MinRequestDelay)
	scraper := service.NewScrapeService(scraperConfig, pacer, log)

	matchConfig := config.LoadMatchConfig()
	provider, err := newMatchProvider(ctx, matchConfig.Provider)
	if err != nil {
		log.Fatal().Err(err).Str("provider", matchConfig.Provider).Msg("could not initialize match provider")
	}
	matcher := service.NewMatchService(provider, matchConfig, log)

	resultCache := cache.New(cache.DefaultTTL)
	searchUC := usecase.NewSearchUsecase(scraper, resultCache, log)
	matchUC := usecase.NewMatchUsecase(matcher, matchConfig, log)

	scrapeLimiter := ratelimit.NewLimiter(appConfig.ScrapeRateLimitWindow, appConfig.ScrapeRateLimitMax)

	h := handler.NewSearchHandler(scraper, provider, searchUC, matchUC, scrapeLimiter)
	h.RegisterRoutes(app)

	log.Info().Str("port", appConfig.Port).Msg("server running")
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "production" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.DebugLevel)
}

func newMatchProvider(ctx context.Context, name string) (service.MatchAnalyzer, error) {
	switch name {
	case "gemini":
		return service.NewGeminiService(ctx)
	default:
		return service.NewAnthropicService(), nil
	}
}
