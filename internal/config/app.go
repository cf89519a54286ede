package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type AppConfig struct {
	Name string
	Env  string
	Port string

	// Inbound limiter for the scrape proxy endpoint. Protects the upstream
	// job board from local over-use, not the server from its clients.
	ScrapeRateLimitMax    int
	ScrapeRateLimitWindow time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name: envString("APP_NAME", "hirescope"),
			Env:  env,
			Port: envString("APP_PORT", ":3000"),

			ScrapeRateLimitMax:    envInt("SCRAPE_RATE_LIMIT_MAX", 10),
			ScrapeRateLimitWindow: envDuration("SCRAPE_RATE_LIMIT_WINDOW", time.Minute),
		}
	})
	return appConfig
}
