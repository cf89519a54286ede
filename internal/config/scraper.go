package config

import (
	"sync"
	"time"
)

// ScraperConfig tunes the outbound job-board client. The defaults are
// deliberately conservative: the upstream is a shared resource and tripping
// its anti-automation defenses blocks every user of the process.
type ScraperConfig struct {
	SearchURL       string
	UserAgent       string
	PageSize        int
	MaxPages        int
	MaxJobs         int
	MinRequestDelay time.Duration
	RetryAttempts   int
	RetryBaseDelay  time.Duration
	RateLimitWait   time.Duration
	Timeout         time.Duration
}

var (
	scraperConfig *ScraperConfig
	scraperOnce   sync.Once
)

func LoadScraperConfig() *ScraperConfig {
	scraperOnce.Do(func() {
		scraperConfig = &ScraperConfig{
			SearchURL:       envString("JOB_BOARD_SEARCH_URL", "https://www.linkedin.com/jobs/search"),
			UserAgent:       envString("JOB_BOARD_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"),
			PageSize:        envInt("JOB_BOARD_PAGE_SIZE", 25),
			MaxPages:        envInt("JOB_BOARD_MAX_PAGES", 8),
			MaxJobs:         envInt("JOB_BOARD_MAX_JOBS", 100),
			MinRequestDelay: envDuration("JOB_BOARD_MIN_DELAY", 12*time.Second),
			RetryAttempts:   envInt("JOB_BOARD_RETRY_ATTEMPTS", 3),
			RetryBaseDelay:  envDuration("JOB_BOARD_RETRY_BASE_DELAY", 2*time.Second),
			RateLimitWait:   envDuration("JOB_BOARD_RATE_LIMIT_WAIT", 60*time.Second),
			Timeout:         envDuration("JOB_BOARD_TIMEOUT", 30*time.Second),
		}
	})
	return scraperConfig
}
