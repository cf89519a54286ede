package config

import (
	"sync"
	"time"
)

// MatchConfig tunes the resume-match pipeline: which provider backs it,
// how many jobs are analyzed per search, and the pacing between calls.
type MatchConfig struct {
	Provider         string // "anthropic" or "gemini"
	MaxJobs          int
	BatchSize        int
	StaggerDelay     time.Duration
	BatchDelay       time.Duration
	RetryAttempts    int
	RetryBaseDelay   time.Duration
	DescriptionLimit int
	ResumeLimit      int
}

var (
	matchConfig *MatchConfig
	matchOnce   sync.Once
)

func LoadMatchConfig() *MatchConfig {
	matchOnce.Do(func() {
		matchConfig = &MatchConfig{
			Provider:         envString("MATCH_PROVIDER", "anthropic"),
			MaxJobs:          envInt("MATCH_MAX_JOBS", 5),
			BatchSize:        envInt("MATCH_BATCH_SIZE", 2),
			StaggerDelay:     envDuration("MATCH_STAGGER_DELAY", 1500*time.Millisecond),
			BatchDelay:       envDuration("MATCH_BATCH_DELAY", 3*time.Second),
			RetryAttempts:    envInt("MATCH_RETRY_ATTEMPTS", 2),
			RetryBaseDelay:   envDuration("MATCH_RETRY_BASE_DELAY", 2*time.Second),
			DescriptionLimit: envInt("MATCH_DESCRIPTION_LIMIT", 500),
			ResumeLimit:      envInt("MATCH_RESUME_LIMIT", 1000),
		}
	})
	return matchConfig
}
