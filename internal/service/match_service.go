package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/retrier"
)

// MatchService wraps a provider with the retry-then-fallback policy: a
// failed or malformed scoring call is retried a few times and then
// absorbed into the neutral default. Score never fails; one unscoreable
// job must never block a search.
type MatchService struct {
	provider MatchAnalyzer
	policy   retrier.Policy
	logger   zerolog.Logger
}

func NewMatchService(provider MatchAnalyzer, cfg *config.MatchConfig, logger zerolog.Logger) *MatchService {
	policy := retrier.New(cfg.RetryAttempts, retrier.Linear(cfg.RetryBaseDelay))
	policy.Retryable = func(err error) bool {
		if errors.Is(err, ErrMissingAPIKey) {
			return false
		}
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	return &MatchService{
		provider: provider,
		policy:   policy,
		logger:   logger.With().Str("component", "matcher").Logger(),
	}
}

// Score analyzes one (job, resume) pair, falling back to the neutral match
// when every attempt fails.
func (s *MatchService) Score(ctx context.Context, job model.JobPosting, resumeText string) model.JobMatch {
	var match model.JobMatch
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		m, err := s.provider.AnalyzeMatch(ctx, job, resumeText)
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	if err != nil {
		s.logger.Warn().Str("job_id", job.ID).Err(err).Msg("match analysis failed, using neutral score")
		return model.NeutralMatch(job.ID)
	}
	return match
}
