package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/model"
)

// JobScorer is the slice of MatchService the orchestrator needs.
type JobScorer interface {
	Score(ctx context.Context, job model.JobPosting, resumeText string) model.JobMatch
}

// MatchUsecase fans resume scoring out over a capped job list in small
// concurrent batches. Batches run strictly one after another; concurrency
// exists only inside a batch, and dispatches within a batch are staggered
// to avoid bursting the provider. The orchestrator itself never fails.
type MatchUsecase struct {
	scorer JobScorer
	cfg    *config.MatchConfig
	logger zerolog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewMatchUsecase(scorer JobScorer, cfg *config.MatchConfig, logger zerolog.Logger) *MatchUsecase {
	return &MatchUsecase{
		scorer: scorer,
		cfg:    cfg,
		logger: logger.With().Str("component", "match-orchestrator").Logger(),
		sleep:  sleepCtx,
	}
}

// ScoreAll scores the first MaxJobs input jobs against the resume. The cap
// is cost control: every entry is an external model call. Output order
// matches input order regardless of completion order, one entry per
// analyzed job.
func (uc *MatchUsecase) ScoreAll(ctx context.Context, jobs []model.JobPosting, resumeText string) []model.JobMatch {
	if len(jobs) > uc.cfg.MaxJobs {
		jobs = jobs[:uc.cfg.MaxJobs]
	}
	uc.logger.Info().Int("jobs", len(jobs)).Msg("scoring jobs against resume")

	matches := make([]model.JobMatch, len(jobs))
	for start := 0; start < len(jobs); start += uc.cfg.BatchSize {
		end := min(start+uc.cfg.BatchSize, len(jobs))
		uc.processBatch(ctx, jobs[start:end], matches[start:end], resumeText)

		if end < len(jobs) {
			if err := uc.sleep(ctx, uc.cfg.BatchDelay); err != nil {
				// Caller is gone; fill the remainder with neutral entries
				// so cardinality still matches the input.
				for i := end; i < len(jobs); i++ {
					matches[i] = model.NeutralMatch(jobs[i].ID)
				}
				return matches
			}
		}
	}
	return matches
}

func (uc *MatchUsecase) processBatch(ctx context.Context, batch []model.JobPosting, out []model.JobMatch, resumeText string) {
	var wg sync.WaitGroup
	for i, job := range batch {
		wg.Add(1)
		go func(i int, job model.JobPosting) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					uc.logger.Error().Str("job_id", job.ID).Any("panic", r).Msg("scoring panicked, using neutral score")
					out[i] = model.NeutralMatch(job.ID)
				}
			}()

			if i > 0 {
				if err := uc.sleep(ctx, time.Duration(i)*uc.cfg.StaggerDelay); err != nil {
					out[i] = model.NeutralMatch(job.ID)
					return
				}
			}
			out[i] = uc.scorer.Score(ctx, job, resumeText)
		}(i, job)
	}
	wg.Wait()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
