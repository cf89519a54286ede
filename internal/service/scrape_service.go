package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/parser"
	"github.com/hirescope/hirescope/internal/ratelimit"
	"github.com/hirescope/hirescope/internal/retrier"
)

// FetchParams are the raw query inputs for a single search-results page.
type FetchParams struct {
	Keywords   string
	Location   string
	Distance   string
	TimePosted string
	Start      int
}

// ScrapeService owns everything between search criteria and a parsed job
// list: outbound pacing, retries, pagination, and post-fetch filtering.
// A search that exhausts its retry budget fails hard; no partial list is
// invented.
type ScrapeService struct {
	client *resty.Client
	pacer  *ratelimit.Pacer
	cfg    *config.ScraperConfig
	policy retrier.Policy
	logger zerolog.Logger
}

func NewScrapeService(cfg *config.ScraperConfig, pacer *ratelimit.Pacer, logger zerolog.Logger) *ScrapeService {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetHeader("Cache-Control", "no-cache")

	policy := retrier.New(cfg.RetryAttempts, retrier.Linear(cfg.RetryBaseDelay))
	policy.Retryable = func(err error) bool {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	return &ScrapeService{
		client: client,
		pacer:  pacer,
		cfg:    cfg,
		policy: policy,
		logger: logger.With().Str("component", "scraper").Logger(),
	}
}

// Search fetches and parses a single search-results page.
func (s *ScrapeService) Search(ctx context.Context, params FetchParams) ([]model.JobPosting, error) {
	return s.fetchPage(ctx, params)
}

// SearchPaginated accumulates postings across successive pages until a
// page comes back empty, the page ceiling is hit, or the job cap is
// reached. Postings are deduplicated by id; first occurrence wins, so
// document+page order is preserved. Company filters are applied to the
// final accumulation.
func (s *ScrapeService) SearchPaginated(ctx context.Context, criteria model.SearchCriteria) ([]model.JobPosting, error) {
	params := FetchParams{
		Keywords:   criteria.Keywords,
		Location:   criteria.Location,
		Distance:   criteria.Distance,
		TimePosted: criteria.TimePosted,
	}

	var all []model.JobPosting
	seen := make(map[string]struct{})

	for page := 0; page < s.cfg.MaxPages; page++ {
		params.Start = page * s.cfg.PageSize
		batch, err := s.fetchPage(ctx, params)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		for _, job := range batch {
			if _, dup := seen[job.ID]; dup {
				continue
			}
			seen[job.ID] = struct{}{}
			all = append(all, job)
		}

		if len(all) >= s.cfg.MaxJobs {
			all = all[:s.cfg.MaxJobs]
			break
		}
	}

	s.logger.Debug().Int("total", len(all)).Str("keywords", criteria.Keywords).Msg("pagination complete")

	return FilterCompanies(all, criteria.IncludedCompanies, criteria.ExcludedCompanies, criteria.ExcludeAgencies), nil
}

func (s *ScrapeService) fetchPage(ctx context.Context, params FetchParams) ([]model.JobPosting, error) {
	var jobs []model.JobPosting

	err := s.policy.Do(ctx, func(ctx context.Context) error {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}

		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"keywords": params.Keywords,
				"location": params.Location,
				"distance": params.Distance,
				"f_TPR":    params.TimePosted,
				"start":    strconv.Itoa(params.Start),
			}).
			Get(s.cfg.SearchURL)
		if err != nil {
			return fmt.Errorf("job board fetch: %w", err)
		}

		if resp.StatusCode() == http.StatusTooManyRequests {
			wait := retryAfter(resp, s.cfg.RateLimitWait)
			s.logger.Warn().Dur("wait", wait).Msg("job board rate limited, pausing")
			return &retrier.PauseError{Delay: wait, Err: errors.New("job board rate limited")}
		}
		if resp.IsError() {
			return fmt.Errorf("job board returned %d", resp.StatusCode())
		}

		parsed, err := parser.Parse(bytes.NewReader(resp.Body()))
		if err != nil {
			return err
		}
		jobs = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int("count", len(jobs)).Int("start", params.Start).Msg("parsed search results page")
	return jobs, nil
}

// retryAfter reads the provider's cooldown hint in seconds, falling back
// to the configured default when absent or unparseable.
func retryAfter(resp *resty.Response, fallback time.Duration) time.Duration {
	header := resp.Header().Get("Retry-After")
	if header == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
