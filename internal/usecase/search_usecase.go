package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hirescope/hirescope/internal/cache"
	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/service"
)

const searchCacheNamespace = "jobs"

// JobSearcher is the slice of ScrapeService the orchestrator needs.
type JobSearcher interface {
	SearchPaginated(ctx context.Context, criteria model.SearchCriteria) ([]model.JobPosting, error)
}

// SearchUsecase is the top-level search pipeline: cache, scrape,
// criteria filtering, envelope.
type SearchUsecase struct {
	searcher JobSearcher
	cache    *cache.Cache
	logger   zerolog.Logger
}

func NewSearchUsecase(searcher JobSearcher, c *cache.Cache, logger zerolog.Logger) *SearchUsecase {
	return &SearchUsecase{
		searcher: searcher,
		cache:    c,
		logger:   logger.With().Str("component", "search").Logger(),
	}
}

// Search returns the result envelope for the given criteria, serving from
// cache when an identical search ran within the TTL.
func (uc *SearchUsecase) Search(ctx context.Context, criteria model.SearchCriteria) (model.SearchResult, error) {
	if hit, ok := uc.cache.Get(searchCacheNamespace, criteria); ok {
		result := hit.(model.SearchResult)
		result.Cached = true
		uc.logger.Debug().Str("keywords", criteria.Keywords).Msg("serving search from cache")
		return result, nil
	}

	jobs, err := uc.searcher.SearchPaginated(ctx, criteria)
	if err != nil {
		return model.SearchResult{}, err
	}

	// The scrape client already filtered companies; running the same
	// contract again here keeps the orchestrator correct even if a future
	// searcher implementation skips it.
	jobs = service.FilterCompanies(jobs, criteria.IncludedCompanies, criteria.ExcludedCompanies, criteria.ExcludeAgencies)
	jobs = filterBySalary(jobs, criteria.SalaryRange)
	jobs = filterBySeniority(jobs, criteria.Seniority)
	if jobs == nil {
		jobs = []model.JobPosting{}
	}

	result := model.SearchResult{Jobs: jobs, TotalFound: len(jobs)}
	uc.cache.Set(searchCacheNamespace, criteria, result)

	uc.logger.Info().Int("total", result.TotalFound).Str("keywords", criteria.Keywords).Msg("search complete")
	return result, nil
}
