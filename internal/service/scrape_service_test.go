package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/ratelimit"
)

func cardHTML(id, title, company string) string {
	return fmt.Sprintf(`<div class="job-search-card" data-entity-urn="urn:li:jobPosting:%s">`+
		`<span class="job-search-card__title">%s</span>`+
		`<h4 class="job-search-card__company-name">%s</h4>`+
		`</div>`, id, title, company)
}

func pageHTML(cards ...string) string {
	return "<html><body><ul>" + strings.Join(cards, "") + "</ul></body></html>"
}

func newTestScrapeService(url string, attempts int, slept *[]time.Duration) *ScrapeService {
	cfg := &config.ScraperConfig{
		SearchURL:      url,
		UserAgent:      "test-agent",
		PageSize:       25,
		MaxPages:       8,
		MaxJobs:        100,
		RetryAttempts:  attempts,
		RetryBaseDelay: 2 * time.Second,
		RateLimitWait:  60 * time.Second,
		Timeout:        5 * time.Second,
	}
	s := NewScrapeService(cfg, ratelimit.NewPacer(0), zerolog.Nop())
	if slept != nil {
		s.policy.Sleep = func(_ context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		}
	}
	return s
}

func TestSearchPaginatedAccumulatesAcrossPages(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "engineer", r.URL.Query().Get("keywords"))
		assert.Equal(t, "Austin, TX", r.URL.Query().Get("location"))
		assert.Equal(t, "25", r.URL.Query().Get("distance"))

		switch r.URL.Query().Get("start") {
		case "0":
			var cards []string
			for i := 1; i <= 8; i++ {
				cards = append(cards, cardHTML(fmt.Sprintf("%d", i), fmt.Sprintf("Role %d", i), "Acme"))
			}
			fmt.Fprint(w, pageHTML(cards...))
		case "25":
			var cards []string
			for i := 9; i <= 12; i++ {
				cards = append(cards, cardHTML(fmt.Sprintf("%d", i), fmt.Sprintf("Role %d", i), "Acme"))
			}
			fmt.Fprint(w, pageHTML(cards...))
		default:
			fmt.Fprint(w, pageHTML())
		}
	}))
	defer srv.Close()

	s := newTestScrapeService(srv.URL, 3, nil)
	jobs, err := s.SearchPaginated(context.Background(), model.SearchCriteria{
		Keywords: "engineer",
		Location: "Austin, TX",
		Distance: "25",
	})

	require.NoError(t, err)
	require.Len(t, jobs, 12)
	assert.Equal(t, 3, requests, "two result pages plus the empty page that ends pagination")
	for i, job := range jobs {
		assert.Equal(t, fmt.Sprintf("%d", i+1), job.ID, "document+page order preserved")
	}
}

func TestSearchPaginatedDeduplicatesAcrossPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("start") {
		case "0":
			fmt.Fprint(w, pageHTML(cardHTML("1", "Role 1", "Acme"), cardHTML("2", "Role 2", "Acme")))
		case "25":
			// The board shifted results between fetches; id 2 repeats.
			fmt.Fprint(w, pageHTML(cardHTML("2", "Role 2", "Acme"), cardHTML("3", "Role 3", "Acme")))
		default:
			fmt.Fprint(w, pageHTML())
		}
	}))
	defer srv.Close()

	s := newTestScrapeService(srv.URL, 3, nil)
	jobs, err := s.SearchPaginated(context.Background(), model.SearchCriteria{Keywords: "engineer"})

	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "1", jobs[0].ID)
	assert.Equal(t, "2", jobs[1].ID)
	assert.Equal(t, "3", jobs[2].ID)
}

func TestSearchPaginatedTruncatesAtJobCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		var cards []string
		for i := 0; i < 25; i++ {
			cards = append(cards, cardHTML(fmt.Sprintf("%s-%d", start, i), "Role", "Acme"))
		}
		fmt.Fprint(w, pageHTML(cards...))
	}))
	defer srv.Close()

	s := newTestScrapeService(srv.URL, 3, nil)
	s.cfg.MaxJobs = 30
	jobs, err := s.SearchPaginated(context.Background(), model.SearchCriteria{Keywords: "engineer"})

	require.NoError(t, err)
	assert.Len(t, jobs, 30)
}

func TestSearchPausesOnRateLimitSignal(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, pageHTML(cardHTML("1", "Role", "Acme")))
	}))
	defer srv.Close()

	var slept []time.Duration
	s := newTestScrapeService(srv.URL, 1, &slept)
	jobs, err := s.Search(context.Background(), FetchParams{Keywords: "engineer"})

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	// The provider-specified cooldown is honored and does not consume the
	// single configured attempt.
	assert.Equal(t, []time.Duration{30 * time.Second}, slept)
	assert.Equal(t, 2, requests)
}

func TestSearchRateLimitWithoutHeaderUsesDefaultWait(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, pageHTML(cardHTML("1", "Role", "Acme")))
	}))
	defer srv.Close()

	var slept []time.Duration
	s := newTestScrapeService(srv.URL, 1, &slept)
	_, err := s.Search(context.Background(), FetchParams{Keywords: "engineer"})

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{60 * time.Second}, slept)
}

func TestSearchSurfacesErrorAfterExhaustedRetries(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var slept []time.Duration
	s := newTestScrapeService(srv.URL, 3, &slept)
	_, err := s.Search(context.Background(), FetchParams{Keywords: "engineer"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, 3, requests)
	// Linear backoff: attempt*base between tries.
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, slept)
}

func TestSearchPaginatedAppliesCompanyFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "0" {
			fmt.Fprint(w, pageHTML())
			return
		}
		fmt.Fprint(w, pageHTML(
			cardHTML("1", "Role", "Acme Corp"),
			cardHTML("2", "Role", "Globex"),
			cardHTML("3", "Role", "TalentBridge Recruiting"),
		))
	}))
	defer srv.Close()

	s := newTestScrapeService(srv.URL, 3, nil)
	jobs, err := s.SearchPaginated(context.Background(), model.SearchCriteria{
		Keywords:          "engineer",
		ExcludedCompanies: []string{"globex"},
		ExcludeAgencies:   true,
	})

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme Corp", jobs[0].Company)
}
