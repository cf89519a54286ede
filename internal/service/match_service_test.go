package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/model"
)

type fakeAnalyzer struct {
	calls   int
	results []func() (model.JobMatch, error)
}

func (f *fakeAnalyzer) AnalyzeMatch(_ context.Context, job model.JobPosting, _ string) (model.JobMatch, error) {
	idx := f.calls
	f.calls++
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	return f.results[idx]()
}

func matchCfg() *config.MatchConfig {
	return &config.MatchConfig{
		MaxJobs:          5,
		BatchSize:        2,
		RetryAttempts:    2,
		RetryBaseDelay:   time.Millisecond,
		DescriptionLimit: 500,
		ResumeLimit:      1000,
	}
}

func newTestMatchService(provider MatchAnalyzer) *MatchService {
	s := NewMatchService(provider, matchCfg(), zerolog.Nop())
	s.policy.Sleep = func(context.Context, time.Duration) error { return nil }
	return s
}

func TestScoreReturnsProviderResult(t *testing.T) {
	want := model.JobMatch{JobID: "1", Score: 77}
	provider := &fakeAnalyzer{results: []func() (model.JobMatch, error){
		func() (model.JobMatch, error) { return want, nil },
	}}

	got := newTestMatchService(provider).Score(context.Background(), model.JobPosting{ID: "1"}, "resume")
	assert.Equal(t, want, got)
	assert.Equal(t, 1, provider.calls)
}

func TestScoreRetriesThenSucceeds(t *testing.T) {
	want := model.JobMatch{JobID: "1", Score: 61}
	provider := &fakeAnalyzer{results: []func() (model.JobMatch, error){
		func() (model.JobMatch, error) { return model.JobMatch{}, errors.New("upstream 529") },
		func() (model.JobMatch, error) { return want, nil },
	}}

	got := newTestMatchService(provider).Score(context.Background(), model.JobPosting{ID: "1"}, "resume")
	assert.Equal(t, want, got)
	assert.Equal(t, 2, provider.calls)
}

func TestScoreFallsBackToNeutralMatch(t *testing.T) {
	provider := &fakeAnalyzer{results: []func() (model.JobMatch, error){
		func() (model.JobMatch, error) { return model.JobMatch{}, errors.New("boom") },
	}}

	got := newTestMatchService(provider).Score(context.Background(), model.JobPosting{ID: "42"}, "resume")
	assert.Equal(t, model.NeutralMatch("42"), got)
	assert.Equal(t, 2, provider.calls, "transient failures consume the full retry budget")
}

func TestScoreMissingCredentialIsNotRetried(t *testing.T) {
	provider := &fakeAnalyzer{results: []func() (model.JobMatch, error){
		func() (model.JobMatch, error) { return model.JobMatch{}, ErrMissingAPIKey },
	}}

	got := newTestMatchService(provider).Score(context.Background(), model.JobPosting{ID: "7"}, "resume")
	assert.Equal(t, model.NeutralMatch("7"), got)
	assert.Equal(t, 1, provider.calls, "configuration errors are surfaced immediately, not retried")
}

func anthropicStub(t *testing.T, srvURL string) *AnthropicService {
	t.Helper()
	return &AnthropicService{
		client: resty.New(),
		cfg: &config.AnthropicConfig{
			APIKey:    "test-key",
			BaseURL:   srvURL,
			Model:     "test-model",
			MaxTokens: 150,
		},
		match: matchCfg(),
	}
}

func TestAnthropicAnalyzeMatchHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, int64(0), gjson.GetBytes(body, "temperature").Int())
		assert.Equal(t, "test-model", gjson.GetBytes(body, "model").String())

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"content":[{"type":"text","text":"{\"score\":73,\"matchDetails\":{\"skillsMatch\":70,\"experienceMatch\":75,\"educationMatch\":72,\"roleMatch\":74}}"}]}`)
	}))
	defer srv.Close()

	s := anthropicStub(t, srv.URL)
	match, err := s.AnalyzeMatch(context.Background(), model.JobPosting{ID: "9", Title: "Engineer", Company: "Acme"}, "resume text")

	require.NoError(t, err)
	assert.Equal(t, "9", match.JobID)
	assert.Equal(t, 73, match.Score)
	assert.Equal(t, 70, match.MatchDetails.SkillsMatch)
}

func TestAnthropicAnalyzeMatchProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := anthropicStub(t, srv.URL)
	_, err := s.AnalyzeMatch(context.Background(), model.JobPosting{ID: "9"}, "resume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestAnthropicAnalyzeMatchMissingKey(t *testing.T) {
	s := &AnthropicService{
		client: resty.New(),
		cfg:    &config.AnthropicConfig{},
		match:  matchCfg(),
	}
	_, err := s.AnalyzeMatch(context.Background(), model.JobPosting{ID: "9"}, "resume")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
