package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/model"
)

// ErrMissingAPIKey means the scoring provider credential is absent from the
// environment. A configuration error, not a runtime one: callers surface it
// immediately instead of retrying.
var ErrMissingAPIKey = errors.New("scoring provider API key not configured")

// MatchAnalyzer scores one (job, resume) pair via an external provider.
type MatchAnalyzer interface {
	AnalyzeMatch(ctx context.Context, job model.JobPosting, resumeText string) (model.JobMatch, error)
}

// AnthropicService scores job matches through the Anthropic messages API.
type AnthropicService struct {
	client *resty.Client
	cfg    *config.AnthropicConfig
	match  *config.MatchConfig
}

func NewAnthropicService() *AnthropicService {
	return &AnthropicService{
		client: resty.New(),
		cfg:    config.LoadAnthropicConfig(),
		match:  config.LoadMatchConfig(),
	}
}

func (s *AnthropicService) AnalyzeMatch(ctx context.Context, job model.JobPosting, resumeText string) (model.JobMatch, error) {
	if s.cfg.APIKey == "" {
		return model.JobMatch{}, ErrMissingAPIKey
	}

	prompt := buildMatchPrompt(job, resumeText, s.match.DescriptionLimit, s.match.ResumeLimit)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", s.cfg.APIKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetBody(map[string]any{
			"model":       s.cfg.Model,
			"max_tokens":  s.cfg.MaxTokens,
			"temperature": 0,
			"system":      matchSystemPrompt,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post(s.cfg.BaseURL + "/v1/messages")
	if err != nil {
		return model.JobMatch{}, fmt.Errorf("scoring call: %w", err)
	}
	if resp.IsError() {
		return model.JobMatch{}, fmt.Errorf("scoring provider returned %d", resp.StatusCode())
	}

	content := responseText(resp.Body())
	if content == "" {
		return model.JobMatch{}, errors.New("scoring provider response has no content")
	}

	return parseMatch(job.ID, content)
}

// responseText pulls the first content block's text out of a messages API
// response body.
func responseText(body []byte) string {
	return gjson.GetBytes(body, "content.0.text").String()
}
