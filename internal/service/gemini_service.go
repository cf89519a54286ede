package service

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/model"
)

// GeminiService is the alternate scoring backend, selected with
// MATCH_PROVIDER=gemini. Same prompt and response contract as the
// Anthropic backend.
type GeminiService struct {
	client *genai.Client
	cfg    *config.GeminiConfig
	match  *config.MatchConfig
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	cfg := config.LoadGeminiConfig()
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &GeminiService{
		client: client,
		cfg:    cfg,
		match:  config.LoadMatchConfig(),
	}, nil
}

func (s *GeminiService) AnalyzeMatch(ctx context.Context, job model.JobPosting, resumeText string) (model.JobMatch, error) {
	prompt := buildMatchPrompt(job, resumeText, s.match.DescriptionLimit, s.match.ResumeLimit)

	genConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(0)),
		MaxOutputTokens:   150,
		SystemInstruction: genai.NewContentFromText(matchSystemPrompt, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.cfg.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return model.JobMatch{}, fmt.Errorf("gemini generate: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return model.JobMatch{}, errors.New("gemini response has no candidates")
	}

	return parseMatch(job.ID, result.Text())
}
