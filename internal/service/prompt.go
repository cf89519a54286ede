package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hirescope/hirescope/internal/model"
)

const matchSystemPrompt = "You are a job matching analyzer. You must always respond with valid JSON only, no explanatory text."

// buildMatchPrompt renders the scoring prompt for one (job, resume) pair.
// Description and resume are truncated to bound token cost per call.
func buildMatchPrompt(job model.JobPosting, resumeText string, descLimit, resumeLimit int) string {
	return fmt.Sprintf(`Analyze this job match and respond with ONLY a JSON object, no other text.

Job:
Title: %s
Company: %s
Description: %s

Resume:
%s

You must respond with exactly this JSON structure and nothing else:
{
  "score": <number 0-100>,
  "matchDetails": {
    "skillsMatch": <number 0-100>,
    "experienceMatch": <number 0-100>,
    "educationMatch": <number 0-100>,
    "roleMatch": <number 0-100>
  }
}`, job.Title, job.Company, truncate(job.Description, descLimit), truncate(resumeText, resumeLimit))
}

func truncate(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit]
}

// parseMatch pulls the score payload out of a provider response. Providers
// are instructed to return bare JSON but sometimes wrap it in prose, so the
// first brace-delimited object in the text is what gets parsed.
func parseMatch(jobID, text string) (model.JobMatch, error) {
	obj, err := extractJSONObject(text)
	if err != nil {
		return model.JobMatch{}, err
	}

	score := gjson.Get(obj, "score")
	if !score.Exists() {
		return model.JobMatch{}, errors.New("provider response has no score field")
	}

	return model.JobMatch{
		JobID: jobID,
		Score: int(score.Int()),
		MatchDetails: model.MatchDetails{
			SkillsMatch:     int(gjson.Get(obj, "matchDetails.skillsMatch").Int()),
			ExperienceMatch: int(gjson.Get(obj, "matchDetails.experienceMatch").Int()),
			EducationMatch:  int(gjson.Get(obj, "matchDetails.educationMatch").Int()),
			RoleMatch:       int(gjson.Get(obj, "matchDetails.roleMatch").Int()),
		},
	}, nil
}

func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", errors.New("no JSON object found in provider response")
	}
	candidate := text[start : end+1]
	if !gjson.Valid(candidate) {
		return "", errors.New("embedded JSON in provider response is malformed")
	}
	return candidate, nil
}
