package model

// SearchResult is the envelope returned by the search orchestrator.
type SearchResult struct {
	Jobs       []JobPosting `json:"jobs"`
	TotalFound int          `json:"totalFound"`
	Cached     bool         `json:"cached,omitempty"`
}

// MatchResult is the envelope returned by the match orchestrator.
type MatchResult struct {
	JobMatches []JobMatch `json:"jobMatches"`
}
