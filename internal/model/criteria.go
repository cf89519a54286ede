package model

import "strings"

// Time-posted filter codes understood by the job board search endpoint.
const (
	TimePast24Hours = "r86400"
	TimePastWeek    = "r604800"
	TimePastMonth   = "r2592000"
)

// Range bounds a numeric criterion. A zero Range means "not set".
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// SeniorityRange bounds the acceptable experience levels by name,
// e.g. {"entry", "mid-senior"}.
type SeniorityRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

func (r SeniorityRange) IsZero() bool {
	return r.Min == "" && r.Max == ""
}

// SearchCriteria is the full set of user search inputs. It doubles as the
// cache key for search results, so it must serialize deterministically.
type SearchCriteria struct {
	Keywords          string         `json:"keywords"`
	Location          string         `json:"location"`
	Distance          string         `json:"distance"`
	TimePosted        string         `json:"timePosted,omitempty"`
	SalaryRange       Range          `json:"salaryRange,omitempty"`
	Seniority         SeniorityRange `json:"seniorityRange,omitempty"`
	IncludedCompanies []string       `json:"includedCompanies,omitempty"`
	ExcludedCompanies []string       `json:"excludedCompanies,omitempty"`
	ExcludeAgencies   bool           `json:"excludeAgencies,omitempty"`
}

// SplitCompanyList splits a newline-delimited company list as entered in
// the search form, trimming each entry and dropping blanks.
func SplitCompanyList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
