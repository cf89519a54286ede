package service

import (
	"strings"

	"github.com/hirescope/hirescope/internal/model"
)

// agencyKeywords marks companies that are staffing intermediaries rather
// than direct employers. Matched case-insensitively against company names.
var agencyKeywords = []string{
	"staffing",
	"recruiting",
	"recruitment",
	"talent",
	"consulting",
	"agency",
	"headhunt",
	"placement",
	"outsourcing",
}

// FilterCompanies applies the company allow/deny rules from the search
// criteria. A posting passes when its company contains at least one
// include entry (if any are set), contains no exclude entry, and, when
// agency exclusion is on, contains no agency keyword. All matching is
// case-insensitive substring containment.
func FilterCompanies(jobs []model.JobPosting, include, exclude []string, excludeAgencies bool) []model.JobPosting {
	if len(include) == 0 && len(exclude) == 0 && !excludeAgencies {
		return jobs
	}

	out := make([]model.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		company := strings.ToLower(job.Company)

		if len(include) > 0 && !containsAny(company, include) {
			continue
		}
		if containsAny(company, exclude) {
			continue
		}
		if excludeAgencies && containsAny(company, agencyKeywords) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func containsAny(company string, entries []string) bool {
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if strings.Contains(company, entry) {
			return true
		}
	}
	return false
}
