package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hirescope/hirescope/internal/model"
)

// Postings rarely expose structured salary data; the board renders it as
// free text when present at all. Filtering is therefore permissive: a
// posting without a parseable annual figure always passes.

var salaryNumberRe = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*([kK])?`)

func filterBySalary(jobs []model.JobPosting, want model.Range) []model.JobPosting {
	if want.IsZero() {
		return jobs
	}

	out := jobs[:0]
	for _, job := range jobs {
		lo, hi, ok := parseSalaryBounds(job.Salary)
		if !ok {
			out = append(out, job)
			continue
		}
		if want.Min > 0 && hi < want.Min {
			continue
		}
		if want.Max > 0 && lo > want.Max {
			continue
		}
		out = append(out, job)
	}
	return out
}

// parseSalaryBounds extracts an annual salary range from free text like
// "$120,000 - $150,000/yr" or "$90K". Values under 1000 after expansion
// are assumed to be hourly rates and treated as unparseable.
func parseSalaryBounds(text string) (lo, hi int, ok bool) {
	if strings.TrimSpace(text) == "" {
		return 0, 0, false
	}

	var values []int
	for _, m := range salaryNumberRe.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			f *= 1000
		}
		v := int(f)
		if v < 1000 {
			continue
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}

// seniorityRank orders the experience levels the board uses. Unrecognized
// levels rank 0 and always pass the filter.
var seniorityRanks = map[string]int{
	"internship":       1,
	"entry level":      2,
	"entry":            2,
	"associate":        3,
	"mid-senior level": 4,
	"mid-senior":       4,
	"senior":           4,
	"director":         5,
	"executive":        6,
}

func seniorityRank(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return 0
	}
	if rank, ok := seniorityRanks[level]; ok {
		return rank
	}
	for name, rank := range seniorityRanks {
		if strings.Contains(level, name) {
			return rank
		}
	}
	return 0
}

func filterBySeniority(jobs []model.JobPosting, want model.SeniorityRange) []model.JobPosting {
	if want.IsZero() {
		return jobs
	}
	minRank := seniorityRank(want.Min)
	maxRank := seniorityRank(want.Max)

	out := jobs[:0]
	for _, job := range jobs {
		rank := seniorityRank(job.ExperienceLevel)
		if rank == 0 {
			out = append(out, job)
			continue
		}
		if minRank > 0 && rank < minRank {
			continue
		}
		if maxRank > 0 && rank > maxRank {
			continue
		}
		out = append(out, job)
	}
	return out
}
