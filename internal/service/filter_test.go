package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirescope/hirescope/internal/model"
)

func postings(companies ...string) []model.JobPosting {
	out := make([]model.JobPosting, 0, len(companies))
	for i, c := range companies {
		out = append(out, model.JobPosting{ID: string(rune('a' + i)), Title: "Engineer", Company: c})
	}
	return out
}

func companies(jobs []model.JobPosting) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Company)
	}
	return out
}

func TestFilterCompaniesNoRulesPassesEverything(t *testing.T) {
	jobs := postings("Acme", "Globex")
	assert.Equal(t, jobs, FilterCompanies(jobs, nil, nil, false))
}

func TestFilterCompaniesIncludeList(t *testing.T) {
	jobs := postings("Acme Corp", "Globex", "Initech LLC")
	got := FilterCompanies(jobs, []string{"acme", "initech"}, nil, false)
	assert.Equal(t, []string{"Acme Corp", "Initech LLC"}, companies(got))
}

func TestFilterCompaniesExcludeList(t *testing.T) {
	jobs := postings("Acme Corp", "Globex", "Initech LLC")
	got := FilterCompanies(jobs, nil, []string{"globex"}, false)
	assert.Equal(t, []string{"Acme Corp", "Initech LLC"}, companies(got))
}

func TestFilterCompaniesExcludeWinsOverInclude(t *testing.T) {
	jobs := postings("Acme Staffing")
	got := FilterCompanies(jobs, []string{"acme"}, []string{"staffing"}, false)
	assert.Empty(t, got)
}

func TestFilterCompaniesAgencyExclusion(t *testing.T) {
	jobs := postings("Acme Corp", "TalentBridge Recruiting", "Prime Staffing Group")
	got := FilterCompanies(jobs, nil, nil, true)
	assert.Equal(t, []string{"Acme Corp"}, companies(got))
}

func TestFilterCompaniesEntriesAreTrimmed(t *testing.T) {
	jobs := postings("Acme Corp", "Globex")
	got := FilterCompanies(jobs, []string{"  acme  ", ""}, nil, false)
	assert.Equal(t, []string{"Acme Corp"}, companies(got))
}
