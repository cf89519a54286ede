package dto

import "github.com/hirescope/hirescope/internal/model"

// JobBoardRequest mirrors the raw query parameters the job board search
// endpoint understands. It drives the low-level POST /api/jobs/search route.
type JobBoardRequest struct {
	Keywords   string `json:"keywords"`
	Location   string `json:"location"`
	Distance   string `json:"distance"`
	TimeFilter string `json:"f_TPR"`
	Start      int    `json:"start"`
}

// MatchJobDetails is the posting subset the scorer needs.
type MatchJobDetails struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

func (d MatchJobDetails) ToPosting() model.JobPosting {
	return model.JobPosting{
		ID:          d.ID,
		Title:       d.Title,
		Company:     d.Company,
		Description: d.Description,
	}
}

// MatchRequest scores a single posting against a resume.
type MatchRequest struct {
	JobDetails MatchJobDetails `json:"jobDetails"`
	ResumeText string          `json:"resumeText"`
}

// SearchRequest is the orchestrated search input. Company lists arrive as
// newline-delimited text, matching the search form's free-text fields.
type SearchRequest struct {
	Keywords          string               `json:"keywords"`
	Location          string               `json:"location"`
	Distance          string               `json:"distance"`
	TimePosted        string               `json:"timePosted"`
	SalaryRange       model.Range          `json:"salaryRange"`
	Seniority         model.SeniorityRange `json:"seniorityRange"`
	IncludedCompanies string               `json:"includedCompanies"`
	ExcludedCompanies string               `json:"excludedCompanies"`
	ExcludeAgencies   bool                 `json:"excludeAgencies"`
	ResumeText        string               `json:"resumeText"`
}

func (r SearchRequest) ToCriteria() model.SearchCriteria {
	return model.SearchCriteria{
		Keywords:          r.Keywords,
		Location:          r.Location,
		Distance:          r.Distance,
		TimePosted:        r.TimePosted,
		SalaryRange:       r.SalaryRange,
		Seniority:         r.Seniority,
		IncludedCompanies: model.SplitCompanyList(r.IncludedCompanies),
		ExcludedCompanies: model.SplitCompanyList(r.ExcludedCompanies),
		ExcludeAgencies:   r.ExcludeAgencies,
	}
}

// RateLimitInfo reports inbound quota state alongside search responses.
type RateLimitInfo struct {
	Remaining int    `json:"remaining"`
	Reset     string `json:"reset,omitempty"`
}
