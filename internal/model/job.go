package model

// JobPosting is one normalized job card parsed from a board search-results
// page. Postings are built once per parse pass and never mutated afterwards.
type JobPosting struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	PostedDate      string `json:"postedDate"`
	Description     string `json:"description"`
	ApplicationURL  string `json:"applicationUrl"`
	Salary          string `json:"salary,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	EmploymentType  string `json:"employmentType,omitempty"`
	WorkplaceType   string `json:"workplaceType,omitempty"`
}

// Valid reports whether the posting carries the fields required for it to
// be accepted into a result set.
func (p JobPosting) Valid() bool {
	return p.ID != "" && p.Title != "" && p.Company != ""
}
