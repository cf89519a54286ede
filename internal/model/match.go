package model

// MatchDetails breaks an overall match score down by dimension.
// All values are on a 0-100 scale.
type MatchDetails struct {
	SkillsMatch     int `json:"skillsMatch"`
	ExperienceMatch int `json:"experienceMatch"`
	EducationMatch  int `json:"educationMatch"`
	RoleMatch       int `json:"roleMatch"`
}

// JobMatch is the scored result of analyzing one (job, resume) pair.
type JobMatch struct {
	JobID        string       `json:"jobId"`
	Score        int          `json:"score"`
	MatchDetails MatchDetails `json:"matchDetails"`
}

// neutralScore is substituted when the scoring provider cannot produce a
// usable answer. One unscoreable job must never block the pipeline.
const neutralScore = 50

// NeutralMatch returns the fallback match for a job whose analysis failed.
func NeutralMatch(jobID string) JobMatch {
	return JobMatch{
		JobID: jobID,
		Score: neutralScore,
		MatchDetails: MatchDetails{
			SkillsMatch:     neutralScore,
			ExperienceMatch: neutralScore,
			EducationMatch:  neutralScore,
			RoleMatch:       neutralScore,
		},
	}
}
