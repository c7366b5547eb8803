package usecase

import "talent-match/internal/domain/matching"

type JobMatchItem struct {
	JobID         string              `json:"job_id"`
	Title         string              `json:"title"`
	CompanyName   string              `json:"company_name"`
	Location      string              `json:"location"`
	Seniority     string              `json:"seniority"`
	Skills        []string            `json:"skills"`
	Score         int                 `json:"score"`
	MatchedSkills []string            `json:"matched_skills"`
	Reason        string              `json:"reason"`
	Breakdown     *matching.Breakdown `json:"breakdown,omitempty"`
}

type JobMatchPage struct {
	Items      []JobMatchItem `json:"items"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	Source     string         `json:"source"`
}

type CandidateMatchItem struct {
	CVID              string              `json:"cv_id"`
	Fullname          string              `json:"fullname"`
	Headline          string              `json:"headline"`
	Location          string              `json:"location"`
	ExperienceLevel   string              `json:"experience_level"`
	YearsOfExperience int                 `json:"years_of_experience"`
	Availability      string              `json:"availability"`
	Skills            []string            `json:"skills"`
	Score             int                 `json:"score"`
	MatchedSkills     []string            `json:"matched_skills"`
	Reason            string              `json:"reason"`
	Breakdown         *matching.Breakdown `json:"breakdown,omitempty"`
}

type CandidateMatchPage struct {
	Items      []CandidateMatchItem `json:"items"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"total_pages"`
	Source     string               `json:"source"`
}
