package dto

import (
	"time"

	"talent-match/internal/domain/cv"
	"talent-match/internal/mapper"

	"github.com/google/uuid"
)

type CVResponse struct {
	ID              uuid.UUID   `json:"id"`
	Fullname        string      `json:"fullname"`
	Headline        string      `json:"headline"`
	TargetRole      string      `json:"target_role"`
	Summary         string      `json:"summary"`
	Location        cv.Location `json:"location"`
	Skills          []cv.Skill  `json:"skills"`
	ExperienceLevel string      `json:"experience_level"`
	ExperienceYears *int        `json:"experience_years,omitempty"`
	EmploymentType  []string    `json:"employment_type"`
	Availability    string      `json:"availability"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewCVResponse reports the effective experience level, derived from years when unset.
func NewCVResponse(c cv.CV) CVResponse {
	res := CVResponse{
		ID:              c.ID,
		Fullname:        c.Fullname,
		Headline:        c.Headline,
		TargetRole:      c.TargetRole,
		Summary:         c.Summary,
		Location:        c.Location,
		Skills:          c.Skills,
		ExperienceLevel: mapper.ExperienceLevel(c),
		ExperienceYears: c.ExperienceYears,
		EmploymentType:  orEmpty(c.EmploymentType),
		Availability:    c.Availability,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if res.Skills == nil {
		res.Skills = []cv.Skill{}
	}
	return res
}

func NewCVResponses(items []cv.CV) []CVResponse {
	out := make([]CVResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCVResponse(c))
	}
	return out
}
