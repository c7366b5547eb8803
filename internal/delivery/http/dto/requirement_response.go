package dto

import (
	"time"

	"talent-match/internal/domain/requirement"

	"github.com/google/uuid"
)

type RequirementResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Skills          []string  `json:"skills"`
	ExperienceLevel string    `json:"experience_level"`
	Location        string    `json:"location"`
	OpenPositions   int       `json:"open_positions"`
	Criteria        []string  `json:"criteria"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewRequirementResponse(r requirement.Requirement) RequirementResponse {
	return RequirementResponse{
		ID:              r.ID,
		Title:           r.Title,
		Skills:          orEmpty(r.Skills),
		ExperienceLevel: r.ExperienceLevel,
		Location:        r.Location,
		OpenPositions:   r.OpenPositions,
		Criteria:        orEmpty(r.Criteria),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func NewRequirementResponses(items []requirement.Requirement) []RequirementResponse {
	out := make([]RequirementResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewRequirementResponse(r))
	}
	return out
}
