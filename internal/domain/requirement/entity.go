package requirement

import (
	"time"

	"github.com/google/uuid"
)

type Requirement struct {
	ID              uuid.UUID
	CreatedBy       uuid.UUID
	Title           string
	Skills          []string
	ExperienceLevel string
	Location        string
	OpenPositions   int
	Criteria        []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
