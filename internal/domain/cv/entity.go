package cv

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
	Years    int    `json:"years,omitempty"`
}

type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

func (l Location) Display() string {
	for _, s := range []string{l.City, l.State, l.Country} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

type CV struct {
	ID              uuid.UUID
	CreatedBy       uuid.UUID
	Fullname        string
	Headline        string
	TargetRole      string
	Summary         string
	Location        Location
	Skills          []Skill
	ExperienceLevel string
	ExperienceYears *int
	ExperienceCount int
	EmploymentType  []string
	Availability    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c CV) SkillNames() []string {
	out := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		if n := strings.TrimSpace(s.Name); n != "" {
			out = append(out, n)
		}
	}
	return out
}
