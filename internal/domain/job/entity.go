package job

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"
)

type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

type Location struct {
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	RemoteType string `json:"remoteType,omitempty"`
}

// Display returns the most specific non-empty part of the location.
func (l Location) Display() string {
	for _, s := range []string{l.City, l.State, l.Country} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

type Job struct {
	ID             uuid.UUID
	CreatedBy      uuid.UUID
	Title          string
	CompanyName    string
	Location       Location
	Seniority      string
	EmploymentType []string
	Skills         []Skill
	Tags           []string
	Description    string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (j Job) SkillNames() []string {
	out := make([]string, 0, len(j.Skills))
	for _, s := range j.Skills {
		if n := strings.TrimSpace(s.Name); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusClosed:
		return true
	default:
		return false
	}
}
