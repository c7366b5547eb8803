package dto

import (
	"time"

	"talent-match/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID             uuid.UUID    `json:"id"`
	CreatedBy      *uuid.UUID   `json:"created_by,omitempty"`
	Title          string       `json:"title"`
	CompanyName    string       `json:"company_name"`
	Location       job.Location `json:"location"`
	Seniority      string       `json:"seniority"`
	EmploymentType []string     `json:"employment_type"`
	Skills         []job.Skill  `json:"skills"`
	Tags           []string     `json:"tags"`
	Description    string       `json:"description"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	res := JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		CompanyName:    j.CompanyName,
		Location:       j.Location,
		Seniority:      j.Seniority,
		EmploymentType: orEmpty(j.EmploymentType),
		Skills:         j.Skills,
		Tags:           orEmpty(j.Tags),
		Description:    j.Description,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
	if j.CreatedBy != uuid.Nil {
		owner := j.CreatedBy
		res.CreatedBy = &owner
	}
	if res.Skills == nil {
		res.Skills = []job.Skill{}
	}
	return res
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type RenameJobRequest struct {
	Title string `json:"title"`
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
