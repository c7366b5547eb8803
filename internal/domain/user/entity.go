package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Fullname     string    `json:"fullname"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	default:
		return false
	}
}
