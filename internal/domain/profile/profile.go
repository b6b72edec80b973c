package profile

import (
	"context"
	"time"

	"placenet/internal/common"
)

type StudentProfile struct {
	UserID         common.UUID `json:"user_id"`
	FullName       string      `json:"full_name"`
	Email          string      `json:"email"`
	University     string      `json:"university"`
	GraduationYear int         `json:"graduation_year"`
	Skills         []string    `json:"skills"`
	ResumeURL      string      `json:"resume_url,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// StudentSummary is the nested student annotation attached to pipeline rows.
type StudentSummary struct {
	ID         common.UUID `json:"id"`
	FullName   string      `json:"full_name"`
	Email      string      `json:"email"`
	University string      `json:"university"`
	Skills     []string    `json:"skills,omitempty"`
}

type StudentRepository interface {
	GetByUserID(ctx context.Context, userID common.UUID) (*StudentProfile, error)
}
