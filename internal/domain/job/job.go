package job

import (
	"time"

	"placenet/internal/common"
)

type Type string

const (
	TypeFullTime   Type = "full_time"
	TypePartTime   Type = "part_time"
	TypeInternship Type = "internship"
	TypeContract   Type = "contract"
)

func KnownType(t Type) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeInternship, TypeContract:
		return true
	default:
		return false
	}
}

type Job struct {
	ID           common.UUID `json:"id"`
	RecruiterID  common.UUID `json:"recruiter_id"`
	Title        string      `json:"title"`
	Company      string      `json:"company"`
	Location     string      `json:"location"`
	Type         Type        `json:"type"`
	SalaryMin    int64       `json:"salary_min,omitempty"`
	SalaryMax    int64       `json:"salary_max,omitempty"`
	Description  string      `json:"description"`
	Requirements []string    `json:"requirements"`
	Skills       []string    `json:"skills"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Summary is the nested job annotation attached to pipeline rows.
type Summary struct {
	ID       common.UUID `json:"id"`
	Title    string      `json:"title"`
	Company  string      `json:"company"`
	Location string      `json:"location"`
	Type     Type        `json:"type"`
}

func (j Job) Summary() Summary {
	return Summary{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location, Type: j.Type}
}
