package application

import (
	"time"

	"placenet/internal/common"
	"placenet/internal/domain/job"
	"placenet/internal/domain/profile"
)

type Status string

const (
	StatusApplied   Status = "applied"
	StatusScreening Status = "screening"
	StatusInterview Status = "interview"
	StatusHired     Status = "hired"
	StatusRejected  Status = "rejected"
)

func KnownStatus(status Status) bool {
	switch status {
	case StatusApplied, StatusScreening, StatusInterview, StatusHired, StatusRejected:
		return true
	default:
		return false
	}
}

// ExpectedSalaryCap bounds the expected_salary field so arithmetic on
// aggregates cannot overflow.
const ExpectedSalaryCap int64 = 100_000_000

type Application struct {
	ID             common.UUID       `json:"id"`
	JobID          common.UUID       `json:"job_id"`
	StudentID      common.UUID       `json:"student_id"`
	Status         Status            `json:"status"`
	CoverLetter    string            `json:"cover_letter,omitempty"`
	ResumeURL      string            `json:"resume_url,omitempty"`
	LinkedinURL    string            `json:"linkedin_url,omitempty"`
	GithubURL      string            `json:"github_url,omitempty"`
	PortfolioURL   string            `json:"portfolio_url,omitempty"`
	ExpectedSalary int64             `json:"expected_salary,omitempty"`
	AvailableFrom  *time.Time        `json:"available_from,omitempty"`
	CustomAnswers  map[string]string `json:"custom_answers,omitempty"`
	AppliedAt      time.Time         `json:"applied_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Version        int64             `json:"version"`
}

// StatusReceipt is the confirmation returned by a status mutation. The
// caller uses it to reconcile its optimistic local cache.
type StatusReceipt struct {
	ID        common.UUID `json:"id"`
	Status    Status      `json:"status"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RecruiterRow is one entry of a recruiter's pipeline view: the application
// annotated with student and job summaries.
type RecruiterRow struct {
	Application
	Student profile.StudentSummary `json:"student"`
	Job     job.Summary            `json:"job"`
}
