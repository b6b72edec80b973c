package app

import (
	"context"
	"strings"
	"time"

	"placenet/internal/common"
	"placenet/internal/demo"
	"placenet/internal/domain/analytics"
	"placenet/internal/domain/application"
	"placenet/internal/domain/job"
	"placenet/internal/domain/profile"
)

// PipelineService owns the authoritative status of every application and
// enforces the transition rules between pipeline stages.
type PipelineService struct {
	repo      application.Repository
	jobs      job.Repository
	students  profile.StudentRepository
	analytics analytics.Repository
	overlay   *demo.Overlay
	demoMode  bool
}

func NewPipelineService(repo application.Repository, jobs job.Repository, students profile.StudentRepository, analyticsRepo analytics.Repository, overlay *demo.Overlay, demoMode bool) *PipelineService {
	return &PipelineService{repo: repo, jobs: jobs, students: students, analytics: analyticsRepo, overlay: overlay, demoMode: demoMode}
}

type ApplyInput struct {
	JobID          common.UUID
	CoverLetter    string
	ResumeURL      string
	LinkedinURL    string
	GithubURL      string
	PortfolioURL   string
	ExpectedSalary int64
	AvailableFrom  *time.Time
	CustomAnswers  map[string]string
}

func (s *PipelineService) Apply(ctx context.Context, studentID common.UUID, input ApplyInput) (*application.Application, error) {
	if _, err := s.students.GetByUserID(ctx, studentID); err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "student profile is required", nil)
		}
		return nil, err
	}
	if input.ExpectedSalary < 0 {
		return nil, common.NewValidationError("invalid application", map[string]string{"expected_salary": "expected_salary must be non-negative"})
	}
	if input.ExpectedSalary > application.ExpectedSalaryCap {
		return nil, common.NewValidationError("invalid application", map[string]string{"expected_salary": "expected_salary exceeds the allowed maximum"})
	}
	if demo.IsSyntheticID(input.JobID) {
		return nil, common.NewError(common.CodeValidation, "cannot apply to a demo job", nil)
	}
	posting, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if !posting.IsActive {
		return nil, common.NewError(common.CodeValidation, "job is not accepting applications", nil)
	}
	if _, err := s.repo.FindByJobAndStudent(ctx, input.JobID, studentID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, application.Application{
		JobID:          input.JobID,
		StudentID:      studentID,
		Status:         application.StatusApplied,
		CoverLetter:    input.CoverLetter,
		ResumeURL:      input.ResumeURL,
		LinkedinURL:    input.LinkedinURL,
		GithubURL:      input.GithubURL,
		PortfolioURL:   input.PortfolioURL,
		ExpectedSalary: input.ExpectedSalary,
		AvailableFrom:  input.AvailableFrom,
		CustomAnswers:  input.CustomAnswers,
	})
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.created", UserID: &studentID, Payload: map[string]string{"application_id": created.ID.String(), "job_id": input.JobID.String()}})
	return created, nil
}

// SetStatus moves an application to the requested stage. Synthetic
// identifiers are redirected to the in-memory overlay and never touch
// persistence; real identifiers require the caller to own the job and pass
// the transition table and version check.
func (s *PipelineService) SetStatus(ctx context.Context, recruiterID, applicationID common.UUID, requested application.Status) (*application.StatusReceipt, error) {
	next := normalizeApplicationStatus(requested)
	if !application.KnownStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be applied, screening, interview, hired, or rejected"})
	}

	if demo.IsSyntheticID(applicationID) {
		return s.setSyntheticStatus(applicationID, next)
	}

	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if posting.RecruiterID != recruiterID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another recruiter", nil)
	}

	current := normalizeApplicationStatus(app.Status)
	if next == current {
		// Repeating a transition is harmless; refresh updated_at and
		// confirm.
		updated, err := s.repo.UpdateStatus(ctx, applicationID, next, app.Version)
		if err != nil {
			return nil, err
		}
		return receipt(updated), nil
	}
	if isFinalStatus(current) {
		return nil, common.NewError(common.CodeInvalidTransition, "application status is final", nil)
	}
	if !isAllowedTransition(current, next) {
		return nil, common.NewError(common.CodeInvalidTransition, "invalid status transition", nil)
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, next, app.Version)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.status_changed", UserID: &recruiterID, Payload: map[string]string{"application_id": updated.ID.String(), "status": string(next)}})
	return receipt(updated), nil
}

func (s *PipelineService) setSyntheticStatus(applicationID common.UUID, next application.Status) (*application.StatusReceipt, error) {
	if !s.demoMode || s.overlay == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	current, ok := s.overlay.Get(applicationID)
	if !ok {
		catalogStatus, exists := demo.ApplicationStatus(applicationID)
		if !exists {
			return nil, common.NewError(common.CodeNotFound, "application not found", nil)
		}
		current = catalogStatus
	}
	now := time.Now().UTC()
	if next == current {
		return &application.StatusReceipt{ID: applicationID, Status: next, UpdatedAt: now}, nil
	}
	if isFinalStatus(current) {
		return nil, common.NewError(common.CodeInvalidTransition, "application status is final", nil)
	}
	if !isAllowedTransition(current, next) {
		return nil, common.NewError(common.CodeInvalidTransition, "invalid status transition", nil)
	}
	s.overlay.Set(applicationID, next)
	return &application.StatusReceipt{ID: applicationID, Status: next, UpdatedAt: now}, nil
}

// ListForRecruiter returns all real applications whose job belongs to the
// recruiter, most recently applied first, with the fixed demonstration set
// appended when demo mode is on.
func (s *PipelineService) ListForRecruiter(ctx context.Context, recruiterID common.UUID) ([]application.RecruiterRow, error) {
	rows, err := s.repo.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	if s.demoMode {
		rows = append(rows, demo.Applications(s.overlay)...)
	}
	return rows, nil
}

func (s *PipelineService) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// PipelineBuckets is the recruiter board: one bucket per stage plus a
// catch-all so rows with an unexpected stored status are never dropped.
type PipelineBuckets struct {
	Applied   []application.RecruiterRow `json:"applied"`
	Screening []application.RecruiterRow `json:"screening"`
	Interview []application.RecruiterRow `json:"interview"`
	Hired     []application.RecruiterRow `json:"hired"`
	Rejected  []application.RecruiterRow `json:"rejected"`
	Other     []application.RecruiterRow `json:"other"`
}

// GroupByStage partitions rows into buckets, preserving relative order.
// Every row lands in exactly one bucket.
func GroupByStage(rows []application.RecruiterRow) PipelineBuckets {
	var buckets PipelineBuckets
	for _, row := range rows {
		switch normalizeApplicationStatus(row.Status) {
		case application.StatusApplied:
			buckets.Applied = append(buckets.Applied, row)
		case application.StatusScreening:
			buckets.Screening = append(buckets.Screening, row)
		case application.StatusInterview:
			buckets.Interview = append(buckets.Interview, row)
		case application.StatusHired:
			buckets.Hired = append(buckets.Hired, row)
		case application.StatusRejected:
			buckets.Rejected = append(buckets.Rejected, row)
		default:
			buckets.Other = append(buckets.Other, row)
		}
	}
	return buckets
}

func isAllowedTransition(from, to application.Status) bool {
	switch from {
	case application.StatusApplied:
		return to == application.StatusScreening || to == application.StatusRejected
	case application.StatusScreening:
		return to == application.StatusInterview || to == application.StatusApplied || to == application.StatusRejected
	case application.StatusInterview:
		return to == application.StatusHired || to == application.StatusRejected
	default:
		return false
	}
}

func isFinalStatus(status application.Status) bool {
	return status == application.StatusHired || status == application.StatusRejected
}

func normalizeApplicationStatus(status application.Status) application.Status {
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if normalized == "in_review" || normalized == "review" {
		return application.StatusScreening
	}
	return normalized
}

func receipt(app *application.Application) *application.StatusReceipt {
	return &application.StatusReceipt{ID: app.ID, Status: app.Status, UpdatedAt: app.UpdatedAt}
}
