package app

import (
	"context"
	"strings"

	"placenet/internal/common"
	"placenet/internal/demo"
	"placenet/internal/domain/analytics"
	"placenet/internal/domain/job"
)

type JobService struct {
	repo      job.Repository
	analytics analytics.Repository
	demoMode  bool
}

func NewJobService(repo job.Repository, analyticsRepo analytics.Repository, demoMode bool) *JobService {
	return &JobService{repo: repo, analytics: analyticsRepo, demoMode: demoMode}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	if err := validateJob(j); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.created", UserID: &j.RecruiterID, Payload: map[string]string{"job_id": created.ID.String()}})
	return created, nil
}

func (s *JobService) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	current, err := s.getMutable(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if current.RecruiterID != j.RecruiterID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}
	if err := validateJob(j); err != nil {
		return nil, err
	}
	j.CreatedAt = current.CreatedAt
	updated, err := s.repo.Update(ctx, j)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.updated", UserID: &j.RecruiterID, Payload: map[string]string{"job_id": updated.ID.String()}})
	return updated, nil
}

// Delete removes the recruiter's job; the repository cascades the delete to
// every application under it.
func (s *JobService) Delete(ctx context.Context, recruiterID, jobID common.UUID) error {
	current, err := s.getMutable(ctx, jobID)
	if err != nil {
		return err
	}
	if current.RecruiterID != recruiterID {
		return common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}
	if err := s.repo.Delete(ctx, jobID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.deleted", UserID: &recruiterID, Payload: map[string]string{"job_id": jobID.String()}})
	return nil
}

// Get serves the public job page: active persisted jobs and, in demo mode,
// the demonstration catalog.
func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	if demo.IsSyntheticID(id) {
		if s.demoMode {
			if j, ok := demo.Job(id); ok {
				return j, nil
			}
		}
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return item, nil
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListPublic merges persisted active jobs with the demo catalog. Inactive
// jobs stay visible to their owner only, via ListByRecruiter. Paging values
// are clamped so caller input never reaches the query malformed.
func (s *JobService) ListPublic(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.repo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if s.demoMode {
		items = append(items, demo.Jobs()...)
	}
	return items, nil
}

func (s *JobService) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	return s.repo.ListByRecruiter(ctx, recruiterID)
}

// getMutable resolves a job for mutation. Synthetic jobs are not persisted
// and therefore never mutable.
func (s *JobService) getMutable(ctx context.Context, id common.UUID) (*job.Job, error) {
	if demo.IsSyntheticID(id) {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return s.repo.GetByID(ctx, id)
}

func validateJob(j job.Job) error {
	fields := map[string]string{}
	if strings.TrimSpace(j.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(j.Company) == "" {
		fields["company"] = "company is required"
	}
	if strings.TrimSpace(j.Location) == "" {
		fields["location"] = "location is required"
	}
	if strings.TrimSpace(j.Description) == "" {
		fields["description"] = "description is required"
	}
	if !job.KnownType(j.Type) {
		fields["type"] = "type must be full_time, part_time, internship, or contract"
	}
	if j.SalaryMin < 0 || j.SalaryMax < 0 {
		fields["salary"] = "salary bounds must be non-negative"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}
