package app

import (
	"context"
	"errors"
	"testing"

	"placenet/internal/common"
	"placenet/internal/demo"
	"placenet/internal/domain/application"
	"placenet/internal/domain/job"
)

func newJobService(repo *fakeJobRepo, demoMode bool) *JobService {
	return NewJobService(repo, &fakeAnalyticsRepo{}, demoMode)
}

func validJob(recruiterID common.UUID) job.Job {
	return job.Job{
		RecruiterID: recruiterID,
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Remote",
		Type:        job.TypeFullTime,
		Description: "Build services.",
		IsActive:    true,
	}
}

func TestJobCreateValidates(t *testing.T) {
	service := newJobService(newFakeJobRepo(), false)

	posting := validJob(common.NewUUID())
	posting.Title = ""
	posting.Type = "freelance"
	_, err := service.Create(context.Background(), posting)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var coded *common.Error
	if !errors.As(err, &coded) {
		t.Fatalf("expected *common.Error, got %T", err)
	}
	if _, ok := coded.Fields["title"]; !ok {
		t.Fatal("expected a title field error")
	}
	if _, ok := coded.Fields["type"]; !ok {
		t.Fatal("expected a type field error")
	}
}

func TestJobUpdateForbiddenForOtherRecruiter(t *testing.T) {
	repo := newFakeJobRepo()
	service := newJobService(repo, false)
	created, err := service.Create(context.Background(), validJob(common.NewUUID()))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	hijacked := *created
	hijacked.RecruiterID = common.NewUUID()
	_, err = service.Update(context.Background(), hijacked)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestJobDeleteCascades(t *testing.T) {
	repo := newFakeJobRepo()
	service := newJobService(repo, false)
	recruiterID := common.NewUUID()
	created, err := service.Create(context.Background(), validJob(recruiterID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := service.Delete(context.Background(), recruiterID, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected job to be gone, got %v", err)
	}
}

func TestJobDeleteRejectsSynthetic(t *testing.T) {
	service := newJobService(newFakeJobRepo(), true)

	err := service.Delete(context.Background(), common.NewUUID(), "00000000-0000-4000-8000-000000000101")
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

func TestJobGetHidesInactive(t *testing.T) {
	repo := newFakeJobRepo()
	service := newJobService(repo, false)
	posting := validJob(common.NewUUID())
	posting.IsActive = false
	created, err := repo.Create(context.Background(), posting)
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}

	_, err = service.Get(context.Background(), created.ID)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

func TestJobGetServesDemoCatalog(t *testing.T) {
	service := newJobService(newFakeJobRepo(), true)

	item, err := service.Get(context.Background(), "00000000-0000-4000-8000-000000000101")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !demo.IsSyntheticID(item.ID) {
		t.Fatalf("expected a synthetic job, got %s", item.ID)
	}

	off := newJobService(newFakeJobRepo(), false)
	if _, err := off.Get(context.Background(), "00000000-0000-4000-8000-000000000101"); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not_found with demo mode off, got %v", err)
	}
}

func TestJobListPublicMergesDemoCatalog(t *testing.T) {
	repo := newFakeJobRepo()
	service := newJobService(repo, true)
	if _, err := repo.Create(context.Background(), validJob(common.NewUUID())); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	items, err := service.ListPublic(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	var real, synthetic int
	for _, item := range items {
		if demo.IsSyntheticID(item.ID) {
			synthetic++
		} else {
			real++
		}
	}
	if real != 1 {
		t.Fatalf("expected 1 real job, got %d", real)
	}
	if synthetic == 0 {
		t.Fatal("expected demo jobs in the public listing")
	}
}

func TestJobListPublicClampsPaging(t *testing.T) {
	repo := newFakeJobRepo()
	service := newJobService(repo, false)

	if _, err := service.ListPublic(context.Background(), -5, -1); err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if repo.lastLimit != 20 || repo.lastOffset != 0 {
		t.Fatalf("expected clamped paging 20/0, got %d/%d", repo.lastLimit, repo.lastOffset)
	}

	if _, err := service.ListPublic(context.Background(), 10_000, 40); err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if repo.lastLimit != 20 || repo.lastOffset != 40 {
		t.Fatalf("expected oversized limit reset to 20, got %d/%d", repo.lastLimit, repo.lastOffset)
	}
}

// Guards against demo rows leaking into the applied-status domain.
func TestDemoApplicationsAreAllSynthetic(t *testing.T) {
	for _, row := range demo.Applications(demo.NewOverlay()) {
		if !demo.IsSyntheticID(row.ID) || !demo.IsSyntheticID(row.JobID) {
			t.Fatalf("demo row %s references non-synthetic ids", row.ID)
		}
		if !application.KnownStatus(row.Status) {
			t.Fatalf("demo row %s has unknown status %s", row.ID, row.Status)
		}
	}
}
