package application

import (
	"context"

	"placenet/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Application, error)
	ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]RecruiterRow, error)
	// UpdateStatus performs a compare-and-swap on the version column and
	// returns a conflict error when the stored version no longer matches.
	UpdateStatus(ctx context.Context, id common.UUID, status Status, version int64) (*Application, error)
}
