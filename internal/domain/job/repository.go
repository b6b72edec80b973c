package job

import (
	"context"

	"placenet/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	// Delete removes the job and every application referencing it in one
	// transaction.
	Delete(ctx context.Context, id common.UUID) error
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
	ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]Job, error)
}
