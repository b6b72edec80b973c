package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"placenet/internal/common"
	"placenet/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *sql.DB
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, full_name, email, university, graduation_year, skills, resume_url, created_at, updated_at
		FROM student_profiles WHERE user_id = $1`, userID)
	var p profile.StudentProfile
	if err := row.Scan(&p.UserID, &p.FullName, &p.Email, &p.University, &p.GraduationYear,
		pq.Array(&p.Skills), &p.ResumeURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student profile", err)
	}
	return &p, nil
}
