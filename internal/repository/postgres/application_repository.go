package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"placenet/internal/common"
	"placenet/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, student_id, status, cover_letter, resume_url, linkedin_url, github_url, portfolio_url, expected_salary, available_from, custom_answers, applied_at, updated_at, version`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	app.Version = 1
	answers, err := marshalAnswers(app.CustomAnswers)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode custom answers", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		app.ID, app.JobID, app.StudentID, app.Status, app.CoverLetter, app.ResumeURL, app.LinkedinURL,
		app.GithubURL, app.PortfolioURL, app.ExpectedSalary, app.AvailableFrom, answers,
		app.AppliedAt, app.UpdatedAt, app.Version)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND student_id = $2`, jobID, studentID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE student_id = $1 ORDER BY applied_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *app)
	}
	return items, nil
}

// ListByRecruiter joins across applications → jobs → student profiles so
// each row carries the nested summaries the pipeline view renders.
func (r *ApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]application.RecruiterRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
			a.id, a.job_id, a.student_id, a.status, a.cover_letter, a.resume_url, a.linkedin_url, a.github_url,
			a.portfolio_url, a.expected_salary, a.available_from, a.custom_answers, a.applied_at, a.updated_at, a.version,
			j.title, j.company, j.location, j.job_type,
			COALESCE(sp.full_name, ''), COALESCE(sp.email, ''), COALESCE(sp.university, ''), COALESCE(sp.skills, '{}')
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		LEFT JOIN student_profiles sp ON sp.user_id = a.student_id
		WHERE j.recruiter_id = $1
		ORDER BY a.applied_at DESC`, recruiterID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list recruiter applications", err)
	}
	defer rows.Close()
	var items []application.RecruiterRow
	for rows.Next() {
		var item application.RecruiterRow
		var available sql.NullTime
		var answers []byte
		if err := rows.Scan(&item.ID, &item.JobID, &item.StudentID, &item.Status, &item.CoverLetter,
			&item.ResumeURL, &item.LinkedinURL, &item.GithubURL, &item.PortfolioURL, &item.ExpectedSalary,
			&available, &answers, &item.AppliedAt, &item.UpdatedAt, &item.Version,
			&item.Job.Title, &item.Job.Company, &item.Job.Location, &item.Job.Type,
			&item.Student.FullName, &item.Student.Email, &item.Student.University, pq.Array(&item.Student.Skills)); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan recruiter application", err)
		}
		if available.Valid {
			t := available.Time
			item.AvailableFrom = &t
		}
		if err := unmarshalAnswers(answers, &item.CustomAnswers); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to decode custom answers", err)
		}
		item.Status = normalizeStatus(item.Status)
		item.Job.ID = item.JobID
		item.Student.ID = item.StudentID
		items = append(items, item)
	}
	return items, nil
}

// UpdateStatus is a compare-and-swap on the version column: a concurrent
// writer that got there first leaves the caller with a conflict.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status, version int64) (*application.Application, error) {
	updatedAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2, version = version + 1
		WHERE id = $3 AND version = $4`, status, updatedAt, id, version)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, common.NewError(common.CodeConflict, "application was modified concurrently", nil)
	}
	return r.GetByID(ctx, id)
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	var available sql.NullTime
	var answers []byte
	if err := row.Scan(&app.ID, &app.JobID, &app.StudentID, &app.Status, &app.CoverLetter, &app.ResumeURL,
		&app.LinkedinURL, &app.GithubURL, &app.PortfolioURL, &app.ExpectedSalary, &available, &answers,
		&app.AppliedAt, &app.UpdatedAt, &app.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if available.Valid {
		t := available.Time
		app.AvailableFrom = &t
	}
	if err := unmarshalAnswers(answers, &app.CustomAnswers); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode custom answers", err)
	}
	app.Status = normalizeStatus(app.Status)
	return &app, nil
}

func marshalAnswers(answers map[string]string) ([]byte, error) {
	if len(answers) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(answers)
}

func unmarshalAnswers(data []byte, target *map[string]string) error {
	if len(data) == 0 {
		return nil
	}
	answers := map[string]string{}
	if err := json.Unmarshal(data, &answers); err != nil {
		return err
	}
	if len(answers) > 0 {
		*target = answers
	}
	return nil
}

func normalizeStatus(status application.Status) application.Status {
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if normalized == "in_review" || normalized == "review" {
		return application.StatusScreening
	}
	return normalized
}
