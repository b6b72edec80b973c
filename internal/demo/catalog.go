package demo

import (
	"time"

	"placenet/internal/common"
	"placenet/internal/domain/application"
	"placenet/internal/domain/job"
	"placenet/internal/domain/profile"
)

// The fixed demonstration set. Every recruiter sees the same records; the
// catalog exists so an empty deployment still renders a populated pipeline.

var catalogTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

var demoJobs = []job.Job{
	{
		ID:           "00000000-0000-4000-8000-000000000101",
		RecruiterID:  "00000000-0000-4000-8000-0000000000aa",
		Title:        "Backend Engineer",
		Company:      "Acme Systems",
		Location:     "Remote",
		Type:         job.TypeFullTime,
		SalaryMin:    90000,
		SalaryMax:    130000,
		Description:  "Own services on the hiring platform backend.",
		Requirements: []string{"3+ years backend experience", "SQL fluency"},
		Skills:       []string{"go", "postgres", "redis"},
		IsActive:     true,
		CreatedAt:    catalogTime,
		UpdatedAt:    catalogTime,
	},
	{
		ID:           "00000000-0000-4000-8000-000000000102",
		RecruiterID:  "00000000-0000-4000-8000-0000000000aa",
		Title:        "Data Analyst Intern",
		Company:      "Northwind Labs",
		Location:     "Austin, TX",
		Type:         job.TypeInternship,
		SalaryMin:    30000,
		SalaryMax:    40000,
		Description:  "Summer internship on the placement analytics team.",
		Requirements: []string{"Enrolled in a degree program", "Python or R"},
		Skills:       []string{"python", "sql"},
		IsActive:     true,
		CreatedAt:    catalogTime,
		UpdatedAt:    catalogTime,
	},
}

var demoStudents = []profile.StudentSummary{
	{ID: "00000000-0000-4000-8000-000000000201", FullName: "Priya Sharma", Email: "priya.sharma@example.edu", University: "State Tech", Skills: []string{"go", "react"}},
	{ID: "00000000-0000-4000-8000-000000000202", FullName: "Daniel Okoye", Email: "daniel.okoye@example.edu", University: "Riverside University", Skills: []string{"python", "sql"}},
	{ID: "00000000-0000-4000-8000-000000000203", FullName: "Mei Lin", Email: "mei.lin@example.edu", University: "State Tech", Skills: []string{"java", "spring"}},
	{ID: "00000000-0000-4000-8000-000000000204", FullName: "Lucas Brandt", Email: "lucas.brandt@example.edu", University: "Hillview College", Skills: []string{"typescript", "node"}},
	{ID: "00000000-0000-4000-8000-000000000205", FullName: "Sara Haddad", Email: "sara.haddad@example.edu", University: "Riverside University", Skills: []string{"go", "kubernetes"}},
}

var demoApplications = []application.RecruiterRow{
	demoRow("00000000-0000-4000-8000-000000000301", 0, 0, application.StatusApplied),
	demoRow("00000000-0000-4000-8000-000000000302", 1, 0, application.StatusApplied),
	demoRow("00000000-0000-4000-8000-000000000303", 2, 0, application.StatusScreening),
	demoRow("00000000-0000-4000-8000-000000000304", 3, 1, application.StatusInterview),
	demoRow("00000000-0000-4000-8000-000000000305", 4, 1, application.StatusHired),
}

func demoRow(id common.UUID, studentIdx, jobIdx int, status application.Status) application.RecruiterRow {
	student := demoStudents[studentIdx]
	j := demoJobs[jobIdx]
	return application.RecruiterRow{
		Application: application.Application{
			ID:        id,
			JobID:     j.ID,
			StudentID: student.ID,
			Status:    status,
			AppliedAt: catalogTime,
			UpdatedAt: catalogTime,
		},
		Student: student,
		Job:     j.Summary(),
	}
}

// Applications returns a copy of the demonstration pipeline rows with any
// overlay overrides applied. Callers may mutate the result freely.
func Applications(overlay *Overlay) []application.RecruiterRow {
	rows := make([]application.RecruiterRow, len(demoApplications))
	copy(rows, demoApplications)
	if overlay != nil {
		for i := range rows {
			if status, ok := overlay.Get(rows[i].ID); ok {
				rows[i].Status = status
			}
		}
	}
	return rows
}

// ApplicationStatus reports the catalog status of a synthetic application,
// before overlay overrides.
func ApplicationStatus(id common.UUID) (application.Status, bool) {
	for _, row := range demoApplications {
		if row.ID == id {
			return row.Status, true
		}
	}
	return "", false
}

// Jobs returns a copy of the demonstration job catalog.
func Jobs() []job.Job {
	jobs := make([]job.Job, len(demoJobs))
	copy(jobs, demoJobs)
	return jobs
}

// Job looks a synthetic job up by id.
func Job(id common.UUID) (*job.Job, bool) {
	for _, j := range demoJobs {
		if j.ID == id {
			copied := j
			return &copied, true
		}
	}
	return nil, false
}
