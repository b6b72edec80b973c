package handlers

import (
	"net/http"
	"time"

	"placenet/internal/app"
	"placenet/internal/common"
	"placenet/internal/domain/application"
	"placenet/internal/http/middleware"
	"placenet/internal/http/response"
)

type ApplicationHandler struct {
	pipeline *app.PipelineService
}

func NewApplicationHandler(pipeline *app.PipelineService) *ApplicationHandler {
	return &ApplicationHandler{pipeline: pipeline}
}

type applyRequest struct {
	JobID          string            `json:"job_id"`
	CoverLetter    string            `json:"cover_letter"`
	ResumeURL      string            `json:"resume_url"`
	LinkedinURL    string            `json:"linkedin_url"`
	GithubURL      string            `json:"github_url"`
	PortfolioURL   string            `json:"portfolio_url"`
	ExpectedSalary int64             `json:"expected_salary"`
	AvailableFrom  string            `json:"available_from"`
	CustomAnswers  map[string]string `json:"custom_answers"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application", map[string]string{"job_id": "job_id must be a valid UUID"}))
		return
	}
	var availableFrom *time.Time
	if req.AvailableFrom != "" {
		parsed, err := time.Parse("2006-01-02", req.AvailableFrom)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid application", map[string]string{"available_from": "available_from must be YYYY-MM-DD"}))
			return
		}
		availableFrom = &parsed
	}
	created, err := h.pipeline.Apply(r.Context(), studentID, app.ApplyInput{
		JobID:          jobID,
		CoverLetter:    req.CoverLetter,
		ResumeURL:      req.ResumeURL,
		LinkedinURL:    req.LinkedinURL,
		GithubURL:      req.GithubURL,
		PortfolioURL:   req.PortfolioURL,
		ExpectedSalary: req.ExpectedSalary,
		AvailableFrom:  availableFrom,
		CustomAnswers:  req.CustomAnswers,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) ListStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.pipeline.ListByStudent(r.Context(), studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []application.Application{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListRecruiter(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	rows, err := h.pipeline.ListForRecruiter(r.Context(), recruiterID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if rows == nil {
		rows = []application.RecruiterRow{}
	}
	response.JSON(w, http.StatusOK, rows)
}

// Pipeline returns the recruiter's applications grouped by stage.
func (h *ApplicationHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	rows, err := h.pipeline.ListForRecruiter(r.Context(), recruiterID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, app.GroupByStage(rows))
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.pipeline.SetStatus(r.Context(), recruiterID, applicationID, application.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
