package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/hirescreen/internal/api/response"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

// JobService is the part of the recruitment service the job handlers use.
type JobService interface {
	CreateJob(ctx context.Context, actor recruit.Actor, in recruit.JobInput) (*models.Job, error)
	ListJobs(ctx context.Context, q recruit.JobQuery) (recruit.ListResult[*models.Job], error)
	GetJob(ctx context.Context, actor recruit.Actor, id string) (*models.Job, error)
	UpdateJob(ctx context.Context, actor recruit.Actor, id string, patch recruit.JobPatch) (*models.Job, error)
	DeleteJob(ctx context.Context, actor recruit.Actor, id string) error
}

type createJobRequest struct {
	Title           string                  `json:"title"           validate:"required,max=200"`
	JDText          string                  `json:"jdText"          validate:"required"`
	JobCode         *string                 `json:"jobCode"         validate:"omitempty,max=64"`
	Department      *string                 `json:"department"`
	SeniorityLevel  string                  `json:"seniorityLevel"`
	EmploymentType  string                  `json:"employmentType"`
	Status          string                  `json:"status"`
	ScreeningConfig *models.ScreeningConfig `json:"screeningConfig"`
}

type updateJobRequest struct {
	Title           *string                 `json:"title"           validate:"omitempty,max=200"`
	JDText          *string                 `json:"jdText"`
	JobCode         *string                 `json:"jobCode"         validate:"omitempty,max=64"`
	Department      *string                 `json:"department"`
	SeniorityLevel  *string                 `json:"seniorityLevel"`
	EmploymentType  *string                 `json:"employmentType"`
	Status          *string                 `json:"status"`
	ScreeningConfig *models.ScreeningConfig `json:"screeningConfig"`
}

// NewCreateJobHandler handles POST /api/v1/jobs.
func NewCreateJobHandler(svc JobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createJobRequest
		if !decode(w, r, &req) {
			return
		}
		job, err := svc.CreateJob(r.Context(), actorFrom(r), recruit.JobInput{
			Title:           req.Title,
			JDText:          req.JDText,
			JobCode:         req.JobCode,
			Department:      req.Department,
			SeniorityLevel:  req.SeniorityLevel,
			EmploymentType:  req.EmploymentType,
			Status:          req.Status,
			ScreeningConfig: req.ScreeningConfig,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Created(w, "Create job successfully", job)
	}
}

// NewListJobsHandler handles GET /api/v1/jobs. Listings are scoped to the caller's organization.
func NewListJobsHandler(svc JobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := svc.ListJobs(r.Context(), recruit.JobQuery{
			OrganizationID: actorFrom(r).OrganizationID,
			Status:         q.Get("status"),
			Department:     q.Get("department"),
			Search:         q.Get("search"),
			Page:           pageFrom(r),
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.List(w, "Get jobs successfully", res.Items, response.Page(res))
	}
}

// NewGetJobHandler handles GET /api/v1/jobs/{id}.
func NewGetJobHandler(svc JobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := svc.GetJob(r.Context(), actorFrom(r), idParam(r))
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Get job detail successfully", job)
	}
}

// NewUpdateJobHandler handles PATCH /api/v1/jobs/{id}.
func NewUpdateJobHandler(svc JobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateJobRequest
		if !decode(w, r, &req) {
			return
		}
		job, err := svc.UpdateJob(r.Context(), actorFrom(r), idParam(r), recruit.JobPatch{
			Title:           req.Title,
			JDText:          req.JDText,
			JobCode:         req.JobCode,
			Department:      req.Department,
			SeniorityLevel:  req.SeniorityLevel,
			EmploymentType:  req.EmploymentType,
			Status:          req.Status,
			ScreeningConfig: req.ScreeningConfig,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Update job successfully", job)
	}
}

// NewDeleteJobHandler handles DELETE /api/v1/jobs/{id}.
func NewDeleteJobHandler(svc JobService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := idParam(r)
		if err := svc.DeleteJob(r.Context(), actorFrom(r), id); err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Delete job successfully", deletedResponse{ID: id})
	}
}
