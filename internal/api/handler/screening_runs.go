package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/hirescreen/internal/api/response"
	"github.com/kiranshivaraju/hirescreen/internal/cache"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

type ScreeningRunService interface {
	CreateScreeningRun(ctx context.Context, actor recruit.Actor, in recruit.CreateRunInput) (*models.ScreeningRun, error)
	ListScreeningRuns(ctx context.Context, q recruit.RunQuery) (recruit.ListResult[*models.ScreeningRun], error)
	GetScreeningRun(ctx context.Context, actor recruit.Actor, id string) (*models.ScreeningRun, error)
	GetScreeningRunStatus(ctx context.Context, actor recruit.Actor, id string) (*cache.RunStatus, error)
	UpdateScreeningRunStatus(ctx context.Context, actor recruit.Actor, id string, in recruit.UpdateRunStatusInput) (*models.ScreeningRun, error)
}

type createRunRequest struct {
	JobID         string                  `json:"jobId"        validate:"required"`
	ResumeFileIDs recruit.StringList      `json:"resumeFileIds"`
	CandidateIDs  recruit.StringList      `json:"candidateIds"`
	RerunOfRunID  string                  `json:"rerunOfRunId"`
	RunType       string                  `json:"runType"`
	TriggeredBy   string                  `json:"triggeredBy"`
	Filters       recruit.RunFiltersInput `json:"filters"`
	QueueMeta     struct {
		BatchSize int `json:"batchSize"`
	} `json:"queueMeta"`
	AIProvider     string  `json:"aiProvider"`
	ModelName      *string `json:"modelName"`
	PromptVersion  *string `json:"promptVersion"`
	ConfigSnapshot struct {
		JDVersion *string `json:"jdVersion"`
	} `json:"configSnapshot"`
}

type updateRunStatusRequest struct {
	Status       string  `json:"status"`
	Processed    *int    `json:"processed"`
	Failed       *int    `json:"failed"`
	Total        *int    `json:"total"`
	CurrentBatch *int    `json:"currentBatch"`
	TotalBatches *int    `json:"totalBatches"`
	ErrorSummary *string `json:"errorSummary"`
}

// NewCreateScreeningRunHandler handles POST /api/v1/screening-runs.
func NewCreateScreeningRunHandler(svc ScreeningRunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRunRequest
		if !decode(w, r, &req) {
			return
		}
		run, err := svc.CreateScreeningRun(r.Context(), actorFrom(r), recruit.CreateRunInput{
			JobID:         req.JobID,
			ResumeFileIDs: req.ResumeFileIDs,
			CandidateIDs:  req.CandidateIDs,
			RerunOfRunID:  req.RerunOfRunID,
			RunType:       req.RunType,
			TriggeredBy:   req.TriggeredBy,
			Filters:       req.Filters,
			BatchSize:     req.QueueMeta.BatchSize,
			AIProvider:    req.AIProvider,
			ModelName:     req.ModelName,
			PromptVersion: req.PromptVersion,
			JDVersion:     req.ConfigSnapshot.JDVersion,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Created(w, "Create screening run successfully", run)
	}
}

func NewListScreeningRunsHandler(svc ScreeningRunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := svc.ListScreeningRuns(r.Context(), recruit.RunQuery{
			OrganizationID: actorFrom(r).OrganizationID,
			JobID:          q.Get("jobId"),
			Status:         q.Get("status"),
			Page:           pageFrom(r),
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.List(w, "Get screening runs successfully", res.Items, response.Page(res))
	}
}

func NewGetScreeningRunHandler(svc ScreeningRunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := svc.GetScreeningRun(r.Context(), actorFrom(r), idParam(r))
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Get screening run detail successfully", run)
	}
}

// NewGetScreeningRunStatusHandler handles GET /api/v1/screening-runs/{id}/status,
// a lightweight progress view served from cache when possible.
func NewGetScreeningRunStatusHandler(svc ScreeningRunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.GetScreeningRunStatus(r.Context(), actorFrom(r), idParam(r))
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Get screening run status successfully", status)
	}
}

// NewUpdateScreeningRunStatusHandler handles PATCH /api/v1/screening-runs/{id}/status.
func NewUpdateScreeningRunStatusHandler(svc ScreeningRunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRunStatusRequest
		if !decode(w, r, &req) {
			return
		}
		run, err := svc.UpdateScreeningRunStatus(r.Context(), actorFrom(r), idParam(r), recruit.UpdateRunStatusInput{
			Status:       req.Status,
			Processed:    req.Processed,
			Failed:       req.Failed,
			Total:        req.Total,
			CurrentBatch: req.CurrentBatch,
			TotalBatches: req.TotalBatches,
			ErrorSummary: req.ErrorSummary,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Update screening run status successfully", run)
	}
}
