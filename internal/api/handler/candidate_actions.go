package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/hirescreen/internal/api/response"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

type CandidateActionService interface {
	CreateCandidateAction(ctx context.Context, actor recruit.Actor, in recruit.ActionInput) (*models.CandidateAction, error)
	ListCandidateActions(ctx context.Context, actor recruit.Actor, jobID, candidateID string) ([]*models.CandidateAction, error)
}

type createActionRequest struct {
	JobID          string             `json:"jobId"       validate:"required"`
	CandidateID    string             `json:"candidateId" validate:"required"`
	ActionType     string             `json:"actionType"  validate:"required"`
	Stage          *string            `json:"stage"`
	Note           *string            `json:"note"        validate:"omitempty,max=5000"`
	Tags           recruit.StringList `json:"tags"`
	IsAISuggestion bool               `json:"isAiSuggestion"`
}

func NewCreateCandidateActionHandler(svc CandidateActionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createActionRequest
		if !decode(w, r, &req) {
			return
		}
		action, err := svc.CreateCandidateAction(r.Context(), actorFrom(r), recruit.ActionInput{
			JobID:          req.JobID,
			CandidateID:    req.CandidateID,
			ActionType:     req.ActionType,
			Stage:          req.Stage,
			Note:           req.Note,
			Tags:           req.Tags,
			IsAISuggestion: req.IsAISuggestion,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Created(w, "Create candidate action successfully", action)
	}
}

// NewListCandidateActionsHandler handles GET /api/v1/candidate-actions?jobId=&candidateId=.
func NewListCandidateActionsHandler(svc CandidateActionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		actions, err := svc.ListCandidateActions(r.Context(), actorFrom(r), q.Get("jobId"), q.Get("candidateId"))
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Get candidate actions successfully", actions)
	}
}
