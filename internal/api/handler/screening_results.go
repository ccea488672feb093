package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/hirescreen/internal/api/response"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

type ScreeningResultService interface {
	RecordScreeningResult(ctx context.Context, actor recruit.Actor, in recruit.RecordResultInput) (*models.ScreeningResult, error)
	ListScreeningResults(ctx context.Context, q recruit.ResultQuery) (recruit.ListResult[*models.ScreeningResult], error)
}

type recordResultRequest struct {
	ScreeningRunID string             `json:"screeningRunId" validate:"required"`
	CandidateID    string             `json:"candidateId"    validate:"required"`
	ResumeFileID   string             `json:"resumeFileId"`
	MatchingScore  *float64           `json:"matchingScore"  validate:"required"`
	StatusBadge    string             `json:"statusBadge"    validate:"required"`
	MatchedSkills  recruit.StringList `json:"matchedSkills"`
	MissingSkills  recruit.StringList `json:"missingSkills"`
	AISummary      string             `json:"aiSummary"`
	Explanation    string             `json:"explanation"`
}

func NewRecordScreeningResultHandler(svc ScreeningResultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordResultRequest
		if !decode(w, r, &req) {
			return
		}
		result, err := svc.RecordScreeningResult(r.Context(), actorFrom(r), recruit.RecordResultInput{
			RunID:         req.ScreeningRunID,
			CandidateID:   req.CandidateID,
			ResumeFileID:  req.ResumeFileID,
			MatchingScore: *req.MatchingScore,
			StatusBadge:   req.StatusBadge,
			MatchedSkills: req.MatchedSkills,
			MissingSkills: req.MissingSkills,
			AISummary:     req.AISummary,
			Explanation:   req.Explanation,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Created(w, "Record screening result successfully", result)
	}
}

// NewListScreeningResultsHandler handles GET /api/v1/screening-results?jobId=.
func NewListScreeningResultsHandler(svc ScreeningResultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := svc.ListScreeningResults(r.Context(), recruit.ResultQuery{
			OrganizationID: actorFrom(r).OrganizationID,
			JobID:          q.Get("jobId"),
			RunID:          q.Get("screeningRunId"),
			CandidateID:    q.Get("candidateId"),
			LatestOnly:     queryBool(r, "latestOnly"),
			Page:           pageFrom(r),
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.List(w, "Get screening results successfully", res.Items, response.Page(res))
	}
}
