package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/hirescreen/internal/api/response"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

type CandidateService interface {
	CreateCandidate(ctx context.Context, actor recruit.Actor, in recruit.CandidateFields) (*models.Candidate, error)
	ListCandidates(ctx context.Context, q recruit.CandidateQuery) (recruit.ListResult[*models.Candidate], error)
	GetCandidate(ctx context.Context, actor recruit.Actor, id string) (*models.Candidate, error)
	UpdateCandidate(ctx context.Context, actor recruit.Actor, id string, patch recruit.CandidateFields) (*models.Candidate, error)
	DeleteCandidate(ctx context.Context, actor recruit.Actor, id string) error
}

// candidateRequest serves both create and patch; absent fields stay nil.
type candidateRequest struct {
	FullName             *string            `json:"fullName"             validate:"omitempty,max=200"`
	Email                *string            `json:"email"                validate:"omitempty,max=320"`
	Phone                *string            `json:"phone"`
	Location             *string            `json:"location"`
	CurrentTitle         *string            `json:"currentTitle"`
	CurrentCompany       *string            `json:"currentCompany"`
	Summary              *string            `json:"summary"`
	TotalYearsExperience *float64           `json:"totalYearsExperience"`
	ProfileStatus        *string            `json:"profileStatus"`
	Tags                 recruit.StringList `json:"tags"`
	Skills               struct {
		Hard recruit.StringList `json:"hard"`
		Soft recruit.StringList `json:"soft"`
	} `json:"skills"`
}

func (req candidateRequest) fields() recruit.CandidateFields {
	return recruit.CandidateFields{
		FullName:             req.FullName,
		Email:                req.Email,
		Phone:                req.Phone,
		Location:             req.Location,
		CurrentTitle:         req.CurrentTitle,
		CurrentCompany:       req.CurrentCompany,
		Summary:              req.Summary,
		TotalYearsExperience: req.TotalYearsExperience,
		ProfileStatus:        req.ProfileStatus,
		Tags:                 req.Tags,
		SkillsHard:           req.Skills.Hard,
		SkillsSoft:           req.Skills.Soft,
	}
}

func NewCreateCandidateHandler(svc CandidateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req candidateRequest
		if !decode(w, r, &req) {
			return
		}
		c, err := svc.CreateCandidate(r.Context(), actorFrom(r), req.fields())
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Created(w, "Create candidate successfully", c)
	}
}

func NewListCandidatesHandler(svc CandidateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := svc.ListCandidates(r.Context(), recruit.CandidateQuery{
			OrganizationID: actorFrom(r).OrganizationID,
			ProfileStatus:  q.Get("profileStatus"),
			Search:         q.Get("search"),
			Page:           pageFrom(r),
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.List(w, "Get candidates successfully", res.Items, response.Page(res))
	}
}

func NewGetCandidateHandler(svc CandidateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetCandidate(r.Context(), actorFrom(r), idParam(r))
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Get candidate detail successfully", c)
	}
}

func NewUpdateCandidateHandler(svc CandidateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req candidateRequest
		if !decode(w, r, &req) {
			return
		}
		c, err := svc.UpdateCandidate(r.Context(), actorFrom(r), idParam(r), req.fields())
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Update candidate successfully", c)
	}
}

func NewDeleteCandidateHandler(svc CandidateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := idParam(r)
		if err := svc.DeleteCandidate(r.Context(), actorFrom(r), id); err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Delete candidate successfully", deletedResponse{ID: id})
	}
}
