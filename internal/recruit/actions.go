package recruit

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

// ActionInput records a recruiter decision on a candidate within a job.
type ActionInput struct {
	JobID          string
	CandidateID    string
	ActionType     string
	Stage          *string
	Note           *string
	Tags           StringList
	IsAISuggestion bool
}

func (s *Service) CreateCandidateAction(ctx context.Context, actor Actor, in ActionInput) (*models.CandidateAction, error) {
	if !actor.authenticated() {
		return nil, unauthorized()
	}
	if !oneOf(in.ActionType, models.ActionTypes) {
		return nil, validationError("actionType must be one of " + strings.Join(models.ActionTypes, ", "))
	}
	stage := trimmedOrNil(in.Stage)
	if in.ActionType == models.ActionMoveStage && stage == nil {
		return nil, validationError("stage is required for move_stage")
	}
	if stage != nil && !oneOf(*stage, models.Stages) {
		return nil, validationError("stage must be one of " + strings.Join(models.Stages, ", "))
	}

	job, err := s.findJob(ctx, actor.OrganizationID, in.JobID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.findCandidate(ctx, actor.OrganizationID, in.CandidateID)
	if err != nil {
		return nil, err
	}

	action := &models.CandidateAction{
		ID:             uuid.New(),
		JobID:          job.ID,
		CandidateID:    candidate.ID,
		ActedBy:        actor.UserID,
		ActionType:     in.ActionType,
		Stage:          stage,
		Note:           trimmedOrNil(in.Note),
		Tags:           normalizeStrings(in.Tags),
		IsAISuggestion: in.IsAISuggestion,
		CreatedAt:      s.clock(),
	}
	if err := s.store.CreateCandidateAction(ctx, action); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, models.AuditModuleCandidateWorkflow, "candidate", candidate.ID, "candidate_action."+in.ActionType, map[string]any{
		"jobId":    job.ID,
		"actionId": action.ID,
	})
	return action, nil
}

// ListCandidateActions returns a candidate's actions within a job, newest first.
func (s *Service) ListCandidateActions(ctx context.Context, actor Actor, jobID, candidateID string) ([]*models.CandidateAction, error) {
	jid, err := parseID(jobID, jobRef)
	if err != nil {
		return nil, err
	}
	cid, err := parseID(candidateID, candidateRef)
	if err != nil {
		return nil, err
	}
	if actor.OrganizationID != nil {
		if _, err := s.findJob(ctx, actor.OrganizationID, jobID); err != nil {
			return nil, err
		}
	}
	actions, err := s.store.ListCandidateActions(ctx, jid, cid)
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []*models.CandidateAction{}
	}
	return actions, nil
}
