package recruit

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

// RecordResultInput is one candidate's outcome within a run.
type RecordResultInput struct {
	RunID         string
	CandidateID   string
	ResumeFileID  string
	MatchingScore float64
	StatusBadge   string
	MatchedSkills StringList
	MissingSkills StringList
	AISummary     string
	Explanation   string
}

// RecordScreeningResult stores a result for a candidate in the run's input and makes it the
// latest for its (job, candidate).
func (s *Service) RecordScreeningResult(ctx context.Context, actor Actor, in RecordResultInput) (*models.ScreeningResult, error) {
	if !actor.authenticated() {
		return nil, unauthorized()
	}
	if in.MatchingScore < 0 || in.MatchingScore > 100 {
		return nil, validationError("matchingScore must be between 0 and 100")
	}
	if !oneOf(in.StatusBadge, models.StatusBadges) {
		return nil, validationError("statusBadge must be one of " + strings.Join(models.StatusBadges, ", "))
	}

	run, err := s.findRun(ctx, actor.OrganizationID, in.RunID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.findCandidate(ctx, actor.OrganizationID, in.CandidateID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(run.Input.CandidateIDs, candidate.ID) {
		return nil, newError(KindCandidateJobMismatch, "CANDIDATE_NOT_IN_RUN",
			"Candidate is not part of this screening run")
	}

	var resumeFileID *uuid.UUID
	if strings.TrimSpace(in.ResumeFileID) != "" {
		f, err := s.findResumeFile(ctx, actor.OrganizationID, in.ResumeFileID)
		if err != nil {
			return nil, err
		}
		if f.CandidateID != candidate.ID {
			return nil, validationError("resumeFileId must belong to the candidate")
		}
		resumeFileID = &f.ID
	}

	now := s.clock()
	result := &models.ScreeningResult{
		ID:             uuid.New(),
		OrganizationID: candidate.OrganizationID,
		ScreeningRunID: run.ID,
		JobID:          run.JobID,
		CandidateID:    candidate.ID,
		ResumeFileID:   resumeFileID,
		MatchingScore:  in.MatchingScore,
		StatusBadge:    in.StatusBadge,
		MatchedSkills:  normalizeStrings(in.MatchedSkills),
		MissingSkills:  normalizeStrings(in.MissingSkills),
		AISummary:      strings.TrimSpace(in.AISummary),
		Explanation:    strings.TrimSpace(in.Explanation),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateScreeningResult(ctx, result); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, newError(KindDuplicateResult, "DUPLICATE_SCREENING_RESULT",
				"A screening result already exists for this candidate in this run")
		}
		return nil, missingParent(err)
	}

	candidate.LastScreenedAt = &now
	candidate.UpdatedAt = now
	if err := s.store.UpdateCandidate(ctx, candidate); err != nil {
		s.logger.Warn("candidate last screened update failed", "candidate_id", candidate.ID, "error", err)
	}
	return result, nil
}

// ResultQuery filters ListScreeningResults. JobID is required.
type ResultQuery struct {
	OrganizationID *uuid.UUID
	JobID          string
	RunID          string
	CandidateID    string
	LatestOnly     bool
	store.Page
}

// ListScreeningResults returns a job's results ordered by matching score, highest first.
func (s *Service) ListScreeningResults(ctx context.Context, q ResultQuery) (ListResult[*models.ScreeningResult], error) {
	if strings.TrimSpace(q.JobID) == "" {
		return ListResult[*models.ScreeningResult]{}, validationError("jobId is required")
	}
	job, err := s.findJob(ctx, q.OrganizationID, q.JobID)
	if err != nil {
		return ListResult[*models.ScreeningResult]{}, err
	}
	runID, err := parseOptionalID(q.RunID, runRef)
	if err != nil {
		return ListResult[*models.ScreeningResult]{}, err
	}
	candidateID, err := parseOptionalID(q.CandidateID, candidateRef)
	if err != nil {
		return ListResult[*models.ScreeningResult]{}, err
	}
	items, total, err := s.store.ListScreeningResults(ctx, store.ResultFilter{
		JobID:       &job.ID,
		RunID:       runID,
		CandidateID: candidateID,
		LatestOnly:  q.LatestOnly,
		Page:        q.Page,
	})
	if err != nil {
		return ListResult[*models.ScreeningResult]{}, err
	}
	return newListResult(items, total, q.Page), nil
}
