package recruit

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/cache"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize = 20
	maxBatchSize     = 100
	defaultProvider  = "openai"
)

// runTransitions lists the allowed targets per source status.
// A same-state update is always accepted as a progress update.
var runTransitions = map[string][]string{
	models.RunStatusQueued:    {models.RunStatusRunning, models.RunStatusCompleted, models.RunStatusFailed},
	models.RunStatusRunning:   {models.RunStatusCompleted, models.RunStatusFailed},
	models.RunStatusCompleted: {},
	models.RunStatusFailed:    {},
}

// CanTransition reports whether a run may move from one status to another.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return oneOf(to, runTransitions[from])
}

// RunFiltersInput carries the optional candidate filters of a new run.
type RunFiltersInput struct {
	MinYearsExperience *float64   `json:"minYearsExperience"`
	MustIncludeSkills  StringList `json:"mustIncludeSkills"`
	IncludeStatuses    StringList `json:"includeStatuses"`
}

// CreateRunInput is the normalized request to start a screening run.
type CreateRunInput struct {
	JobID         string
	ResumeFileIDs []string
	CandidateIDs  []string
	RerunOfRunID  string
	RunType       string
	TriggeredBy   string
	Filters       RunFiltersInput
	// BatchSize of zero selects the default.
	BatchSize     int
	AIProvider    string
	ModelName     *string
	PromptVersion *string
	JDVersion     *string
}

// CreateScreeningRun builds a run's frozen input set and configuration snapshot and stores it queued.
func (s *Service) CreateScreeningRun(ctx context.Context, actor Actor, in CreateRunInput) (*models.ScreeningRun, error) {
	if !actor.authenticated() {
		return nil, unauthorized()
	}
	if strings.TrimSpace(in.JobID) == "" {
		return nil, validationError("jobId is required")
	}

	job, err := s.findJob(ctx, actor.OrganizationID, in.JobID)
	if err != nil {
		return nil, err
	}

	previous, err := s.resolveRerun(ctx, in.RerunOfRunID, job.ID)
	if err != nil {
		return nil, err
	}

	resumeFileIDs, err := normalizeIDs(in.ResumeFileIDs, resumeFileRef)
	if err != nil {
		return nil, err
	}
	candidateIDs, err := normalizeIDs(in.CandidateIDs, candidateRef)
	if err != nil {
		return nil, err
	}

	files, err := s.resumeFilesForRun(ctx, job.ID, resumeFileIDs)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, newError(KindInputEmpty, "SCREENING_INPUT_EMPTY", "No resume files available for this screening run")
	}

	candidates, err := s.candidatesForRun(ctx, job.ID, candidateIDs, files)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	run := &models.ScreeningRun{
		ID:             uuid.New(),
		OrganizationID: job.OrganizationID,
		JobID:          job.ID,
		CreatedBy:      actor.UserID,
		RunType:        models.RunTypeInitial,
		TriggeredBy:    models.TriggeredByManual,
		Status:         models.RunStatusQueued,
		Input: models.RunInput{
			ResumeFileIDs: fileIDs(files),
			CandidateIDs:  candidates,
		},
		Filters:        normalizeFilters(in.Filters),
		AIProvider:     defaultProvider,
		ModelName:      trimmedOrNil(in.ModelName),
		PromptVersion:  trimmedOrNil(in.PromptVersion),
		ConfigSnapshot: snapshotConfig(job.ScreeningConfig, trimmedOrNil(in.JDVersion)),
		Totals:         models.RunTotals{Total: len(candidates)},
		QueueMeta:      queueMeta(in.BatchSize, len(candidates)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.RunType == models.RunTypeRerun || previous != nil {
		run.RunType = models.RunTypeRerun
	}
	if previous != nil {
		run.RerunOfRunID = &previous.ID
	}
	if in.TriggeredBy == models.TriggeredBySystem {
		run.TriggeredBy = models.TriggeredBySystem
	}
	if p := strings.TrimSpace(in.AIProvider); p != "" {
		run.AIProvider = p
	}

	if err := s.store.CreateScreeningRun(ctx, run); err != nil {
		return nil, missingParent(err)
	}

	s.recorder.RunCreated(run.RunType)
	s.cacheRunStatus(ctx, run)
	s.audit(ctx, actor, models.AuditModuleScreening, "screening_run", run.ID, "screening_run.created", map[string]any{
		"jobId":        job.ID,
		"runType":      run.RunType,
		"resumeFiles":  len(run.Input.ResumeFileIDs),
		"candidates":   len(run.Input.CandidateIDs),
		"rerunOfRunId": run.RerunOfRunID,
	})
	return run, nil
}

// resolveRerun loads the prior run named by raw, which must belong to jobID.
func (s *Service) resolveRerun(ctx context.Context, raw string, jobID uuid.UUID) (*models.ScreeningRun, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := parseID(raw, runRef)
	if err != nil {
		return nil, err
	}
	previous, err := s.store.GetScreeningRun(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindNotFound, runRef.notFoundCode, "Previous screening run not found")
	}
	if err != nil {
		return nil, err
	}
	if previous.JobID != jobID {
		return nil, newError(KindJobMismatch, "SCREENING_RUN_JOB_MISMATCH", "rerunOfRunId must belong to the same job")
	}
	return previous, nil
}

// resumeFilesForRun returns the explicit files in request order, or every live file on the job.
func (s *Service) resumeFilesForRun(ctx context.Context, jobID uuid.UUID, ids []uuid.UUID) ([]*models.ResumeFile, error) {
	if len(ids) == 0 {
		return s.store.FindResumeFiles(ctx, store.ResumeFileFilter{JobID: &jobID})
	}

	found, err := s.store.GetResumeFilesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, newError(KindNotFound, resumeFileRef.notFoundCode, "One or more resume files were not found")
	}

	byID := make(map[uuid.UUID]*models.ResumeFile, len(found))
	for _, f := range found {
		if f.JobID != nil && *f.JobID != jobID {
			return nil, newError(KindJobMismatch, "RESUME_FILE_JOB_MISMATCH",
				"All resume files in a screening run must belong to the selected job")
		}
		byID[f.ID] = f
	}
	ordered := make([]*models.ResumeFile, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}
	return ordered, nil
}

// candidatesForRun validates explicit candidate ids against the job or derives them from the files.
func (s *Service) candidatesForRun(ctx context.Context, jobID uuid.UUID, ids []uuid.UUID, files []*models.ResumeFile) ([]uuid.UUID, error) {
	implied := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		if f.CandidateID != uuid.Nil && !slices.Contains(implied, f.CandidateID) {
			implied = append(implied, f.CandidateID)
		}
	}
	if len(ids) == 0 {
		return implied, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			_, err := s.store.GetCandidate(gctx, id)
			return notFoundAs(err, candidateRef)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if slices.Contains(implied, id) {
			continue
		}
		linked, err := s.candidateLinkedToJob(ctx, id, jobID)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, newError(KindCandidateJobMismatch, "CANDIDATE_JOB_MISMATCH",
				"All candidates in a screening run must be linked to the selected job")
		}
	}
	return ids, nil
}

// candidateLinkedToJob reports whether the candidate has a live resume file or a screening result on the job.
func (s *Service) candidateLinkedToJob(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	files, err := s.store.CountResumeFiles(ctx, store.ResumeFileFilter{CandidateID: &candidateID, JobID: &jobID})
	if err != nil {
		return false, err
	}
	if files > 0 {
		return true, nil
	}
	results, err := s.store.CountScreeningResults(ctx, store.ResultFilter{CandidateID: &candidateID, JobID: &jobID})
	if err != nil {
		return false, err
	}
	return results > 0, nil
}

func normalizeFilters(in RunFiltersInput) models.RunFilters {
	out := models.RunFilters{
		MustIncludeSkills: normalizeStrings(in.MustIncludeSkills),
		IncludeStatuses:   normalizeStrings(in.IncludeStatuses),
	}
	if in.MinYearsExperience != nil {
		years := max(*in.MinYearsExperience, 0)
		out.MinYearsExperience = &years
	}
	return out
}

// queueMeta clamps the batch size to [1, 100] and sizes the batch count for total candidates.
func queueMeta(batchSize, total int) models.QueueMeta {
	if batchSize == 0 {
		batchSize = defaultBatchSize
	}
	batchSize = min(max(batchSize, 1), maxBatchSize)
	meta := models.QueueMeta{BatchSize: batchSize}
	if total > 0 {
		meta.TotalBatches = (total + batchSize - 1) / batchSize
	}
	return meta
}

func snapshotConfig(cfg models.ScreeningConfig, jdVersion *string) models.ConfigSnapshot {
	return models.ConfigSnapshot{
		JDVersion:            jdVersion,
		AutoRejectBelowScore: cfg.AutoRejectBelowScore,
		ShortlistAboveScore:  cfg.ShortlistAboveScore,
		RequiredSkillWeight:  cfg.RequiredSkillWeight,
		ExperienceWeight:     cfg.ExperienceWeight,
		EducationWeight:      cfg.EducationWeight,
		KeywordWeight:        cfg.KeywordWeight,
	}
}

func fileIDs(files []*models.ResumeFile) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return ids
}

// RunQuery filters ListScreeningRuns.
type RunQuery struct {
	OrganizationID *uuid.UUID
	JobID          string
	Status         string
	store.Page
}

func (s *Service) ListScreeningRuns(ctx context.Context, q RunQuery) (ListResult[*models.ScreeningRun], error) {
	filter := store.RunFilter{OrganizationID: q.OrganizationID, Page: q.Page}
	if strings.TrimSpace(q.JobID) != "" {
		job, err := s.findJob(ctx, q.OrganizationID, q.JobID)
		if err != nil {
			return ListResult[*models.ScreeningRun]{}, err
		}
		filter.JobID = &job.ID
	}
	if q.Status != "" {
		if !oneOf(q.Status, models.RunStatuses) {
			return ListResult[*models.ScreeningRun]{}, invalidStatus("Invalid screening run status")
		}
		filter.Status = q.Status
	}
	runs, total, err := s.store.ListScreeningRuns(ctx, filter)
	if err != nil {
		return ListResult[*models.ScreeningRun]{}, err
	}
	return newListResult(runs, total, q.Page), nil
}

func (s *Service) GetScreeningRun(ctx context.Context, actor Actor, id string) (*models.ScreeningRun, error) {
	return s.findRun(ctx, actor.OrganizationID, id)
}

// UpdateRunStatusInput moves a run along its state machine. Nil fields are left unchanged.
type UpdateRunStatusInput struct {
	Status       string
	Processed    *int
	Failed       *int
	Total        *int
	CurrentBatch *int
	TotalBatches *int
	// ErrorSummary is trimmed; a blank value clears it.
	ErrorSummary *string
}

// UpdateScreeningRunStatus applies a status transition and progress counters.
// The write only lands if the run still has the status that was validated.
func (s *Service) UpdateScreeningRunStatus(ctx context.Context, actor Actor, id string, in UpdateRunStatusInput) (*models.ScreeningRun, error) {
	run, err := s.findRun(ctx, actor.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if !oneOf(in.Status, models.RunStatuses) {
		return nil, invalidStatus("Invalid screening run status")
	}
	var from string
	for attempt := 0; ; attempt++ {
		if !CanTransition(run.Status, in.Status) {
			return nil, transitionError(run.Status, in.Status)
		}
		from = run.Status
		applyStatus(run, in, s.clock())

		err := s.store.UpdateScreeningRun(ctx, run, from)
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, runRef.notFound()
		case !errors.Is(err, store.ErrConflict):
			return nil, err
		}
		// Another writer moved the run; re-check against the status that won.
		if run, err = s.store.GetScreeningRun(ctx, run.ID); err != nil {
			return nil, notFoundAs(err, runRef)
		}
		if attempt+1 >= maxStatusRetries {
			return nil, transitionError(run.Status, in.Status)
		}
	}

	if from != run.Status {
		s.recorder.RunStatusChanged(from, run.Status)
	}
	s.cacheRunStatus(ctx, run)
	s.audit(ctx, actor, models.AuditModuleScreening, "screening_run", run.ID, "screening_run.status_updated", map[string]any{
		"from":      from,
		"to":        run.Status,
		"processed": run.Totals.Processed,
		"failed":    run.Totals.Failed,
	})
	return run, nil
}

// maxStatusRetries bounds conditional writes lost to concurrent status updates.
const maxStatusRetries = 3

func applyStatus(run *models.ScreeningRun, in UpdateRunStatusInput, now time.Time) {
	run.Status = in.Status
	switch in.Status {
	case models.RunStatusRunning, models.RunStatusCompleted, models.RunStatusFailed:
		if run.StartedAt == nil {
			run.StartedAt = &now
		}
	}
	switch in.Status {
	case models.RunStatusCompleted, models.RunStatusFailed:
		run.FinishedAt = &now
	case models.RunStatusQueued, models.RunStatusRunning:
		run.FinishedAt = nil
	}

	if in.Processed != nil {
		run.Totals.Processed = nonNegative(*in.Processed)
	}
	if in.Failed != nil {
		run.Totals.Failed = nonNegative(*in.Failed)
	}
	if in.Total != nil {
		run.Totals.Total = nonNegative(*in.Total)
	}
	if in.CurrentBatch != nil {
		run.QueueMeta.CurrentBatch = nonNegative(*in.CurrentBatch)
	}
	if in.TotalBatches != nil {
		run.QueueMeta.TotalBatches = nonNegative(*in.TotalBatches)
	}
	if in.ErrorSummary != nil {
		run.ErrorSummary = trimmedOrNil(in.ErrorSummary)
	}
	run.UpdatedAt = now
}

func transitionError(from, to string) *Error {
	return newError(KindInvalidStatusTransition, "INVALID_STATUS_TRANSITION",
		fmt.Sprintf("Cannot change screening run status from %s to %s", from, to))
}

// GetScreeningRunStatus serves the run status from cache, falling back to the store.
func (s *Service) GetScreeningRunStatus(ctx context.Context, actor Actor, id string) (*cache.RunStatus, error) {
	runID, err := parseID(id, runRef)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		cached, ok, err := s.cache.GetRunStatus(ctx, runID)
		if err != nil {
			s.logger.Warn("run status cache read failed", "run_id", runID, "error", err)
		} else if ok {
			if !visibleTo(actor.OrganizationID, cached.OrganizationID) {
				return nil, runRef.notFound()
			}
			return cached, nil
		}
	}
	run, err := s.store.GetScreeningRun(ctx, runID)
	if err != nil {
		return nil, notFoundAs(err, runRef)
	}
	if !visibleTo(actor.OrganizationID, run.OrganizationID) {
		return nil, runRef.notFound()
	}
	s.cacheRunStatus(ctx, run)
	status := runStatusOf(run)
	return &status, nil
}

func runStatusOf(run *models.ScreeningRun) cache.RunStatus {
	return cache.RunStatus{
		RunID:          run.ID,
		OrganizationID: run.OrganizationID,
		Status:         run.Status,
		Total:          run.Totals.Total,
		Processed:      run.Totals.Processed,
		Failed:         run.Totals.Failed,
		UpdatedAt:      run.UpdatedAt,
	}
}

func (s *Service) cacheRunStatus(ctx context.Context, run *models.ScreeningRun) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetRunStatus(ctx, runStatusOf(run), s.runStatusTTL); err != nil {
		s.logger.Warn("run status cache write failed", "run_id", run.ID, "error", err)
	}
}
