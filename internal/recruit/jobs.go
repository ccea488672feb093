package recruit

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

const weightSumTolerance = 0.01

// JobInput creates a job. Empty enum fields take their defaults.
type JobInput struct {
	Title           string
	JDText          string
	JobCode         *string
	Department      *string
	SeniorityLevel  string
	EmploymentType  string
	Status          string
	ScreeningConfig *models.ScreeningConfig
}

// JobPatch updates a job. Nil fields are left unchanged.
type JobPatch struct {
	Title           *string
	JDText          *string
	JobCode         *string
	Department      *string
	SeniorityLevel  *string
	EmploymentType  *string
	Status          *string
	ScreeningConfig *models.ScreeningConfig
}

func (s *Service) CreateJob(ctx context.Context, actor Actor, in JobInput) (*models.Job, error) {
	title := strings.TrimSpace(in.Title)
	jdText := strings.TrimSpace(in.JDText)
	if title == "" || jdText == "" {
		return nil, validationError("title and jdText are required")
	}
	if !actor.authenticated() {
		return nil, unauthorized()
	}

	job := &models.Job{
		OrganizationID:  actor.OrganizationID,
		CreatedBy:       actor.UserID,
		JobCode:         trimmedOrNil(in.JobCode),
		Title:           title,
		Department:      trimmedOrNil(in.Department),
		SeniorityLevel:  valueOr(in.SeniorityLevel, "mid"),
		EmploymentType:  valueOr(in.EmploymentType, "full-time"),
		JDText:          jdText,
		ScreeningConfig: models.DefaultScreeningConfig(),
		Status:          valueOr(in.Status, models.JobStatusDraft),
	}
	if err := validateJobEnums(job); err != nil {
		return nil, err
	}
	if in.ScreeningConfig != nil {
		cfg, err := normalizeScreeningConfig(*in.ScreeningConfig)
		if err != nil {
			return nil, err
		}
		job.ScreeningConfig = cfg
	}

	now := s.clock()
	job.ID = uuid.New()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == models.JobStatusOpen {
		job.OpenedAt = &now
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, translateJobWrite(err)
	}
	return job, nil
}

// JobQuery filters ListJobs.
type JobQuery struct {
	OrganizationID *uuid.UUID
	Status         string
	Department     string
	Search         string
	store.Page
}

func (s *Service) ListJobs(ctx context.Context, q JobQuery) (ListResult[*models.Job], error) {
	if q.Status != "" && !oneOf(q.Status, models.JobStatuses) {
		return ListResult[*models.Job]{}, invalidStatus("Invalid job status")
	}
	jobs, total, err := s.store.ListJobs(ctx, store.JobFilter{
		OrganizationID: q.OrganizationID,
		Status:         q.Status,
		Department:     strings.TrimSpace(q.Department),
		Search:         q.Search,
		Page:           q.Page,
	})
	if err != nil {
		return ListResult[*models.Job]{}, err
	}
	return newListResult(jobs, total, q.Page), nil
}

func (s *Service) GetJob(ctx context.Context, actor Actor, id string) (*models.Job, error) {
	return s.findJob(ctx, actor.OrganizationID, id)
}

func (s *Service) UpdateJob(ctx context.Context, actor Actor, id string, patch JobPatch) (*models.Job, error) {
	job, err := s.findJob(ctx, actor.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	previousStatus := job.Status

	if patch.Title != nil {
		if job.Title = strings.TrimSpace(*patch.Title); job.Title == "" {
			return nil, validationError("title cannot be empty")
		}
	}
	if patch.JDText != nil {
		if job.JDText = strings.TrimSpace(*patch.JDText); job.JDText == "" {
			return nil, validationError("jdText cannot be empty")
		}
	}
	if patch.JobCode != nil {
		job.JobCode = trimmedOrNil(patch.JobCode)
	}
	if patch.Department != nil {
		job.Department = trimmedOrNil(patch.Department)
	}
	if patch.SeniorityLevel != nil {
		job.SeniorityLevel = *patch.SeniorityLevel
	}
	if patch.EmploymentType != nil {
		job.EmploymentType = *patch.EmploymentType
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if err := validateJobEnums(job); err != nil {
		return nil, err
	}
	if patch.ScreeningConfig != nil {
		cfg, err := normalizeScreeningConfig(*patch.ScreeningConfig)
		if err != nil {
			return nil, err
		}
		job.ScreeningConfig = cfg
	}

	now := s.clock()
	if job.Status != previousStatus {
		if job.Status == models.JobStatusOpen && job.OpenedAt == nil {
			job.OpenedAt = &now
		}
		if job.Status == models.JobStatusClosed {
			job.ClosedAt = &now
		} else {
			job.ClosedAt = nil
		}
	}
	job.UpdatedAt = now

	if err := s.store.UpdateJob(ctx, job); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, jobRef.notFound()
		}
		return nil, translateJobWrite(err)
	}
	return job, nil
}

// DeleteJob soft-deletes a job that nothing links to.
func (s *Service) DeleteJob(ctx context.Context, actor Actor, id string) error {
	job, err := s.findJob(ctx, actor.OrganizationID, id)
	if err != nil {
		return err
	}
	linked, err := s.CountJobLinkedRecords(ctx, job.ID)
	if err != nil {
		return err
	}
	conflict := newError(KindRelationshipConflict, "JOB_RELATIONSHIP_CONFLICT",
		"Cannot delete job while linked resume files or screening records still exist")
	if linked.Total() > 0 {
		s.recorder.DeleteBlocked("job")
		return conflict
	}

	if err := s.store.SoftDeleteJob(ctx, job.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			s.recorder.DeleteBlocked("job")
			return conflict
		case errors.Is(err, store.ErrNotFound):
			return jobRef.notFound()
		}
		return err
	}

	s.audit(ctx, actor, models.AuditModuleJobManagement, "job", job.ID, "job.deleted", map[string]any{
		"title": job.Title,
	})
	return nil
}

func validateJobEnums(job *models.Job) error {
	if !oneOf(job.Status, models.JobStatuses) {
		return invalidStatus("Invalid job status")
	}
	if !oneOf(job.SeniorityLevel, models.SeniorityLevels) {
		return validationError("seniorityLevel must be one of " + strings.Join(models.SeniorityLevels, ", "))
	}
	if !oneOf(job.EmploymentType, models.EmploymentTypes) {
		return validationError("employmentType must be one of " + strings.Join(models.EmploymentTypes, ", "))
	}
	return nil
}

// normalizeScreeningConfig checks thresholds are percentages and weights are fractions summing to 1.
func normalizeScreeningConfig(cfg models.ScreeningConfig) (models.ScreeningConfig, error) {
	for _, t := range []float64{cfg.AutoRejectBelowScore, cfg.ShortlistAboveScore} {
		if t < 0 || t > 100 {
			return cfg, validationError("screeningConfig score thresholds must be between 0 and 100")
		}
	}
	if cfg.AutoRejectBelowScore > cfg.ShortlistAboveScore {
		return cfg, validationError("autoRejectBelowScore cannot exceed shortlistAboveScore")
	}
	weights := []float64{cfg.RequiredSkillWeight, cfg.ExperienceWeight, cfg.EducationWeight, cfg.KeywordWeight}
	var sum float64
	for _, w := range weights {
		if w < 0 || w > 1 {
			return cfg, validationError("screeningConfig weights must be between 0 and 1")
		}
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return cfg, validationError("screeningConfig weights must sum to 1")
	}
	cfg.MustHaveSkills = normalizeStrings(cfg.MustHaveSkills)
	return cfg, nil
}

func translateJobWrite(err error) error {
	if errors.Is(err, store.ErrDuplicateKey) {
		return newError(KindDuplicateJobCode, "DUPLICATE_JOB_CODE", "Job code already exists")
	}
	return err
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}
