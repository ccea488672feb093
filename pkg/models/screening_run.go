package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusQueued    = "queued"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

var RunStatuses = []string{RunStatusQueued, RunStatusRunning, RunStatusCompleted, RunStatusFailed}

const (
	RunTypeInitial = "initial"
	RunTypeRerun   = "rerun"

	TriggeredByManual = "manual"
	TriggeredBySystem = "system"
)

// RunInput is the frozen set of documents and people a run screens.
type RunInput struct {
	ResumeFileIDs []uuid.UUID `json:"resumeFileIds"`
	CandidateIDs  []uuid.UUID `json:"candidateIds"`
}

type RunFilters struct {
	MinYearsExperience *float64 `json:"minYearsExperience"`
	MustIncludeSkills  []string `json:"mustIncludeSkills"`
	IncludeStatuses    []string `json:"includeStatuses"`
}

// ConfigSnapshot is a copy of the job's scoring weights taken when the run was created.
type ConfigSnapshot struct {
	JDVersion            *string `json:"jdVersion"`
	AutoRejectBelowScore float64 `json:"autoRejectBelowScore"`
	ShortlistAboveScore  float64 `json:"shortlistAboveScore"`
	RequiredSkillWeight  float64 `json:"requiredSkillWeight"`
	ExperienceWeight     float64 `json:"experienceWeight"`
	EducationWeight      float64 `json:"educationWeight"`
	KeywordWeight        float64 `json:"keywordWeight"`
}

type RunTotals struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

type QueueMeta struct {
	BatchSize    int `json:"batchSize"`
	CurrentBatch int `json:"currentBatch"`
	TotalBatches int `json:"totalBatches"`
}

// ScreeningRun is one batch-screening attempt against a job.
type ScreeningRun struct {
	ID             uuid.UUID      `db:"id"              json:"id"`
	OrganizationID *uuid.UUID     `db:"organization_id" json:"organizationId"`
	JobID          uuid.UUID      `db:"job_id"          json:"jobId"`
	CreatedBy      uuid.UUID      `db:"created_by"      json:"createdBy"`
	RunType        string         `db:"run_type"        json:"runType"`
	RerunOfRunID   *uuid.UUID     `db:"rerun_of_run_id" json:"rerunOfRunId"`
	TriggeredBy    string         `db:"triggered_by"    json:"triggeredBy"`
	Status         string         `db:"status"          json:"status"`
	StartedAt      *time.Time     `db:"started_at"      json:"startedAt"`
	FinishedAt     *time.Time     `db:"finished_at"     json:"finishedAt"`
	Input          RunInput       `db:"input"           json:"input"`
	Filters        RunFilters     `db:"filters"         json:"filters"`
	AIProvider     string         `db:"ai_provider"     json:"aiProvider"`
	ModelName      *string        `db:"model_name"      json:"modelName"`
	PromptVersion  *string        `db:"prompt_version"  json:"promptVersion"`
	ConfigSnapshot ConfigSnapshot `db:"config_snapshot" json:"configSnapshot"`
	Totals         RunTotals      `db:"totals"          json:"totals"`
	QueueMeta      QueueMeta      `db:"queue_meta"      json:"queueMeta"`
	ErrorSummary   *string        `db:"error_summary"   json:"errorSummary"`
	CreatedAt      time.Time      `db:"created_at"      json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at"      json:"updatedAt"`
}
