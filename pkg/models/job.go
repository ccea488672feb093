package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusDraft  = "draft"
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusOnHold = "on_hold"
)

// JobStatuses lists every valid job status.
var JobStatuses = []string{JobStatusDraft, JobStatusOpen, JobStatusClosed, JobStatusOnHold}

var SeniorityLevels = []string{"intern", "junior", "mid", "senior", "lead"}

var EmploymentTypes = []string{"full-time", "part-time", "contract"}

// ScreeningConfig holds a job's scoring thresholds (0-100) and weights (0-1).
type ScreeningConfig struct {
	AutoRejectBelowScore      float64  `json:"autoRejectBelowScore"`
	ShortlistAboveScore       float64  `json:"shortlistAboveScore"`
	RequiredSkillWeight       float64  `json:"requiredSkillWeight"`
	ExperienceWeight          float64  `json:"experienceWeight"`
	EducationWeight           float64  `json:"educationWeight"`
	KeywordWeight             float64  `json:"keywordWeight"`
	MustHaveSkills            []string `json:"mustHaveSkills"`
	AllowAIAutoRecommendation bool     `json:"allowAiAutoRecommendation"`
}

// DefaultScreeningConfig returns the config a job gets when none is supplied.
func DefaultScreeningConfig() ScreeningConfig {
	return ScreeningConfig{
		AutoRejectBelowScore:      0,
		ShortlistAboveScore:       85,
		RequiredSkillWeight:       0.45,
		ExperienceWeight:          0.25,
		EducationWeight:           0.15,
		KeywordWeight:             0.15,
		MustHaveSkills:            []string{},
		AllowAIAutoRecommendation: true,
	}
}

type JobStats struct {
	TotalApplicants  int `json:"totalApplicants"`
	ScreenedCount    int `json:"screenedCount"`
	ShortlistedCount int `json:"shortlistedCount"`
	RejectedCount    int `json:"rejectedCount"`
	InterviewCount   int `json:"interviewCount"`
	HiredCount       int `json:"hiredCount"`
}

// Job is an organization-scoped role that candidates are screened against.
type Job struct {
	ID              uuid.UUID       `db:"id"               json:"id"`
	OrganizationID  *uuid.UUID      `db:"organization_id"  json:"organizationId"`
	CreatedBy       uuid.UUID       `db:"created_by"       json:"createdBy"`
	JobCode         *string         `db:"job_code"         json:"jobCode"`
	Title           string          `db:"title"            json:"title"`
	Department      *string         `db:"department"       json:"department"`
	SeniorityLevel  string          `db:"seniority_level"  json:"seniorityLevel"`
	EmploymentType  string          `db:"employment_type"  json:"employmentType"`
	JDText          string          `db:"jd_text"          json:"jdText"`
	ScreeningConfig ScreeningConfig `db:"screening_config" json:"screeningConfig"`
	Stats           JobStats        `db:"stats"            json:"stats"`
	Status          string          `db:"status"           json:"status"`
	OpenedAt        *time.Time      `db:"opened_at"        json:"openedAt"`
	ClosedAt        *time.Time      `db:"closed_at"        json:"closedAt"`
	IsDeleted       bool            `db:"is_deleted"       json:"isDeleted"`
	DeletedAt       *time.Time      `db:"deleted_at"       json:"deletedAt"`
	CreatedAt       time.Time       `db:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at"       json:"updatedAt"`
}
