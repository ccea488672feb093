package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProfileStatusPendingParse = "pending_parse"
	ProfileStatusParsed       = "parsed"
	ProfileStatusNeedsReview  = "needs_review"
	ProfileStatusEnriched     = "enriched"
	ProfileStatusFailedParse  = "failed_parse"
)

var ProfileStatuses = []string{
	ProfileStatusPendingParse, ProfileStatusParsed, ProfileStatusNeedsReview,
	ProfileStatusEnriched, ProfileStatusFailedParse,
}

const (
	CandidateSourceResumeUpload = "resume_upload"
	CandidateSourceManual       = "manual"
	CandidateSourceImport       = "import"
)

type HardSkill struct {
	Name     string  `json:"name"`
	Level    int     `json:"level"`
	Years    float64 `json:"years"`
	Verified bool    `json:"verified"`
}

type CandidateSkills struct {
	Hard []HardSkill `json:"hard"`
	Soft []string    `json:"soft"`
}

// CandidateSource records how a candidate entered the system.
// JobID mirrors the job of the candidate's latest resume file.
type CandidateSource struct {
	Type     string     `json:"type"`
	SourceID *string    `json:"sourceId"`
	JobID    *uuid.UUID `json:"jobId"`
}

// Candidate is a person profile. Email is unique per organization among live rows.
type Candidate struct {
	ID                   uuid.UUID       `db:"id"                     json:"id"`
	OrganizationID       *uuid.UUID      `db:"organization_id"        json:"organizationId"`
	FullName             string          `db:"full_name"              json:"fullName"`
	NormalizedFullName   string          `db:"normalized_full_name"   json:"normalizedFullName"`
	Email                *string         `db:"email"                  json:"email"`
	Phone                *string         `db:"phone"                  json:"phone"`
	Location             *string         `db:"location"               json:"location"`
	CurrentTitle         *string         `db:"current_title"          json:"currentTitle"`
	CurrentCompany       *string         `db:"current_company"        json:"currentCompany"`
	TotalYearsExperience float64         `db:"total_years_experience" json:"totalYearsExperience"`
	Summary              string          `db:"summary"                json:"summary"`
	ProfileStatus        string          `db:"profile_status"         json:"profileStatus"`
	Tags                 []string        `db:"tags"                   json:"tags"`
	Skills               CandidateSkills `db:"skills"                 json:"skills"`
	Source               CandidateSource `db:"source"                 json:"source"`
	LatestResumeFileID   *uuid.UUID      `db:"latest_resume_file_id"  json:"latestResumeFileId"`
	LastScreenedAt       *time.Time      `db:"last_screened_at"       json:"lastScreenedAt"`
	IsDeleted            bool            `db:"is_deleted"             json:"isDeleted"`
	DeletedAt            *time.Time      `db:"deleted_at"             json:"deletedAt"`
	CreatedAt            time.Time       `db:"created_at"             json:"createdAt"`
	UpdatedAt            time.Time       `db:"updated_at"             json:"updatedAt"`
}
