package models

import (
	"time"

	"github.com/google/uuid"
)

var StatusBadges = []string{"strong_fit", "potential", "not_suitable"}

// ScreeningResult is one candidate's score within one run.
// At most one exists per (job, candidate, run).
type ScreeningResult struct {
	ID                      uuid.UUID  `db:"id"                          json:"id"`
	OrganizationID          *uuid.UUID `db:"organization_id"             json:"organizationId"`
	ScreeningRunID          uuid.UUID  `db:"screening_run_id"            json:"screeningRunId"`
	JobID                   uuid.UUID  `db:"job_id"                      json:"jobId"`
	CandidateID             uuid.UUID  `db:"candidate_id"                json:"candidateId"`
	ResumeFileID            *uuid.UUID `db:"resume_file_id"              json:"resumeFileId"`
	MatchingScore           float64    `db:"matching_score"              json:"matchingScore"`
	StatusBadge             string     `db:"status_badge"                json:"statusBadge"`
	MatchedSkills           []string   `db:"matched_skills"              json:"matchedSkills"`
	MissingSkills           []string   `db:"missing_skills"              json:"missingSkills"`
	AISummary               string     `db:"ai_summary"                  json:"aiSummary"`
	Explanation             string     `db:"explanation"                 json:"explanation"`
	IsLatestForJobCandidate bool       `db:"is_latest_for_job_candidate" json:"isLatestForJobCandidate"`
	CreatedAt               time.Time  `db:"created_at"                  json:"createdAt"`
	UpdatedAt               time.Time  `db:"updated_at"                  json:"updatedAt"`
}
