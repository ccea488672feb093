package models

import (
	"time"

	"github.com/google/uuid"
)

const ActionMoveStage = "move_stage"

var ActionTypes = []string{"shortlisted", "rejected", "notes", "tags", ActionMoveStage, "schedule_interview", "restore"}

var Stages = []string{"applied", "screened", "interview", "offer", "hired"}

// CandidateAction is a recruiter decision on a candidate within a job.
type CandidateAction struct {
	ID                      uuid.UUID  `db:"id"                         json:"id"`
	JobID                   uuid.UUID  `db:"job_id"                     json:"jobId"`
	CandidateID             uuid.UUID  `db:"candidate_id"               json:"candidateId"`
	ActedBy                 uuid.UUID  `db:"acted_by"                   json:"actedBy"`
	ActionType              string     `db:"action_type"                json:"actionType"`
	Stage                   *string    `db:"stage"                      json:"stage"`
	Note                    *string    `db:"note"                       json:"note"`
	Tags                    []string   `db:"tags"                       json:"tags"`
	IsAISuggestion          bool       `db:"is_ai_suggestion"           json:"isAiSuggestion"`
	SourceScreeningResultID *uuid.UUID `db:"source_screening_result_id" json:"sourceScreeningResultId"`
	CreatedAt               time.Time  `db:"created_at"                 json:"createdAt"`
}
