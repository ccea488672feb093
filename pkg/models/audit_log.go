package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuditModuleJobManagement     = "job_management"
	AuditModuleResumeUpload      = "resume_upload"
	AuditModuleScreening         = "screening"
	AuditModuleCandidateWorkflow = "candidate_workflow"
)

// AuditLog is an append-only system event.
type AuditLog struct {
	ID         uuid.UUID      `db:"id"          json:"id"`
	ActorID    *uuid.UUID     `db:"actor_id"    json:"actorId"`
	EntityType string         `db:"entity_type" json:"entityType"`
	EntityID   uuid.UUID      `db:"entity_id"   json:"entityId"`
	Action     string         `db:"action"      json:"action"`
	Module     string         `db:"module"      json:"module"`
	Severity   string         `db:"severity"    json:"severity"`
	Metadata   map[string]any `db:"metadata"    json:"metadata"`
	CreatedAt  time.Time      `db:"created_at"  json:"createdAt"`
}
