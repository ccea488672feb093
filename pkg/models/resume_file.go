package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	UploadStatusQueued    = "queued"
	UploadStatusUploading = "uploading"
	UploadStatusUploaded  = "uploaded"
	UploadStatusFailed    = "failed"
)

var UploadStatuses = []string{UploadStatusQueued, UploadStatusUploading, UploadStatusUploaded, UploadStatusFailed}

const (
	ParseStatusPending = "pending"
	ParseStatusParsing = "parsing"
	ParseStatusParsed  = "parsed"
	ParseStatusFailed  = "failed"
)

// FileStorage locates the binary content held by an external storage provider.
type FileStorage struct {
	Provider  string  `json:"provider"`
	PathOrKey string  `json:"pathOrKey"`
	URL       *string `json:"url"`
	Bucket    *string `json:"bucket"`
}

// ResumeFile is one uploaded document owned by a candidate and optionally tied to a job.
type ResumeFile struct {
	ID               uuid.UUID   `db:"id"                 json:"id"`
	OrganizationID   *uuid.UUID  `db:"organization_id"    json:"organizationId"`
	CandidateID      uuid.UUID   `db:"candidate_id"       json:"candidateId"`
	JobID            *uuid.UUID  `db:"job_id"             json:"jobId"`
	OriginalFileName string      `db:"original_file_name" json:"originalFileName"`
	MimeType         string      `db:"mime_type"          json:"mimeType"`
	SizeBytes        int64       `db:"size_bytes"         json:"sizeBytes"`
	FileHash         *string     `db:"file_hash"          json:"fileHash"`
	Storage          FileStorage `db:"storage"            json:"storage"`
	UploadStatus     string      `db:"upload_status"      json:"uploadStatus"`
	ParseStatus      string      `db:"parse_status"       json:"parseStatus"`
	ParseAttempts    int         `db:"parse_attempts"     json:"parseAttempts"`
	ParseError       *string     `db:"parse_error"        json:"parseError"`
	UploadedBy       uuid.UUID   `db:"uploaded_by"        json:"uploadedBy"`
	IsDeleted        bool        `db:"is_deleted"         json:"isDeleted"`
	DeletedAt        *time.Time  `db:"deleted_at"         json:"deletedAt"`
	CreatedAt        time.Time   `db:"created_at"         json:"createdAt"`
	UpdatedAt        time.Time   `db:"updated_at"         json:"updatedAt"`
}
