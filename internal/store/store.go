package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// ErrConflict is returned when a conditional write finds its precondition no longer holds.
var ErrConflict = errors.New("conditional write rejected")

// Parent tables a dependent write can find missing.
const (
	TableJobs        = "jobs"
	TableCandidates  = "candidates"
	TableResumeFiles = "resume_files"
)

// MissingRowError reports a parent row that was missing or soft-deleted when a
// dependent record was written. It matches ErrNotFound.
type MissingRowError struct {
	Table string
	ID    uuid.UUID
}

func (e *MissingRowError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Table, e.ID, ErrNotFound)
}

func (e *MissingRowError) Unwrap() error { return ErrNotFound }

// Store is the data access interface. All database operations go through here.
// Get/List/Count methods never return soft-deleted rows.
type Store interface {
	Ping(ctx context.Context) error

	CreateOrganization(ctx context.Context, org *models.Organization) error
	GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context, userID uuid.UUID) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID, userID uuid.UUID) error

	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*models.Job, int, error)
	UpdateJob(ctx context.Context, job *models.Job) error
	// SoftDeleteJob marks the job deleted only while nothing links to it.
	// Returns ErrConflict if a live resume file, screening result or run references it.
	SoftDeleteJob(ctx context.Context, id uuid.UUID) error

	CreateCandidate(ctx context.Context, c *models.Candidate) error
	GetCandidate(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*models.Candidate, int, error)
	UpdateCandidate(ctx context.Context, c *models.Candidate) error
	SoftDeleteCandidate(ctx context.Context, id uuid.UUID) error
	SetCandidateLatestResume(ctx context.Context, candidateID uuid.UUID, resumeFileID, jobID *uuid.UUID) error

	CreateResumeFile(ctx context.Context, f *models.ResumeFile) error
	GetResumeFile(ctx context.Context, id uuid.UUID) (*models.ResumeFile, error)
	GetResumeFilesByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.ResumeFile, error)
	// FindResumeFiles returns every matching file, newest first, ignoring pagination.
	FindResumeFiles(ctx context.Context, filter ResumeFileFilter) ([]*models.ResumeFile, error)
	ListResumeFiles(ctx context.Context, filter ResumeFileFilter) ([]*models.ResumeFile, int, error)
	CountResumeFiles(ctx context.Context, filter ResumeFileFilter) (int, error)
	// SoftDeleteResumeFile marks the file deleted and failed while no result or run references it.
	SoftDeleteResumeFile(ctx context.Context, id uuid.UUID) error

	CreateScreeningRun(ctx context.Context, run *models.ScreeningRun) error
	GetScreeningRun(ctx context.Context, id uuid.UUID) (*models.ScreeningRun, error)
	ListScreeningRuns(ctx context.Context, filter RunFilter) ([]*models.ScreeningRun, int, error)
	CountScreeningRuns(ctx context.Context, filter RunFilter) (int, error)
	// UpdateScreeningRun saves the mutable run fields if the stored status still equals
	// expectedStatus. Returns ErrConflict otherwise.
	UpdateScreeningRun(ctx context.Context, run *models.ScreeningRun, expectedStatus string) error

	// CreateScreeningResult inserts the result as the latest for its (job, candidate)
	// and clears the flag on earlier results.
	CreateScreeningResult(ctx context.Context, r *models.ScreeningResult) error
	ListScreeningResults(ctx context.Context, filter ResultFilter) ([]*models.ScreeningResult, int, error)
	CountScreeningResults(ctx context.Context, filter ResultFilter) (int, error)

	CreateCandidateAction(ctx context.Context, a *models.CandidateAction) error
	ListCandidateActions(ctx context.Context, jobID, candidateID uuid.UUID) ([]*models.CandidateAction, error)

	AppendAuditLog(ctx context.Context, entry *models.AuditLog) error
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize applies defaults and clamps the limit to [1, 100].
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

type JobFilter struct {
	OrganizationID *uuid.UUID
	Status         string
	Department     string
	Search         string
	Page
}

type CandidateFilter struct {
	OrganizationID *uuid.UUID
	ProfileStatus  string
	Search         string
	Page
}

type ResumeFileFilter struct {
	OrganizationID *uuid.UUID
	JobID          *uuid.UUID
	CandidateID    *uuid.UUID
	UploadStatus   string
	Page
}

type RunFilter struct {
	OrganizationID *uuid.UUID
	JobID          *uuid.UUID
	Status         string
	ResumeFileID   *uuid.UUID
	CandidateID    *uuid.UUID
	Page
}

type ResultFilter struct {
	JobID        *uuid.UUID
	CandidateID  *uuid.UUID
	ResumeFileID *uuid.UUID
	RunID        *uuid.UUID
	LatestOnly   bool
	Page
}
