package recruit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

const unknownCandidateName = "Unknown Candidate"

var (
	reNameSeparators = regexp.MustCompile(`[_-]+`)
	reWhitespace     = regexp.MustCompile(`\s+`)
)

// ResumeFileDescriptor describes a file already placed in external storage.
type ResumeFileDescriptor struct {
	OriginalFileName string
	MimeType         string
	SizeBytes        int64
	FileHash         *string
	Storage          models.FileStorage
}

// RegisterResumeFilesInput attaches stored files to a candidate, optionally under a job.
// Without CandidateID a new candidate is created per file.
type RegisterResumeFilesInput struct {
	JobID       string
	CandidateID string
	Files       []ResumeFileDescriptor
}

// CandidateNameFromFile derives a display name from an uploaded file name.
func CandidateNameFromFile(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := reNameSeparators.ReplaceAllString(base, " ")
	name = strings.TrimSpace(reWhitespace.ReplaceAllString(name, " "))
	if name == "" {
		return unknownCandidateName
	}
	return name
}

func (d ResumeFileDescriptor) validate(i int) error {
	switch {
	case strings.TrimSpace(d.OriginalFileName) == "":
		return validationError(fmt.Sprintf("files[%d].originalFileName is required", i))
	case strings.TrimSpace(d.MimeType) == "":
		return validationError(fmt.Sprintf("files[%d].mimeType is required", i))
	case d.SizeBytes < 0:
		return validationError(fmt.Sprintf("files[%d].sizeBytes cannot be negative", i))
	case strings.TrimSpace(d.Storage.Provider) == "" || strings.TrimSpace(d.Storage.PathOrKey) == "":
		return validationError(fmt.Sprintf("files[%d].storage requires provider and pathOrKey", i))
	}
	return nil
}

func (s *Service) RegisterResumeFiles(ctx context.Context, actor Actor, in RegisterResumeFilesInput) ([]*models.ResumeFile, error) {
	if !actor.authenticated() {
		return nil, unauthorized()
	}
	if len(in.Files) == 0 {
		return nil, validationError("at least one file is required")
	}
	for i, d := range in.Files {
		if err := d.validate(i); err != nil {
			return nil, err
		}
	}

	var jobID *uuid.UUID
	if strings.TrimSpace(in.JobID) != "" {
		job, err := s.findJob(ctx, actor.OrganizationID, in.JobID)
		if err != nil {
			return nil, err
		}
		jobID = &job.ID
	}
	var fixed *models.Candidate
	if strings.TrimSpace(in.CandidateID) != "" {
		c, err := s.findCandidate(ctx, actor.OrganizationID, in.CandidateID)
		if err != nil {
			return nil, err
		}
		fixed = c
	}

	created := make([]*models.ResumeFile, 0, len(in.Files))
	touched := make([]uuid.UUID, 0, len(in.Files))
	for _, d := range in.Files {
		candidate := fixed
		if candidate == nil {
			c, err := s.createUploadCandidate(ctx, actor, d.OriginalFileName, jobID)
			if err != nil {
				return nil, err
			}
			candidate = c
		}

		now := s.clock()
		f := &models.ResumeFile{
			ID:               uuid.New(),
			OrganizationID:   actor.OrganizationID,
			CandidateID:      candidate.ID,
			JobID:            jobID,
			OriginalFileName: strings.TrimSpace(d.OriginalFileName),
			MimeType:         strings.TrimSpace(d.MimeType),
			SizeBytes:        d.SizeBytes,
			FileHash:         trimmedOrNil(d.FileHash),
			Storage:          d.Storage,
			UploadStatus:     models.UploadStatusUploaded,
			ParseStatus:      models.ParseStatusPending,
			UploadedBy:       actor.UserID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.store.CreateResumeFile(ctx, f); err != nil {
			return nil, missingParent(err)
		}
		created = append(created, f)
		if !slices.Contains(touched, candidate.ID) {
			touched = append(touched, candidate.ID)
		}
	}

	for _, id := range touched {
		if err := s.syncCandidateLatestResumeFile(ctx, id); err != nil {
			return nil, err
		}
	}
	return created, nil
}

func (s *Service) createUploadCandidate(ctx context.Context, actor Actor, fileName string, jobID *uuid.UUID) (*models.Candidate, error) {
	name := CandidateNameFromFile(fileName)
	now := s.clock()
	c := &models.Candidate{
		ID:                 uuid.New(),
		OrganizationID:     actor.OrganizationID,
		FullName:           name,
		NormalizedFullName: strings.ToLower(name),
		ProfileStatus:      models.ProfileStatusPendingParse,
		Tags:               []string{},
		Skills:             models.CandidateSkills{Hard: []models.HardSkill{}, Soft: []string{}},
		Source:             models.CandidateSource{Type: models.CandidateSourceResumeUpload, JobID: jobID},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.CreateCandidate(ctx, c); err != nil {
		return nil, translateCandidateWrite(err)
	}
	return c, nil
}

// ResumeFileQuery filters ListResumeFiles.
type ResumeFileQuery struct {
	OrganizationID *uuid.UUID
	JobID          string
	CandidateID    string
	UploadStatus   string
	store.Page
}

func (s *Service) ListResumeFiles(ctx context.Context, q ResumeFileQuery) (ListResult[*models.ResumeFile], error) {
	jobID, err := parseOptionalID(q.JobID, jobRef)
	if err != nil {
		return ListResult[*models.ResumeFile]{}, err
	}
	candidateID, err := parseOptionalID(q.CandidateID, candidateRef)
	if err != nil {
		return ListResult[*models.ResumeFile]{}, err
	}
	if q.UploadStatus != "" && !oneOf(q.UploadStatus, models.UploadStatuses) {
		return ListResult[*models.ResumeFile]{}, invalidStatus("Invalid upload status")
	}
	files, total, err := s.store.ListResumeFiles(ctx, store.ResumeFileFilter{
		OrganizationID: q.OrganizationID,
		JobID:          jobID,
		CandidateID:    candidateID,
		UploadStatus:   q.UploadStatus,
		Page:           q.Page,
	})
	if err != nil {
		return ListResult[*models.ResumeFile]{}, err
	}
	return newListResult(files, total, q.Page), nil
}

func (s *Service) GetResumeFile(ctx context.Context, actor Actor, id string) (*models.ResumeFile, error) {
	return s.findResumeFile(ctx, actor.OrganizationID, id)
}

// DeleteResumeFile soft-deletes an unreferenced file, marks its upload failed and
// re-points the owning candidate at its next newest file.
func (s *Service) DeleteResumeFile(ctx context.Context, actor Actor, id string) error {
	f, err := s.findResumeFile(ctx, actor.OrganizationID, id)
	if err != nil {
		return err
	}
	linked, err := s.CountResumeFileLinkedRecords(ctx, f.ID)
	if err != nil {
		return err
	}
	conflict := newError(KindRelationshipConflict, "RESUME_FILE_RELATIONSHIP_CONFLICT",
		"Cannot delete resume file while screening records still reference it")
	if linked.Total() > 0 {
		s.recorder.DeleteBlocked("resume_file")
		return conflict
	}

	if err := s.store.SoftDeleteResumeFile(ctx, f.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			s.recorder.DeleteBlocked("resume_file")
			return conflict
		case errors.Is(err, store.ErrNotFound):
			return resumeFileRef.notFound()
		}
		return err
	}

	if err := s.syncCandidateLatestResumeFile(ctx, f.CandidateID); err != nil {
		return fmt.Errorf("sync candidate latest resume: %w", err)
	}

	s.audit(ctx, actor, models.AuditModuleResumeUpload, "resume_file", f.ID, "resume_file.deleted", map[string]any{
		"candidateId": f.CandidateID,
		"jobId":       f.JobID,
	})
	return nil
}
