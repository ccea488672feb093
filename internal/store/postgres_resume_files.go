package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

const resumeFileColumns = `id, organization_id, candidate_id, job_id, original_file_name, mime_type, size_bytes, file_hash,
	storage, upload_status, parse_status, parse_attempts, parse_error, uploaded_by, is_deleted,
	deleted_at, created_at, updated_at`

func scanResumeFile(row pgx.Row) (*models.ResumeFile, error) {
	var f models.ResumeFile
	err := row.Scan(&f.ID, &f.OrganizationID, &f.CandidateID, &f.JobID, &f.OriginalFileName, &f.MimeType, &f.SizeBytes,
		&f.FileHash, &f.Storage, &f.UploadStatus, &f.ParseStatus, &f.ParseAttempts, &f.ParseError,
		&f.UploadedBy, &f.IsDeleted, &f.DeletedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PostgresStore) queryResumeFiles(ctx context.Context, query string, args ...any) ([]*models.ResumeFile, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query resume files: %w", err)
	}
	defer rows.Close()

	var files []*models.ResumeFile
	for rows.Next() {
		f, err := scanResumeFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resume file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (s *PostgresStore) CreateResumeFile(ctx context.Context, f *models.ResumeFile) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockLive(ctx, tx, TableCandidates, f.CandidateID); err != nil {
		return err
	}
	if f.JobID != nil {
		if err := lockLive(ctx, tx, TableJobs, *f.JobID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO resume_files (`+resumeFileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		f.ID, f.OrganizationID, f.CandidateID, f.JobID, f.OriginalFileName, f.MimeType, f.SizeBytes, f.FileHash,
		f.Storage, f.UploadStatus, f.ParseStatus, f.ParseAttempts, f.ParseError, f.UploadedBy,
		f.IsDeleted, f.DeletedAt, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create resume file: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetResumeFile(ctx context.Context, id uuid.UUID) (*models.ResumeFile, error) {
	f, err := scanResumeFile(s.pool.QueryRow(ctx,
		`SELECT `+resumeFileColumns+` FROM resume_files WHERE id = $1 AND NOT is_deleted`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resume file: %w", err)
	}
	return f, nil
}

func (s *PostgresStore) GetResumeFilesByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.ResumeFile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.queryResumeFiles(ctx,
		`SELECT `+resumeFileColumns+` FROM resume_files WHERE id = ANY($1) AND NOT is_deleted`, ids)
}

func resumeFileConditions(filter ResumeFileFilter) *conditions {
	c := &conditions{}
	c.raw("NOT is_deleted")
	if filter.OrganizationID != nil {
		c.add("organization_id = $%d", *filter.OrganizationID)
	}
	if filter.JobID != nil {
		c.add("job_id = $%d", *filter.JobID)
	}
	if filter.CandidateID != nil {
		c.add("candidate_id = $%d", *filter.CandidateID)
	}
	if filter.UploadStatus != "" {
		c.add("upload_status = $%d", filter.UploadStatus)
	}
	return c
}

func (s *PostgresStore) FindResumeFiles(ctx context.Context, filter ResumeFileFilter) ([]*models.ResumeFile, error) {
	c := resumeFileConditions(filter)
	return s.queryResumeFiles(ctx,
		`SELECT `+resumeFileColumns+` FROM resume_files`+c.where()+` ORDER BY created_at DESC, id DESC`, c.args...)
}

func (s *PostgresStore) ListResumeFiles(ctx context.Context, filter ResumeFileFilter) ([]*models.ResumeFile, int, error) {
	total, err := s.CountResumeFiles(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	c := resumeFileConditions(filter)
	where := c.where()
	files, err := s.queryResumeFiles(ctx,
		`SELECT `+resumeFileColumns+` FROM resume_files`+where+` ORDER BY created_at DESC, id DESC`+c.pageArgs(filter.Page),
		c.args...)
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (s *PostgresStore) CountResumeFiles(ctx context.Context, filter ResumeFileFilter) (int, error) {
	c := resumeFileConditions(filter)
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM resume_files"+c.where(), c.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count resume files: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) SoftDeleteResumeFile(ctx context.Context, id uuid.UUID) error {
	return s.guardedSoftDelete(ctx, TableResumeFiles, id,
		`UPDATE resume_files SET is_deleted = TRUE, deleted_at = NOW(), upload_status = 'failed', updated_at = NOW()
		 WHERE id = $1 AND NOT is_deleted
		   AND NOT EXISTS (SELECT 1 FROM screening_results WHERE resume_file_id = $1)
		   AND NOT EXISTS (SELECT 1 FROM screening_runs WHERE $1 = ANY(resume_file_ids))`)
}
