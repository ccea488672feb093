package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

const candidateColumns = `id, organization_id, full_name, normalized_full_name, email, phone, location,
	current_title, current_company, total_years_experience, summary, profile_status, tags, skills,
	source, latest_resume_file_id, last_screened_at, is_deleted, deleted_at, created_at, updated_at`

func scanCandidate(row pgx.Row) (*models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(&c.ID, &c.OrganizationID, &c.FullName, &c.NormalizedFullName, &c.Email, &c.Phone,
		&c.Location, &c.CurrentTitle, &c.CurrentCompany, &c.TotalYearsExperience, &c.Summary,
		&c.ProfileStatus, &c.Tags, &c.Skills, &c.Source, &c.LatestResumeFileID, &c.LastScreenedAt,
		&c.IsDeleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO candidates (`+candidateColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		c.ID, c.OrganizationID, c.FullName, c.NormalizedFullName, c.Email, c.Phone, c.Location,
		c.CurrentTitle, c.CurrentCompany, c.TotalYearsExperience, c.Summary, c.ProfileStatus,
		emptyIfNil(c.Tags), c.Skills, c.Source, c.LatestResumeFileID, c.LastScreenedAt,
		c.IsDeleted, c.DeletedAt, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetCandidate(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	c, err := scanCandidate(s.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1 AND NOT is_deleted`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListCandidates(ctx context.Context, filter CandidateFilter) ([]*models.Candidate, int, error) {
	c := &conditions{}
	c.raw("NOT is_deleted")
	if filter.OrganizationID != nil {
		c.add("organization_id = $%d", *filter.OrganizationID)
	}
	if filter.ProfileStatus != "" {
		c.add("profile_status = $%d", filter.ProfileStatus)
	}
	if filter.Search != "" {
		c.add("(full_name ILIKE $%[1]d OR email ILIKE $%[1]d OR current_title ILIKE $%[1]d)", likePattern(filter.Search))
	}
	where := c.where()

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM candidates"+where, c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count candidates: %w", err)
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates` + where + ` ORDER BY created_at DESC` + c.pageArgs(filter.Page)
	rows, err := s.pool.Query(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []*models.Candidate
	for rows.Next() {
		cand, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, cand)
	}
	return out, total, rows.Err()
}

func (s *PostgresStore) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE candidates SET full_name = $2, normalized_full_name = $3, email = $4, phone = $5,
		   location = $6, current_title = $7, current_company = $8, total_years_experience = $9,
		   summary = $10, profile_status = $11, tags = $12, skills = $13, last_screened_at = $14,
		   updated_at = $15
		 WHERE id = $1 AND NOT is_deleted`,
		c.ID, c.FullName, c.NormalizedFullName, c.Email, c.Phone, c.Location, c.CurrentTitle,
		c.CurrentCompany, c.TotalYearsExperience, c.Summary, c.ProfileStatus, emptyIfNil(c.Tags),
		c.Skills, c.LastScreenedAt, c.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("update candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SoftDeleteCandidate(ctx context.Context, id uuid.UUID) error {
	return s.guardedSoftDelete(ctx, TableCandidates, id,
		`UPDATE candidates SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND NOT is_deleted
		   AND NOT EXISTS (SELECT 1 FROM resume_files WHERE candidate_id = $1 AND NOT is_deleted)
		   AND NOT EXISTS (SELECT 1 FROM screening_results WHERE candidate_id = $1)
		   AND NOT EXISTS (SELECT 1 FROM screening_runs WHERE $1 = ANY(candidate_ids))`)
}

func (s *PostgresStore) SetCandidateLatestResume(ctx context.Context, candidateID uuid.UUID, resumeFileID, jobID *uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE candidates SET latest_resume_file_id = $2,
		   source = jsonb_set(source, '{jobId}', COALESCE(to_jsonb($3::uuid), 'null'::jsonb)),
		   updated_at = NOW()
		 WHERE id = $1`,
		candidateID, resumeFileID, jobID)
	if err != nil {
		return fmt.Errorf("set candidate latest resume: %w", err)
	}
	return nil
}
