package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

const jobColumns = `id, organization_id, created_by, job_code, title, department, seniority_level,
	employment_type, jd_text, screening_config, stats, status, opened_at, closed_at,
	is_deleted, deleted_at, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(&j.ID, &j.OrganizationID, &j.CreatedBy, &j.JobCode, &j.Title, &j.Department,
		&j.SeniorityLevel, &j.EmploymentType, &j.JDText, &j.ScreeningConfig, &j.Stats, &j.Status,
		&j.OpenedAt, &j.ClosedAt, &j.IsDeleted, &j.DeletedAt, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *PostgresStore) CreateJob(ctx context.Context, job *models.Job) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		job.ID, job.OrganizationID, job.CreatedBy, job.JobCode, job.Title, job.Department,
		job.SeniorityLevel, job.EmploymentType, job.JDText, job.ScreeningConfig, job.Stats, job.Status,
		job.OpenedAt, job.ClosedAt, job.IsDeleted, job.DeletedAt, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND NOT is_deleted`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (s *PostgresStore) ListJobs(ctx context.Context, filter JobFilter) ([]*models.Job, int, error) {
	c := &conditions{}
	c.raw("NOT is_deleted")
	if filter.OrganizationID != nil {
		c.add("organization_id = $%d", *filter.OrganizationID)
	}
	if filter.Status != "" {
		c.add("status = $%d", filter.Status)
	}
	if filter.Department != "" {
		c.add("department = $%d", filter.Department)
	}
	if filter.Search != "" {
		c.add("(title ILIKE $%[1]d OR jd_text ILIKE $%[1]d)", likePattern(filter.Search))
	}
	where := c.where()

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM jobs"+where, c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs` + where + ` ORDER BY created_at DESC` + c.pageArgs(filter.Page)
	rows, err := s.pool.Query(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

func (s *PostgresStore) UpdateJob(ctx context.Context, job *models.Job) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET job_code = $2, title = $3, department = $4, seniority_level = $5,
		   employment_type = $6, jd_text = $7, screening_config = $8, stats = $9, status = $10,
		   opened_at = $11, closed_at = $12, updated_at = $13
		 WHERE id = $1 AND NOT is_deleted`,
		job.ID, job.JobCode, job.Title, job.Department, job.SeniorityLevel, job.EmploymentType,
		job.JDText, job.ScreeningConfig, job.Stats, job.Status, job.OpenedAt, job.ClosedAt, job.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SoftDeleteJob(ctx context.Context, id uuid.UUID) error {
	return s.guardedSoftDelete(ctx, TableJobs, id,
		`UPDATE jobs SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND NOT is_deleted
		   AND NOT EXISTS (SELECT 1 FROM resume_files WHERE job_id = $1 AND NOT is_deleted)
		   AND NOT EXISTS (SELECT 1 FROM screening_results WHERE job_id = $1)
		   AND NOT EXISTS (SELECT 1 FROM screening_runs WHERE job_id = $1)`)
}

// guardedSoftDelete locks the live row FOR UPDATE, then runs the conditional update.
// Dependent inserts hold FOR SHARE on the row until commit (see lockLive), so the
// update's snapshot, taken after the lock is granted, sees every such insert.
func (s *PostgresStore) guardedSoftDelete(ctx context.Context, table string, id uuid.UUID, update string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id = $1 AND NOT is_deleted FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock %s row: %w", table, err)
	}

	tag, err := tx.Exec(ctx, update, id)
	if err != nil {
		return fmt.Errorf("soft delete %s row: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return tx.Commit(ctx)
}

// lockLive takes FOR SHARE locks on the live parent rows a dependent insert points at.
func lockLive(ctx context.Context, tx pgx.Tx, table string, ids ...uuid.UUID) error {
	for _, id := range ids {
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id = $1 AND NOT is_deleted FOR SHARE`, id).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return &MissingRowError{Table: table, ID: id}
		}
		if err != nil {
			return fmt.Errorf("lock %s row: %w", table, err)
		}
	}
	return nil
}
