package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

// --- Screening Runs ---

const runColumns = `id, organization_id, job_id, created_by, run_type, rerun_of_run_id, triggered_by, status, started_at,
	finished_at, resume_file_ids, candidate_ids, filters, ai_provider, model_name, prompt_version,
	config_snapshot, totals, queue_meta, error_summary, created_at, updated_at`

func scanRun(row pgx.Row) (*models.ScreeningRun, error) {
	var r models.ScreeningRun
	err := row.Scan(&r.ID, &r.OrganizationID, &r.JobID, &r.CreatedBy, &r.RunType, &r.RerunOfRunID, &r.TriggeredBy,
		&r.Status, &r.StartedAt, &r.FinishedAt, &r.Input.ResumeFileIDs, &r.Input.CandidateIDs,
		&r.Filters, &r.AIProvider, &r.ModelName, &r.PromptVersion, &r.ConfigSnapshot, &r.Totals,
		&r.QueueMeta, &r.ErrorSummary, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) CreateScreeningRun(ctx context.Context, r *models.ScreeningRun) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockLive(ctx, tx, TableJobs, r.JobID); err != nil {
		return err
	}
	if err := lockLive(ctx, tx, TableResumeFiles, r.Input.ResumeFileIDs...); err != nil {
		return err
	}
	if err := lockLive(ctx, tx, TableCandidates, r.Input.CandidateIDs...); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO screening_runs (`+runColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		r.ID, r.OrganizationID, r.JobID, r.CreatedBy, r.RunType, r.RerunOfRunID, r.TriggeredBy, r.Status, r.StartedAt,
		r.FinishedAt, emptyIfNil(r.Input.ResumeFileIDs), emptyIfNil(r.Input.CandidateIDs), r.Filters,
		r.AIProvider, r.ModelName, r.PromptVersion, r.ConfigSnapshot, r.Totals, r.QueueMeta,
		r.ErrorSummary, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create screening run: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetScreeningRun(ctx context.Context, id uuid.UUID) (*models.ScreeningRun, error) {
	r, err := scanRun(s.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM screening_runs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get screening run: %w", err)
	}
	return r, nil
}

func runConditions(filter RunFilter) *conditions {
	c := &conditions{}
	if filter.OrganizationID != nil {
		c.add("organization_id = $%d", *filter.OrganizationID)
	}
	if filter.JobID != nil {
		c.add("job_id = $%d", *filter.JobID)
	}
	if filter.Status != "" {
		c.add("status = $%d", filter.Status)
	}
	if filter.ResumeFileID != nil {
		c.add("$%d = ANY(resume_file_ids)", *filter.ResumeFileID)
	}
	if filter.CandidateID != nil {
		c.add("$%d = ANY(candidate_ids)", *filter.CandidateID)
	}
	return c
}

func (s *PostgresStore) ListScreeningRuns(ctx context.Context, filter RunFilter) ([]*models.ScreeningRun, int, error) {
	total, err := s.CountScreeningRuns(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	c := runConditions(filter)
	where := c.where()
	rows, err := s.pool.Query(ctx,
		`SELECT `+runColumns+` FROM screening_runs`+where+` ORDER BY created_at DESC`+c.pageArgs(filter.Page),
		c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list screening runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ScreeningRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan screening run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, total, rows.Err()
}

func (s *PostgresStore) CountScreeningRuns(ctx context.Context, filter RunFilter) (int, error) {
	c := runConditions(filter)
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM screening_runs"+c.where(), c.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count screening runs: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) UpdateScreeningRun(ctx context.Context, r *models.ScreeningRun, expectedStatus string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE screening_runs SET status = $3, started_at = $4, finished_at = $5, totals = $6,
		   queue_meta = $7, error_summary = $8, updated_at = $9
		 WHERE id = $1 AND status = $2`,
		r.ID, expectedStatus, r.Status, r.StartedAt, r.FinishedAt, r.Totals, r.QueueMeta,
		r.ErrorSummary, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update screening run: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM screening_runs WHERE id = $1)`, r.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check screening run: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrConflict
}

// --- Screening Results ---

const resultColumns = `id, organization_id, screening_run_id, job_id, candidate_id, resume_file_id,
	matching_score, status_badge, matched_skills, missing_skills, ai_summary, explanation,
	is_latest_for_job_candidate, created_at, updated_at`

func scanResult(row pgx.Row) (*models.ScreeningResult, error) {
	var r models.ScreeningResult
	err := row.Scan(&r.ID, &r.OrganizationID, &r.ScreeningRunID, &r.JobID, &r.CandidateID,
		&r.ResumeFileID, &r.MatchingScore, &r.StatusBadge, &r.MatchedSkills, &r.MissingSkills,
		&r.AISummary, &r.Explanation, &r.IsLatestForJobCandidate, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) CreateScreeningResult(ctx context.Context, r *models.ScreeningResult) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockLive(ctx, tx, TableJobs, r.JobID); err != nil {
		return err
	}
	if err := lockLive(ctx, tx, TableCandidates, r.CandidateID); err != nil {
		return err
	}
	if r.ResumeFileID != nil {
		if err := lockLive(ctx, tx, TableResumeFiles, *r.ResumeFileID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE screening_results SET is_latest_for_job_candidate = FALSE, updated_at = NOW()
		 WHERE job_id = $1 AND candidate_id = $2 AND is_latest_for_job_candidate`,
		r.JobID, r.CandidateID)
	if err != nil {
		return fmt.Errorf("clear latest screening result: %w", err)
	}

	r.IsLatestForJobCandidate = true
	_, err = tx.Exec(ctx,
		`INSERT INTO screening_results (`+resultColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		r.ID, r.OrganizationID, r.ScreeningRunID, r.JobID, r.CandidateID, r.ResumeFileID,
		r.MatchingScore, r.StatusBadge, emptyIfNil(r.MatchedSkills), emptyIfNil(r.MissingSkills),
		r.AISummary, r.Explanation, r.IsLatestForJobCandidate, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create screening result: %w", err)
	}
	return tx.Commit(ctx)
}

func resultConditions(filter ResultFilter) *conditions {
	c := &conditions{}
	if filter.JobID != nil {
		c.add("job_id = $%d", *filter.JobID)
	}
	if filter.CandidateID != nil {
		c.add("candidate_id = $%d", *filter.CandidateID)
	}
	if filter.ResumeFileID != nil {
		c.add("resume_file_id = $%d", *filter.ResumeFileID)
	}
	if filter.RunID != nil {
		c.add("screening_run_id = $%d", *filter.RunID)
	}
	if filter.LatestOnly {
		c.raw("is_latest_for_job_candidate")
	}
	return c
}

func (s *PostgresStore) ListScreeningResults(ctx context.Context, filter ResultFilter) ([]*models.ScreeningResult, int, error) {
	total, err := s.CountScreeningResults(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	c := resultConditions(filter)
	where := c.where()
	rows, err := s.pool.Query(ctx,
		`SELECT `+resultColumns+` FROM screening_results`+where+
			` ORDER BY matching_score DESC, created_at DESC`+c.pageArgs(filter.Page),
		c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list screening results: %w", err)
	}
	defer rows.Close()

	var results []*models.ScreeningResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan screening result: %w", err)
		}
		results = append(results, r)
	}
	return results, total, rows.Err()
}

func (s *PostgresStore) CountScreeningResults(ctx context.Context, filter ResultFilter) (int, error) {
	c := resultConditions(filter)
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM screening_results"+c.where(), c.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count screening results: %w", err)
	}
	return total, nil
}

// --- Candidate Actions ---

func (s *PostgresStore) CreateCandidateAction(ctx context.Context, a *models.CandidateAction) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO candidate_actions (id, job_id, candidate_id, acted_by, action_type, stage, note, tags,
		   is_ai_suggestion, source_screening_result_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.JobID, a.CandidateID, a.ActedBy, a.ActionType, a.Stage, a.Note, emptyIfNil(a.Tags),
		a.IsAISuggestion, a.SourceScreeningResultID, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create candidate action: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCandidateActions(ctx context.Context, jobID, candidateID uuid.UUID) ([]*models.CandidateAction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, candidate_id, acted_by, action_type, stage, note, tags, is_ai_suggestion,
		   source_screening_result_id, created_at
		 FROM candidate_actions WHERE job_id = $1 AND candidate_id = $2
		 ORDER BY created_at DESC`, jobID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list candidate actions: %w", err)
	}
	defer rows.Close()

	var actions []*models.CandidateAction
	for rows.Next() {
		var a models.CandidateAction
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.ActedBy, &a.ActionType, &a.Stage,
			&a.Note, &a.Tags, &a.IsAISuggestion, &a.SourceScreeningResultID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan candidate action: %w", err)
		}
		actions = append(actions, &a)
	}
	return actions, rows.Err()
}
