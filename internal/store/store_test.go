package store_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// migrationsDir returns the absolute path to the migrations directory.
func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "migrations")
}

// setupTestDB spins up a Postgres container, runs migrations, and returns a pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("hirescreen_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	err = store.RunMigrations(connStr, migrationsDir())
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return pool
}

// backends returns every Store implementation the suite runs against.
// The Postgres backend is skipped in -short mode.
func backends(t *testing.T) map[string]func(t *testing.T) store.Store {
	t.Helper()
	b := map[string]func(t *testing.T) store.Store{
		"memory": func(t *testing.T) store.Store { return store.NewMemoryStore() },
	}
	if !testing.Short() {
		b["postgres"] = func(t *testing.T) store.Store { return store.NewPostgresStore(setupTestDB(t)) }
	}
	return b
}

type fixture struct {
	s    store.Store
	ctx  context.Context
	user *models.User
	now  time.Time
}

func newFixture(t *testing.T, s store.Store) *fixture {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &models.User{
		ID:        uuid.New(),
		FullName:  "Riley Recruiter",
		Email:     uuid.NewString()[:8] + "@example.com",
		Role:      "recruiter",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return &fixture{s: s, ctx: context.Background(), user: user, now: now}
}

func (f *fixture) job(t *testing.T) *models.Job {
	t.Helper()
	j := &models.Job{
		ID:              uuid.New(),
		CreatedBy:       f.user.ID,
		Title:           "Backend Engineer",
		SeniorityLevel:  "mid",
		EmploymentType:  "full-time",
		JDText:          "Go and Postgres",
		ScreeningConfig: models.DefaultScreeningConfig(),
		Status:          models.JobStatusDraft,
		CreatedAt:       f.now,
		UpdatedAt:       f.now,
	}
	require.NoError(t, f.s.CreateJob(f.ctx, j))
	return j
}

func (f *fixture) candidate(t *testing.T, email string) *models.Candidate {
	t.Helper()
	c := &models.Candidate{
		ID:                 uuid.New(),
		FullName:           "Sam Doe",
		NormalizedFullName: "sam doe",
		ProfileStatus:      models.ProfileStatusPendingParse,
		Source:             models.CandidateSource{Type: models.CandidateSourceManual},
		CreatedAt:          f.now,
		UpdatedAt:          f.now,
	}
	if email != "" {
		c.Email = &email
	}
	require.NoError(t, f.s.CreateCandidate(f.ctx, c))
	return c
}

func (f *fixture) resumeFile(t *testing.T, candidateID uuid.UUID, jobID *uuid.UUID, created time.Time) *models.ResumeFile {
	t.Helper()
	rf := &models.ResumeFile{
		ID:               uuid.New(),
		CandidateID:      candidateID,
		JobID:            jobID,
		OriginalFileName: "sam_doe.pdf",
		MimeType:         "application/pdf",
		SizeBytes:        1024,
		Storage:          models.FileStorage{Provider: "s3", PathOrKey: "resumes/sam_doe.pdf"},
		UploadStatus:     models.UploadStatusUploaded,
		ParseStatus:      models.ParseStatusPending,
		UploadedBy:       f.user.ID,
		CreatedAt:        created,
		UpdatedAt:        created,
	}
	require.NoError(t, f.s.CreateResumeFile(f.ctx, rf))
	return rf
}

func (f *fixture) run(t *testing.T, jobID uuid.UUID, input models.RunInput) *models.ScreeningRun {
	t.Helper()
	r := &models.ScreeningRun{
		ID:          uuid.New(),
		JobID:       jobID,
		CreatedBy:   f.user.ID,
		RunType:     models.RunTypeInitial,
		TriggeredBy: models.TriggeredByManual,
		Status:      models.RunStatusQueued,
		Input:       input,
		AIProvider:  "openai",
		Totals:      models.RunTotals{Total: len(input.CandidateIDs)},
		QueueMeta:   models.QueueMeta{BatchSize: 20, TotalBatches: 1},
		CreatedAt:   f.now,
		UpdatedAt:   f.now,
	}
	require.NoError(t, f.s.CreateScreeningRun(f.ctx, r))
	return r
}

func (f *fixture) result(jobID, candidateID, runID uuid.UUID, score float64) *models.ScreeningResult {
	return &models.ScreeningResult{
		ID:             uuid.New(),
		ScreeningRunID: runID,
		JobID:          jobID,
		CandidateID:    candidateID,
		MatchingScore:  score,
		StatusBadge:    "potential",
		CreatedAt:      f.now,
		UpdatedAt:      f.now,
	}
}

// --- Jobs ---

func TestJobs_CRUD(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)

			got, err := f.s.GetJob(f.ctx, job.ID)
			require.NoError(t, err)
			assert.Equal(t, "Backend Engineer", got.Title)
			assert.InDelta(t, 0.45, got.ScreeningConfig.RequiredSkillWeight, 1e-9)

			got.Status = models.JobStatusOpen
			got.OpenedAt = &f.now
			require.NoError(t, f.s.UpdateJob(f.ctx, got))

			jobs, total, err := f.s.ListJobs(f.ctx, store.JobFilter{Status: models.JobStatusOpen})
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			require.Len(t, jobs, 1)
			assert.Equal(t, job.ID, jobs[0].ID)

			_, total, err = f.s.ListJobs(f.ctx, store.JobFilter{Search: "postgres"})
			require.NoError(t, err)
			assert.Equal(t, 1, total)

			require.NoError(t, f.s.SoftDeleteJob(f.ctx, job.ID))
			_, err = f.s.GetJob(f.ctx, job.ID)
			assert.ErrorIs(t, err, store.ErrNotFound)
			assert.ErrorIs(t, f.s.SoftDeleteJob(f.ctx, job.ID), store.ErrNotFound)
		})
	}
}

func TestJobs_DuplicateJobCode(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			code := "ENG-1"
			a := f.job(t)
			a.JobCode = &code
			require.NoError(t, f.s.UpdateJob(f.ctx, a))

			b := f.job(t)
			b.JobCode = &code
			assert.ErrorIs(t, f.s.UpdateJob(f.ctx, b), store.ErrDuplicateKey)
		})
	}
}

func TestSoftDeleteJob_BlockedByLinks(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))

			withFile := f.job(t)
			c := f.candidate(t, "")
			f.resumeFile(t, c.ID, &withFile.ID, f.now)
			assert.ErrorIs(t, f.s.SoftDeleteJob(f.ctx, withFile.ID), store.ErrConflict)

			withRun := f.job(t)
			f.run(t, withRun.ID, models.RunInput{CandidateIDs: []uuid.UUID{c.ID}})
			assert.ErrorIs(t, f.s.SoftDeleteJob(f.ctx, withRun.ID), store.ErrConflict)

			_, err := f.s.GetJob(f.ctx, withFile.ID)
			assert.NoError(t, err, "blocked delete must leave the job live")
		})
	}
}

func TestDependentWrites_RejectDeletedParents(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			gone := f.candidate(t, "")
			require.NoError(t, f.s.SoftDeleteJob(f.ctx, job.ID))
			require.NoError(t, f.s.SoftDeleteCandidate(f.ctx, gone.ID))

			live := f.candidate(t, "")
			err := f.s.CreateResumeFile(f.ctx, &models.ResumeFile{
				ID:               uuid.New(),
				CandidateID:      live.ID,
				JobID:            &job.ID,
				OriginalFileName: "late.pdf",
				MimeType:         "application/pdf",
				Storage:          models.FileStorage{Provider: "s3", PathOrKey: "resumes/late.pdf"},
				UploadStatus:     models.UploadStatusUploaded,
				ParseStatus:      models.ParseStatusPending,
				UploadedBy:       f.user.ID,
				CreatedAt:        f.now,
				UpdatedAt:        f.now,
			})
			require.ErrorIs(t, err, store.ErrNotFound)
			var missing *store.MissingRowError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, store.TableJobs, missing.Table)
			assert.Equal(t, job.ID, missing.ID)

			openJob := f.job(t)
			err = f.s.CreateScreeningRun(f.ctx, &models.ScreeningRun{
				ID:          uuid.New(),
				JobID:       openJob.ID,
				CreatedBy:   f.user.ID,
				RunType:     models.RunTypeInitial,
				TriggeredBy: models.TriggeredByManual,
				Status:      models.RunStatusQueued,
				Input:       models.RunInput{CandidateIDs: []uuid.UUID{live.ID, gone.ID}},
				AIProvider:  "openai",
				CreatedAt:   f.now,
				UpdatedAt:   f.now,
			})
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, store.TableCandidates, missing.Table)
			assert.Equal(t, gone.ID, missing.ID)

			n, err := f.s.CountScreeningRuns(f.ctx, store.RunFilter{JobID: &openJob.ID})
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestSoftDeleteJob_WaitsForUncommittedDependent(t *testing.T) {
	if testing.Short() {
		t.Skip("requires a Postgres container")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	f := newFixture(t, s)
	job := f.job(t)
	c := f.candidate(t, "")

	// A dependent insert in flight: parent share-locked, child row not yet committed.
	tx, err := pool.Begin(f.ctx)
	require.NoError(t, err)
	defer tx.Rollback(f.ctx)
	_, err = tx.Exec(f.ctx, `SELECT id FROM jobs WHERE id = $1 AND NOT is_deleted FOR SHARE`, job.ID)
	require.NoError(t, err)
	_, err = tx.Exec(f.ctx,
		`INSERT INTO resume_files (id, candidate_id, job_id, original_file_name, mime_type, size_bytes, storage, uploaded_by)
		 VALUES ($1, $2, $3, 'inflight.pdf', 'application/pdf', 1, '{}', $4)`,
		uuid.New(), c.ID, job.ID, f.user.ID)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.SoftDeleteJob(f.ctx, job.ID) }()

	select {
	case err := <-done:
		t.Fatalf("soft delete finished before the dependent insert committed: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, tx.Commit(f.ctx))
	assert.ErrorIs(t, <-done, store.ErrConflict)

	_, err = s.GetJob(f.ctx, job.ID)
	assert.NoError(t, err)
}

// --- Candidates ---

func TestCandidates_EmailUniqueAmongLiveRows(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			first := f.candidate(t, "sam@example.com")

			dup := &models.Candidate{
				ID: uuid.New(), FullName: "Other", NormalizedFullName: "other",
				Email:         first.Email,
				ProfileStatus: models.ProfileStatusPendingParse,
				Source:        models.CandidateSource{Type: models.CandidateSourceManual},
				CreatedAt:     f.now, UpdatedAt: f.now,
			}
			assert.ErrorIs(t, f.s.CreateCandidate(f.ctx, dup), store.ErrDuplicateKey)

			require.NoError(t, f.s.SoftDeleteCandidate(f.ctx, first.ID))
			assert.NoError(t, f.s.CreateCandidate(f.ctx, dup))
		})
	}
}

func TestSetCandidateLatestResume(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			c := f.candidate(t, "")
			rf := f.resumeFile(t, c.ID, &job.ID, f.now)

			require.NoError(t, f.s.SetCandidateLatestResume(f.ctx, c.ID, &rf.ID, &job.ID))
			got, err := f.s.GetCandidate(f.ctx, c.ID)
			require.NoError(t, err)
			require.NotNil(t, got.LatestResumeFileID)
			assert.Equal(t, rf.ID, *got.LatestResumeFileID)
			require.NotNil(t, got.Source.JobID)
			assert.Equal(t, job.ID, *got.Source.JobID)
			assert.Equal(t, models.CandidateSourceManual, got.Source.Type)

			require.NoError(t, f.s.SetCandidateLatestResume(f.ctx, c.ID, nil, nil))
			got, err = f.s.GetCandidate(f.ctx, c.ID)
			require.NoError(t, err)
			assert.Nil(t, got.LatestResumeFileID)
			assert.Nil(t, got.Source.JobID)
		})
	}
}

func TestSoftDeleteCandidate_BlockedByRunInput(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			c := f.candidate(t, "")
			f.run(t, job.ID, models.RunInput{CandidateIDs: []uuid.UUID{c.ID}})

			assert.ErrorIs(t, f.s.SoftDeleteCandidate(f.ctx, c.ID), store.ErrConflict)
		})
	}
}

// --- Resume Files ---

func TestResumeFiles_NewestFirstAndSoftDelete(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			c := f.candidate(t, "")
			older := f.resumeFile(t, c.ID, &job.ID, f.now.Add(-time.Hour))
			newer := f.resumeFile(t, c.ID, nil, f.now)

			files, err := f.s.FindResumeFiles(f.ctx, store.ResumeFileFilter{CandidateID: &c.ID})
			require.NoError(t, err)
			require.Len(t, files, 2)
			assert.Equal(t, newer.ID, files[0].ID)

			n, err := f.s.CountResumeFiles(f.ctx, store.ResumeFileFilter{JobID: &job.ID})
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			require.NoError(t, f.s.SoftDeleteResumeFile(f.ctx, newer.ID))
			files, err = f.s.FindResumeFiles(f.ctx, store.ResumeFileFilter{CandidateID: &c.ID})
			require.NoError(t, err)
			require.Len(t, files, 1)
			assert.Equal(t, older.ID, files[0].ID)

			byID, err := f.s.GetResumeFilesByIDs(f.ctx, []uuid.UUID{older.ID, newer.ID})
			require.NoError(t, err)
			assert.Len(t, byID, 1)
		})
	}
}

func TestSoftDeleteResumeFile_BlockedByRun(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			c := f.candidate(t, "")
			rf := f.resumeFile(t, c.ID, &job.ID, f.now)
			f.run(t, job.ID, models.RunInput{ResumeFileIDs: []uuid.UUID{rf.ID}, CandidateIDs: []uuid.UUID{c.ID}})

			assert.ErrorIs(t, f.s.SoftDeleteResumeFile(f.ctx, rf.ID), store.ErrConflict)
			assert.ErrorIs(t, f.s.SoftDeleteResumeFile(f.ctx, uuid.New()), store.ErrNotFound)
		})
	}
}

// --- Screening Runs ---

func TestScreeningRuns_FilterByInput(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			c := f.candidate(t, "")
			other := f.candidate(t, "")
			run := f.run(t, job.ID, models.RunInput{CandidateIDs: []uuid.UUID{c.ID}})
			f.run(t, job.ID, models.RunInput{CandidateIDs: []uuid.UUID{other.ID}})

			runs, total, err := f.s.ListScreeningRuns(f.ctx, store.RunFilter{CandidateID: &c.ID})
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			require.Len(t, runs, 1)
			assert.Equal(t, run.ID, runs[0].ID)
			assert.Equal(t, []uuid.UUID{c.ID}, runs[0].Input.CandidateIDs)

			n, err := f.s.CountScreeningRuns(f.ctx, store.RunFilter{JobID: &job.ID})
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestUpdateScreeningRun_CompareAndSwap(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			c := f.candidate(t, "")
			run := f.run(t, job.ID, models.RunInput{CandidateIDs: []uuid.UUID{c.ID}})

			run.Status = models.RunStatusRunning
			run.StartedAt = &f.now
			require.NoError(t, f.s.UpdateScreeningRun(f.ctx, run, models.RunStatusQueued))

			// A second writer still expecting queued loses.
			run.Status = models.RunStatusFailed
			assert.ErrorIs(t, f.s.UpdateScreeningRun(f.ctx, run, models.RunStatusQueued), store.ErrConflict)

			got, err := f.s.GetScreeningRun(f.ctx, run.ID)
			require.NoError(t, err)
			assert.Equal(t, models.RunStatusRunning, got.Status)
			require.NotNil(t, got.StartedAt)

			missing := *run
			missing.ID = uuid.New()
			assert.ErrorIs(t, f.s.UpdateScreeningRun(f.ctx, &missing, models.RunStatusQueued), store.ErrNotFound)
		})
	}
}

// --- Screening Results ---

func TestScreeningResults_LatestFlag(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			c := f.candidate(t, "")
			run1 := f.run(t, job.ID, models.RunInput{CandidateIDs: []uuid.UUID{c.ID}})
			run2 := f.run(t, job.ID, models.RunInput{CandidateIDs: []uuid.UUID{c.ID}})

			require.NoError(t, f.s.CreateScreeningResult(f.ctx, f.result(job.ID, c.ID, run1.ID, 90)))
			require.NoError(t, f.s.CreateScreeningResult(f.ctx, f.result(job.ID, c.ID, run2.ID, 60)))

			assert.ErrorIs(t, f.s.CreateScreeningResult(f.ctx, f.result(job.ID, c.ID, run2.ID, 10)), store.ErrDuplicateKey)

			all, total, err := f.s.ListScreeningResults(f.ctx, store.ResultFilter{JobID: &job.ID})
			require.NoError(t, err)
			assert.Equal(t, 2, total)
			require.Len(t, all, 2)
			assert.InDelta(t, 90, all[0].MatchingScore, 1e-9, "results are ordered by score")

			latest, total, err := f.s.ListScreeningResults(f.ctx, store.ResultFilter{JobID: &job.ID, LatestOnly: true})
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			require.Len(t, latest, 1)
			assert.Equal(t, run2.ID, latest[0].ScreeningRunID)

			// Results pin the job and candidate.
			assert.ErrorIs(t, f.s.SoftDeleteCandidate(f.ctx, c.ID), store.ErrConflict)
		})
	}
}

// --- Candidate Actions ---

func TestCandidateActions(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			job := f.job(t)
			c := f.candidate(t, "")
			stage := "interview"

			for i, actionType := range []string{"shortlisted", models.ActionMoveStage} {
				a := &models.CandidateAction{
					ID: uuid.New(), JobID: job.ID, CandidateID: c.ID, ActedBy: f.user.ID,
					ActionType: actionType,
					CreatedAt:  f.now.Add(time.Duration(i) * time.Second),
				}
				if actionType == models.ActionMoveStage {
					a.Stage = &stage
				}
				require.NoError(t, f.s.CreateCandidateAction(f.ctx, a))
			}

			actions, err := f.s.ListCandidateActions(f.ctx, job.ID, c.ID)
			require.NoError(t, err)
			require.Len(t, actions, 2)
			assert.Equal(t, models.ActionMoveStage, actions[0].ActionType)
		})
	}
}

// --- API Keys ---

func TestAPIKey_Lifecycle(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			key := &models.APIKey{
				ID:        uuid.New(),
				UserID:    f.user.ID,
				Name:      "ci",
				KeyHash:   "bcrypt-hash-here",
				KeyPrefix: "hs_abcd",
				Scopes:    []string{"read", "write"},
				CreatedAt: f.now,
				UpdatedAt: f.now,
			}
			require.NoError(t, f.s.CreateAPIKey(f.ctx, key))

			keys, err := f.s.GetAPIKeyByPrefix(f.ctx, "hs_abcd")
			require.NoError(t, err)
			require.Len(t, keys, 1)
			assert.Equal(t, key.ID, keys[0].ID)

			require.NoError(t, f.s.UpdateAPIKeyLastUsed(f.ctx, key.ID))
			keys, err = f.s.ListAPIKeys(f.ctx, f.user.ID)
			require.NoError(t, err)
			require.Len(t, keys, 1)
			assert.NotNil(t, keys[0].LastUsedAt)

			require.NoError(t, f.s.RevokeAPIKey(f.ctx, key.ID, f.user.ID))
			keys, err = f.s.GetAPIKeyByPrefix(f.ctx, "hs_abcd")
			require.NoError(t, err)
			assert.Empty(t, keys)

			assert.ErrorIs(t, f.s.RevokeAPIKey(f.ctx, key.ID, f.user.ID), store.ErrNotFound)
		})
	}
}

func TestAppendAuditLog(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, open(t))
			err := f.s.AppendAuditLog(f.ctx, &models.AuditLog{
				ID:         uuid.New(),
				ActorID:    &f.user.ID,
				EntityType: "job",
				EntityID:   uuid.New(),
				Action:     "job.deleted",
				Module:     models.AuditModuleJobManagement,
				Severity:   "info",
				CreatedAt:  f.now,
			})
			assert.NoError(t, err)
		})
	}
}

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		in         store.Page
		page, lim  int
		wantOffset int
	}{
		{store.Page{}, 1, 20, 0},
		{store.Page{Page: 3, Limit: 10}, 3, 10, 20},
		{store.Page{Page: -2, Limit: 500}, 1, 100, 0},
	}
	for _, tt := range tests {
		got := tt.in.Normalize()
		assert.Equal(t, tt.page, got.Page)
		assert.Equal(t, tt.lim, got.Limit)
		assert.Equal(t, tt.wantOffset, tt.in.Offset())
	}
}
