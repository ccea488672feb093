package recruit_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/cache"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"github.com/stretchr/testify/require"
)

// stepClock advances one second per reading so creation order is observable.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recorded struct {
	mu          sync.Mutex
	created     []string
	transitions []string
	blocked     []string
}

func (r *recorded) RunCreated(runType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, runType)
}

func (r *recorded) RunStatusChanged(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, from+"->"+to)
}

func (r *recorded) DeleteBlocked(entity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocked = append(r.blocked, entity)
}

type env struct {
	ctx      context.Context
	svc      *recruit.Service
	store    *store.MemoryStore
	cache    *cache.MemoryCache
	recorder *recorded
	actor    recruit.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := store.NewMemoryStore()
	c := cache.NewMemoryCache()
	rec := &recorded{}
	clock := &stepClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	return &env{
		ctx:      context.Background(),
		svc:      recruit.NewService(st, recruit.WithCache(c), recruit.WithRecorder(rec), recruit.WithClock(clock.Now)),
		store:    st,
		cache:    c,
		recorder: rec,
		actor:    recruit.Actor{UserID: uuid.New()},
	}
}

func (e *env) job(t *testing.T) *models.Job {
	t.Helper()
	job, err := e.svc.CreateJob(e.ctx, e.actor, recruit.JobInput{Title: "Backend Engineer", JDText: "Go services"})
	require.NoError(t, err)
	return job
}

func (e *env) candidate(t *testing.T, name string) *models.Candidate {
	t.Helper()
	c, err := e.svc.CreateCandidate(e.ctx, e.actor, recruit.CandidateFields{FullName: &name})
	require.NoError(t, err)
	return c
}

func descriptor(name string) recruit.ResumeFileDescriptor {
	return recruit.ResumeFileDescriptor{
		OriginalFileName: name,
		MimeType:         "application/pdf",
		SizeBytes:        2048,
		Storage:          models.FileStorage{Provider: "s3", PathOrKey: "resumes/" + name},
	}
}

// upload registers n files. A nil jobID leaves the files unassociated; a nil candidate
// creates one candidate per file.
func (e *env) upload(t *testing.T, jobID *uuid.UUID, candidate *models.Candidate, n int) []*models.ResumeFile {
	t.Helper()
	in := recruit.RegisterResumeFilesInput{}
	if jobID != nil {
		in.JobID = jobID.String()
	}
	if candidate != nil {
		in.CandidateID = candidate.ID.String()
	}
	for i := range n {
		in.Files = append(in.Files, descriptor(fmt.Sprintf("cand_%d-resume.pdf", i)))
	}
	files, err := e.svc.RegisterResumeFiles(e.ctx, e.actor, in)
	require.NoError(t, err)
	return files
}

func (e *env) run(t *testing.T, jobID uuid.UUID) *models.ScreeningRun {
	t.Helper()
	run, err := e.svc.CreateScreeningRun(e.ctx, e.actor, recruit.CreateRunInput{JobID: jobID.String()})
	require.NoError(t, err)
	return run
}

func ids[T any](items []T, id func(T) uuid.UUID) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it).String())
	}
	return out
}

func fileID(f *models.ResumeFile) uuid.UUID { return f.ID }

func ptr[T any](v T) *T { return &v }

// requireKind asserts err is a domain error of the given kind and code.
func requireKind(t *testing.T, err error, kind recruit.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	de, ok := recruit.AsError(err)
	require.True(t, ok, "expected domain error, got %T: %v", err, err)
	require.Equal(t, kind, de.Kind, "kind (message: %s)", de.Message)
	if code != "" {
		require.Equal(t, code, de.Code)
	}
}
