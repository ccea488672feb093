package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/kiranshivaraju/hirescreen/internal/api/middleware"
	"github.com/kiranshivaraju/hirescreen/internal/cache"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	ErrorCode string            `json:"errorCode"`
	Details   map[string]string `json:"details"`
	Data      json.RawMessage   `json:"data"`
}

type testServer struct {
	router http.Handler
	store  *store.MemoryStore
	user   *models.User
	header http.Header
}

// newTestServer mounts every handler on a chi router backed by the in-memory
// store, with the request user fixed to a single recruiter. Requests carrying
// X-Outsider act for a recruiter in another organization.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := store.NewMemoryStore()
	var mu sync.Mutex
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
	svc := recruit.NewService(st, recruit.WithCache(cache.NewMemoryCache()), recruit.WithClock(clock))
	org, otherOrg := uuid.New(), uuid.New()
	user := &models.User{ID: uuid.New(), OrganizationID: &org, FullName: "Rita Recruiter", Email: "rita@example.com", Role: "recruiter"}
	outsider := &models.User{ID: uuid.New(), OrganizationID: &otherOrg, FullName: "Otto Outsider", Email: "otto@example.com", Role: "recruiter"}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("X-Anonymous") != "" {
				next.ServeHTTP(w, req)
				return
			}
			if req.Header.Get("X-Outsider") != "" {
				next.ServeHTTP(w, req.WithContext(mw.WithUser(req.Context(), outsider)))
				return
			}
			next.ServeHTTP(w, req.WithContext(mw.WithUser(req.Context(), user)))
		})
	})
	r.Get("/auth/me", Me)
	r.Post("/jobs", NewCreateJobHandler(svc))
	r.Get("/jobs", NewListJobsHandler(svc))
	r.Get("/jobs/{id}", NewGetJobHandler(svc))
	r.Patch("/jobs/{id}", NewUpdateJobHandler(svc))
	r.Delete("/jobs/{id}", NewDeleteJobHandler(svc))
	r.Post("/candidates", NewCreateCandidateHandler(svc))
	r.Get("/candidates", NewListCandidatesHandler(svc))
	r.Get("/candidates/{id}", NewGetCandidateHandler(svc))
	r.Patch("/candidates/{id}", NewUpdateCandidateHandler(svc))
	r.Delete("/candidates/{id}", NewDeleteCandidateHandler(svc))
	r.Post("/resume-files", NewRegisterResumeFilesHandler(svc))
	r.Get("/resume-files", NewListResumeFilesHandler(svc))
	r.Get("/resume-files/{id}", NewGetResumeFileHandler(svc))
	r.Delete("/resume-files/{id}", NewDeleteResumeFileHandler(svc))
	r.Post("/screening-runs", NewCreateScreeningRunHandler(svc))
	r.Get("/screening-runs", NewListScreeningRunsHandler(svc))
	r.Get("/screening-runs/{id}", NewGetScreeningRunHandler(svc))
	r.Get("/screening-runs/{id}/status", NewGetScreeningRunStatusHandler(svc))
	r.Patch("/screening-runs/{id}/status", NewUpdateScreeningRunStatusHandler(svc))
	r.Post("/screening-results", NewRecordScreeningResultHandler(svc))
	r.Get("/screening-results", NewListScreeningResultsHandler(svc))
	r.Post("/candidate-actions", NewCreateCandidateActionHandler(svc))
	r.Get("/candidate-actions", NewListCandidateActionsHandler(svc))
	r.Post("/admin/keys", NewCreateKeyHandler(st))
	r.Get("/admin/keys", NewListKeysHandler(st))
	r.Delete("/admin/keys/{keyID}", NewRevokeKeyHandler(st))

	return &testServer{router: r, store: st, user: user}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range s.header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

// asOutsider returns a view of s whose requests come from another organization.
func (s *testServer) asOutsider() *testServer {
	o := *s
	o.header = http.Header{"X-Outsider": {"1"}}
	return &o
}

// mustDo issues a request and requires the given status.
func (s *testServer) mustDo(t *testing.T, method, path string, body any, want int) envelope {
	t.Helper()
	rec, env := s.do(t, method, path, body)
	require.Equal(t, want, rec.Code, rec.Body.String())
	return env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type listData[T any] struct {
	Items      []T `json:"items"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

func (s *testServer) createJob(t *testing.T, title string) models.Job {
	t.Helper()
	env := s.mustDo(t, http.MethodPost, "/jobs", map[string]any{
		"title":  title,
		"jdText": "Build and run backend services.",
		"status": "open",
	}, http.StatusCreated)
	return decodeData[models.Job](t, env)
}

func fileDescriptor(name string) map[string]any {
	return map[string]any{
		"originalFileName": name,
		"mimeType":         "application/pdf",
		"sizeBytes":        2048,
		"storage": map[string]any{
			"provider":  "s3",
			"pathOrKey": "resumes/" + name,
		},
	}
}

func (s *testServer) uploadResumes(t *testing.T, jobID uuid.UUID, names ...string) []models.ResumeFile {
	t.Helper()
	files := make([]map[string]any, 0, len(names))
	for _, n := range names {
		files = append(files, fileDescriptor(n))
	}
	env := s.mustDo(t, http.MethodPost, "/resume-files", map[string]any{
		"jobId": jobID.String(),
		"files": files,
	}, http.StatusCreated)
	return decodeData[[]models.ResumeFile](t, env)
}
