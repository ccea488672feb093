package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	mw "github.com/kiranshivaraju/hirescreen/internal/api/middleware"
	"github.com/kiranshivaraju/hirescreen/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	// Instrument wraps every request when set. MetricsHandler is mounted at /metrics.
	Instrument     func(http.Handler) http.Handler
	MetricsHandler http.Handler

	HealthHandler http.HandlerFunc
	MeHandler     http.HandlerFunc

	CreateJob http.HandlerFunc
	ListJobs  http.HandlerFunc
	GetJob    http.HandlerFunc
	UpdateJob http.HandlerFunc
	DeleteJob http.HandlerFunc

	CreateCandidate http.HandlerFunc
	ListCandidates  http.HandlerFunc
	GetCandidate    http.HandlerFunc
	UpdateCandidate http.HandlerFunc
	DeleteCandidate http.HandlerFunc

	RegisterResumeFiles http.HandlerFunc
	ListResumeFiles     http.HandlerFunc
	GetResumeFile       http.HandlerFunc
	DeleteResumeFile    http.HandlerFunc

	CreateScreeningRun       http.HandlerFunc
	ListScreeningRuns        http.HandlerFunc
	GetScreeningRun          http.HandlerFunc
	GetScreeningRunStatus    http.HandlerFunc
	UpdateScreeningRunStatus http.HandlerFunc

	RecordScreeningResult http.HandlerFunc
	ListScreeningResults  http.HandlerFunc

	CreateCandidateAction http.HandlerFunc
	ListCandidateActions  http.HandlerFunc

	CreateKeyHandler http.HandlerFunc
	ListKeysHandler  http.HandlerFunc
	RevokeKeyHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	if deps.Instrument != nil {
		r.Use(deps.Instrument)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "ROUTE_NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	// Public
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Get("/api/v1/auth/me", orNotImplemented(deps.MeHandler))

		r.Post("/api/v1/jobs", orNotImplemented(deps.CreateJob))
		r.Get("/api/v1/jobs", orNotImplemented(deps.ListJobs))
		r.Get("/api/v1/jobs/{id}", orNotImplemented(deps.GetJob))
		r.Patch("/api/v1/jobs/{id}", orNotImplemented(deps.UpdateJob))
		r.Delete("/api/v1/jobs/{id}", orNotImplemented(deps.DeleteJob))

		r.Post("/api/v1/candidates", orNotImplemented(deps.CreateCandidate))
		r.Get("/api/v1/candidates", orNotImplemented(deps.ListCandidates))
		r.Get("/api/v1/candidates/{id}", orNotImplemented(deps.GetCandidate))
		r.Patch("/api/v1/candidates/{id}", orNotImplemented(deps.UpdateCandidate))
		r.Delete("/api/v1/candidates/{id}", orNotImplemented(deps.DeleteCandidate))

		r.Post("/api/v1/resume-files", orNotImplemented(deps.RegisterResumeFiles))
		r.Get("/api/v1/resume-files", orNotImplemented(deps.ListResumeFiles))
		r.Get("/api/v1/resume-files/{id}", orNotImplemented(deps.GetResumeFile))
		r.Delete("/api/v1/resume-files/{id}", orNotImplemented(deps.DeleteResumeFile))

		r.Post("/api/v1/screening-runs", orNotImplemented(deps.CreateScreeningRun))
		r.Get("/api/v1/screening-runs", orNotImplemented(deps.ListScreeningRuns))
		r.Get("/api/v1/screening-runs/{id}", orNotImplemented(deps.GetScreeningRun))
		r.Get("/api/v1/screening-runs/{id}/status", orNotImplemented(deps.GetScreeningRunStatus))
		r.Patch("/api/v1/screening-runs/{id}/status", orNotImplemented(deps.UpdateScreeningRunStatus))

		r.Post("/api/v1/screening-results", orNotImplemented(deps.RecordScreeningResult))
		r.Get("/api/v1/screening-results", orNotImplemented(deps.ListScreeningResults))

		r.Post("/api/v1/candidate-actions", orNotImplemented(deps.CreateCandidateAction))
		r.Get("/api/v1/candidate-actions", orNotImplemented(deps.ListCandidateActions))

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireScope("admin"))

			r.Post("/api/v1/admin/keys", orNotImplemented(deps.CreateKeyHandler))
			r.Get("/api/v1/admin/keys", orNotImplemented(deps.ListKeysHandler))
			r.Delete("/api/v1/admin/keys/{keyID}", orNotImplemented(deps.RevokeKeyHandler))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
