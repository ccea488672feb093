// Package recruit holds the recruitment domain rules: reference validation,
// the screening-run lifecycle, delete guards and the denormalized pointers
// they keep consistent.
package recruit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/cache"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

const defaultRunStatusTTL = 30 * time.Minute

// Actor identifies who is making a request. A zero UserID means unauthenticated.
type Actor struct {
	UserID         uuid.UUID
	OrganizationID *uuid.UUID
}

func (a Actor) authenticated() bool {
	return a.UserID != uuid.Nil
}

// Recorder receives domain events for instrumentation.
type Recorder interface {
	RunCreated(runType string)
	RunStatusChanged(from, to string)
	DeleteBlocked(entity string)
}

type nopRecorder struct{}

func (nopRecorder) RunCreated(string)              {}
func (nopRecorder) RunStatusChanged(string, string) {}
func (nopRecorder) DeleteBlocked(string)            {}

// Service implements the recruitment use cases on top of a Store.
type Service struct {
	store        store.Store
	cache        cache.Cache
	logger       *slog.Logger
	recorder     Recorder
	now          func() time.Time
	runStatusTTL time.Duration
}

type Option func(*Service)

// WithCache enables the screening-run status cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRunStatusTTL(ttl time.Duration) Option {
	return func(s *Service) { s.runStatusTTL = ttl }
}

func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:        st,
		logger:       slog.Default(),
		recorder:     nopRecorder{},
		now:          time.Now,
		runStatusTTL: defaultRunStatusTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// ListResult is one page of a filtered listing.
type ListResult[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int
}

// TotalPages is at least 1 so empty listings still report a page.
func (r ListResult[T]) TotalPages() int {
	if r.Total == 0 || r.Limit == 0 {
		return 1
	}
	return (r.Total + r.Limit - 1) / r.Limit
}

func newListResult[T any](items []T, total int, p store.Page) ListResult[T] {
	p = p.Normalize()
	if items == nil {
		items = []T{}
	}
	return ListResult[T]{Items: items, Page: p.Page, Limit: p.Limit, Total: total}
}

// audit appends an audit entry. Failures are logged and never fail the caller.
func (s *Service) audit(ctx context.Context, actor Actor, module, entityType string, entityID uuid.UUID, action string, metadata map[string]any) {
	entry := &models.AuditLog{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Module:     module,
		Severity:   "info",
		Metadata:   metadata,
		CreatedAt:  s.clock(),
	}
	if actor.authenticated() {
		id := actor.UserID
		entry.ActorID = &id
	}
	if err := s.store.AppendAuditLog(ctx, entry); err != nil {
		s.logger.Warn("audit append failed",
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
	}
}
