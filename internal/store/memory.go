package store

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

// MemoryStore is an in-process Store used by unit tests and local tooling.
// Records are kept in insertion order and copied on the way in and out.
type MemoryStore struct {
	mu sync.RWMutex

	orgs       []*models.Organization
	users      []*models.User
	apiKeys    []*models.APIKey
	jobs       []*models.Job
	candidates []*models.Candidate
	files      []*models.ResumeFile
	runs       []*models.ScreeningRun
	results    []*models.ScreeningResult
	actions    []*models.CandidateAction
	audit      []*models.AuditLog
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// AuditLogs returns a copy of every appended audit entry, oldest first.
func (m *MemoryStore) AuditLogs() []models.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AuditLog, 0, len(m.audit))
	for _, e := range m.audit {
		out = append(out, *e)
	}
	return out
}

// --- Organizations & Users ---

func (m *MemoryStore) CreateOrganization(_ context.Context, org *models.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orgs {
		if o.Slug == org.Slug {
			return ErrDuplicateKey
		}
	}
	c := *org
	m.orgs = append(m.orgs, &c)
	return nil
}

func (m *MemoryStore) GetOrganizationBySlug(_ context.Context, slug string) (*models.Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orgs {
		if o.Slug == slug {
			c := *o
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
	}
	c := *user
	m.users = append(m.users, &c)
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.ID == id })
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.Email == email })
}

func (m *MemoryStore) findUser(match func(*models.User) bool) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// --- API Keys ---

func cloneAPIKey(k *models.APIKey) *models.APIKey {
	c := *k
	c.Scopes = slices.Clone(k.Scopes)
	return &c
}

func (m *MemoryStore) GetAPIKeyByPrefix(_ context.Context, prefix string) ([]*models.APIKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.APIKey
	for _, k := range m.apiKeys {
		if k.KeyPrefix == prefix && k.DeletedAt == nil {
			out = append(out, cloneAPIKey(k))
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateAPIKeyLastUsed(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range m.apiKeys {
		if k.ID == id {
			now := time.Now().UTC()
			k.LastUsedAt = &now
			k.UpdatedAt = now
		}
	}
	return nil
}

func (m *MemoryStore) CreateAPIKey(_ context.Context, key *models.APIKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKeys = append(m.apiKeys, cloneAPIKey(key))
	return nil
}

func (m *MemoryStore) ListAPIKeys(_ context.Context, userID uuid.UUID) ([]*models.APIKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.APIKey
	for i := len(m.apiKeys) - 1; i >= 0; i-- {
		k := m.apiKeys[i]
		if k.UserID == userID && k.DeletedAt == nil {
			out = append(out, cloneAPIKey(k))
		}
	}
	return out, nil
}

func (m *MemoryStore) RevokeAPIKey(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range m.apiKeys {
		if k.ID == id && k.UserID == userID && k.DeletedAt == nil {
			now := time.Now().UTC()
			k.DeletedAt = &now
			return nil
		}
	}
	return ErrNotFound
}

// --- Jobs ---

func cloneJob(j *models.Job) *models.Job {
	c := *j
	c.ScreeningConfig.MustHaveSkills = slices.Clone(j.ScreeningConfig.MustHaveSkills)
	return &c
}

func (m *MemoryStore) CreateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.jobCodeTaken(job) {
		return ErrDuplicateKey
	}
	m.jobs = append(m.jobs, cloneJob(job))
	return nil
}

func (m *MemoryStore) jobCodeTaken(job *models.Job) bool {
	if job.JobCode == nil {
		return false
	}
	for _, j := range m.jobs {
		if j.ID != job.ID && j.JobCode != nil && *j.JobCode == *job.JobCode {
			return true
		}
	}
	return false
}

func (m *MemoryStore) liveJob(id uuid.UUID) *models.Job {
	for _, j := range m.jobs {
		if j.ID == id && !j.IsDeleted {
			return j
		}
	}
	return nil
}

func (m *MemoryStore) GetJob(_ context.Context, id uuid.UUID) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j := m.liveJob(id); j != nil {
		return cloneJob(j), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListJobs(_ context.Context, filter JobFilter) ([]*models.Job, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var matched []*models.Job
	for _, j := range newestFirst(m.jobs, func(j *models.Job) time.Time { return j.CreatedAt }) {
		if j.IsDeleted ||
			!sameOrg(filter.OrganizationID, j.OrganizationID) ||
			(filter.Status != "" && j.Status != filter.Status) ||
			(filter.Department != "" && (j.Department == nil || *j.Department != filter.Department)) {
			continue
		}
		if search != "" && !containsFold(j.Title, search) && !containsFold(j.JDText, search) {
			continue
		}
		matched = append(matched, cloneJob(j))
	}
	page, total := paginate(matched, filter.Page)
	return page, total, nil
}

func (m *MemoryStore) UpdateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, j := range m.jobs {
		if j.ID == job.ID && !j.IsDeleted {
			if m.jobCodeTaken(job) {
				return ErrDuplicateKey
			}
			m.jobs[i] = cloneJob(job)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) SoftDeleteJob(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := m.liveJob(id)
	if j == nil {
		return ErrNotFound
	}
	for _, f := range m.files {
		if !f.IsDeleted && f.JobID != nil && *f.JobID == id {
			return ErrConflict
		}
	}
	for _, r := range m.results {
		if r.JobID == id {
			return ErrConflict
		}
	}
	for _, r := range m.runs {
		if r.JobID == id {
			return ErrConflict
		}
	}
	now := time.Now().UTC()
	j.IsDeleted = true
	j.DeletedAt = &now
	j.UpdatedAt = now
	return nil
}

// --- Candidates ---

func cloneCandidate(c *models.Candidate) *models.Candidate {
	out := *c
	out.Tags = slices.Clone(c.Tags)
	out.Skills.Hard = slices.Clone(c.Skills.Hard)
	out.Skills.Soft = slices.Clone(c.Skills.Soft)
	return &out
}

func (m *MemoryStore) emailTaken(c *models.Candidate) bool {
	if c.Email == nil {
		return false
	}
	for _, other := range m.candidates {
		if other.ID != c.ID && !other.IsDeleted && other.Email != nil && *other.Email == *c.Email &&
			sameOrgExact(other.OrganizationID, c.OrganizationID) {
			return true
		}
	}
	return false
}

func (m *MemoryStore) liveCandidate(id uuid.UUID) *models.Candidate {
	for _, c := range m.candidates {
		if c.ID == id && !c.IsDeleted {
			return c
		}
	}
	return nil
}

func (m *MemoryStore) CreateCandidate(_ context.Context, c *models.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(c) {
		return ErrDuplicateKey
	}
	m.candidates = append(m.candidates, cloneCandidate(c))
	return nil
}

func (m *MemoryStore) GetCandidate(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c := m.liveCandidate(id); c != nil {
		return cloneCandidate(c), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListCandidates(_ context.Context, filter CandidateFilter) ([]*models.Candidate, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var matched []*models.Candidate
	for _, c := range newestFirst(m.candidates, func(c *models.Candidate) time.Time { return c.CreatedAt }) {
		if c.IsDeleted || !sameOrg(filter.OrganizationID, c.OrganizationID) ||
			(filter.ProfileStatus != "" && c.ProfileStatus != filter.ProfileStatus) {
			continue
		}
		if search != "" && !containsFold(c.FullName, search) &&
			(c.Email == nil || !containsFold(*c.Email, search)) &&
			(c.CurrentTitle == nil || !containsFold(*c.CurrentTitle, search)) {
			continue
		}
		matched = append(matched, cloneCandidate(c))
	}
	page, total := paginate(matched, filter.Page)
	return page, total, nil
}

func (m *MemoryStore) UpdateCandidate(_ context.Context, c *models.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.liveCandidate(c.ID)
	if existing == nil {
		return ErrNotFound
	}
	if m.emailTaken(c) {
		return ErrDuplicateKey
	}
	updated := cloneCandidate(c)
	// source and latest resume are owned by SetCandidateLatestResume
	updated.Source = existing.Source
	updated.LatestResumeFileID = existing.LatestResumeFileID
	*existing = *updated
	return nil
}

func (m *MemoryStore) SoftDeleteCandidate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.liveCandidate(id)
	if c == nil {
		return ErrNotFound
	}
	for _, f := range m.files {
		if !f.IsDeleted && f.CandidateID == id {
			return ErrConflict
		}
	}
	for _, r := range m.results {
		if r.CandidateID == id {
			return ErrConflict
		}
	}
	for _, r := range m.runs {
		if slices.Contains(r.Input.CandidateIDs, id) {
			return ErrConflict
		}
	}
	now := time.Now().UTC()
	c.IsDeleted = true
	c.DeletedAt = &now
	c.UpdatedAt = now
	return nil
}

func (m *MemoryStore) SetCandidateLatestResume(_ context.Context, candidateID uuid.UUID, resumeFileID, jobID *uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.candidates {
		if c.ID == candidateID {
			c.LatestResumeFileID = cloneID(resumeFileID)
			c.Source.JobID = cloneID(jobID)
			c.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}

// --- Resume Files ---

func cloneResumeFile(f *models.ResumeFile) *models.ResumeFile {
	c := *f
	return &c
}

func (m *MemoryStore) CreateResumeFile(_ context.Context, f *models.ResumeFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.liveCandidate(f.CandidateID) == nil {
		return &MissingRowError{Table: TableCandidates, ID: f.CandidateID}
	}
	if f.JobID != nil && m.liveJob(*f.JobID) == nil {
		return &MissingRowError{Table: TableJobs, ID: *f.JobID}
	}
	m.files = append(m.files, cloneResumeFile(f))
	return nil
}

func (m *MemoryStore) liveResumeFile(id uuid.UUID) *models.ResumeFile {
	for _, f := range m.files {
		if f.ID == id && !f.IsDeleted {
			return f
		}
	}
	return nil
}

func (m *MemoryStore) GetResumeFile(_ context.Context, id uuid.UUID) (*models.ResumeFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.files {
		if f.ID == id && !f.IsDeleted {
			return cloneResumeFile(f), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetResumeFilesByIDs(_ context.Context, ids []uuid.UUID) ([]*models.ResumeFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.ResumeFile
	for _, f := range m.files {
		if !f.IsDeleted && slices.Contains(ids, f.ID) {
			out = append(out, cloneResumeFile(f))
		}
	}
	return out, nil
}

func (m *MemoryStore) matchResumeFiles(filter ResumeFileFilter) []*models.ResumeFile {
	var out []*models.ResumeFile
	for _, f := range newestFirst(m.files, func(f *models.ResumeFile) time.Time { return f.CreatedAt }) {
		if f.IsDeleted || !sameOrg(filter.OrganizationID, f.OrganizationID) ||
			(filter.JobID != nil && (f.JobID == nil || *f.JobID != *filter.JobID)) ||
			(filter.CandidateID != nil && f.CandidateID != *filter.CandidateID) ||
			(filter.UploadStatus != "" && f.UploadStatus != filter.UploadStatus) {
			continue
		}
		out = append(out, cloneResumeFile(f))
	}
	return out
}

func (m *MemoryStore) FindResumeFiles(_ context.Context, filter ResumeFileFilter) ([]*models.ResumeFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.matchResumeFiles(filter), nil
}

func (m *MemoryStore) ListResumeFiles(_ context.Context, filter ResumeFileFilter) ([]*models.ResumeFile, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, total := paginate(m.matchResumeFiles(filter), filter.Page)
	return page, total, nil
}

func (m *MemoryStore) CountResumeFiles(_ context.Context, filter ResumeFileFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matchResumeFiles(filter)), nil
}

func (m *MemoryStore) SoftDeleteResumeFile(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target := m.liveResumeFile(id)
	if target == nil {
		return ErrNotFound
	}
	for _, r := range m.results {
		if r.ResumeFileID != nil && *r.ResumeFileID == id {
			return ErrConflict
		}
	}
	for _, r := range m.runs {
		if slices.Contains(r.Input.ResumeFileIDs, id) {
			return ErrConflict
		}
	}
	now := time.Now().UTC()
	target.IsDeleted = true
	target.DeletedAt = &now
	target.UploadStatus = models.UploadStatusFailed
	target.UpdatedAt = now
	return nil
}

// --- Screening Runs ---

func cloneRun(r *models.ScreeningRun) *models.ScreeningRun {
	c := *r
	c.Input.ResumeFileIDs = slices.Clone(r.Input.ResumeFileIDs)
	c.Input.CandidateIDs = slices.Clone(r.Input.CandidateIDs)
	c.Filters.MustIncludeSkills = slices.Clone(r.Filters.MustIncludeSkills)
	c.Filters.IncludeStatuses = slices.Clone(r.Filters.IncludeStatuses)
	return &c
}

func (m *MemoryStore) CreateScreeningRun(_ context.Context, r *models.ScreeningRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.liveJob(r.JobID) == nil {
		return &MissingRowError{Table: TableJobs, ID: r.JobID}
	}
	for _, id := range r.Input.ResumeFileIDs {
		if m.liveResumeFile(id) == nil {
			return &MissingRowError{Table: TableResumeFiles, ID: id}
		}
	}
	for _, id := range r.Input.CandidateIDs {
		if m.liveCandidate(id) == nil {
			return &MissingRowError{Table: TableCandidates, ID: id}
		}
	}
	m.runs = append(m.runs, cloneRun(r))
	return nil
}

func (m *MemoryStore) GetScreeningRun(_ context.Context, id uuid.UUID) (*models.ScreeningRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.runs {
		if r.ID == id {
			return cloneRun(r), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) matchRuns(filter RunFilter) []*models.ScreeningRun {
	var out []*models.ScreeningRun
	for _, r := range newestFirst(m.runs, func(r *models.ScreeningRun) time.Time { return r.CreatedAt }) {
		if !sameOrg(filter.OrganizationID, r.OrganizationID) ||
			(filter.JobID != nil && r.JobID != *filter.JobID) ||
			(filter.Status != "" && r.Status != filter.Status) ||
			(filter.ResumeFileID != nil && !slices.Contains(r.Input.ResumeFileIDs, *filter.ResumeFileID)) ||
			(filter.CandidateID != nil && !slices.Contains(r.Input.CandidateIDs, *filter.CandidateID)) {
			continue
		}
		out = append(out, cloneRun(r))
	}
	return out
}

func (m *MemoryStore) ListScreeningRuns(_ context.Context, filter RunFilter) ([]*models.ScreeningRun, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, total := paginate(m.matchRuns(filter), filter.Page)
	return page, total, nil
}

func (m *MemoryStore) CountScreeningRuns(_ context.Context, filter RunFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matchRuns(filter)), nil
}

func (m *MemoryStore) UpdateScreeningRun(_ context.Context, run *models.ScreeningRun, expectedStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		if r.ID != run.ID {
			continue
		}
		if r.Status != expectedStatus {
			return ErrConflict
		}
		r.Status = run.Status
		r.StartedAt = run.StartedAt
		r.FinishedAt = run.FinishedAt
		r.Totals = run.Totals
		r.QueueMeta = run.QueueMeta
		r.ErrorSummary = run.ErrorSummary
		r.UpdatedAt = run.UpdatedAt
		return nil
	}
	return ErrNotFound
}

// --- Screening Results ---

func cloneResult(r *models.ScreeningResult) *models.ScreeningResult {
	c := *r
	c.MatchedSkills = slices.Clone(r.MatchedSkills)
	c.MissingSkills = slices.Clone(r.MissingSkills)
	return &c
}

func (m *MemoryStore) CreateScreeningResult(_ context.Context, r *models.ScreeningResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.liveJob(r.JobID) == nil {
		return &MissingRowError{Table: TableJobs, ID: r.JobID}
	}
	if m.liveCandidate(r.CandidateID) == nil {
		return &MissingRowError{Table: TableCandidates, ID: r.CandidateID}
	}
	if r.ResumeFileID != nil && m.liveResumeFile(*r.ResumeFileID) == nil {
		return &MissingRowError{Table: TableResumeFiles, ID: *r.ResumeFileID}
	}
	for _, existing := range m.results {
		if existing.JobID == r.JobID && existing.CandidateID == r.CandidateID && existing.ScreeningRunID == r.ScreeningRunID {
			return ErrDuplicateKey
		}
	}
	for _, existing := range m.results {
		if existing.JobID == r.JobID && existing.CandidateID == r.CandidateID {
			existing.IsLatestForJobCandidate = false
		}
	}
	r.IsLatestForJobCandidate = true
	m.results = append(m.results, cloneResult(r))
	return nil
}

func (m *MemoryStore) matchResults(filter ResultFilter) []*models.ScreeningResult {
	var out []*models.ScreeningResult
	for _, r := range newestFirst(m.results, func(r *models.ScreeningResult) time.Time { return r.CreatedAt }) {
		if (filter.JobID != nil && r.JobID != *filter.JobID) ||
			(filter.CandidateID != nil && r.CandidateID != *filter.CandidateID) ||
			(filter.ResumeFileID != nil && (r.ResumeFileID == nil || *r.ResumeFileID != *filter.ResumeFileID)) ||
			(filter.RunID != nil && r.ScreeningRunID != *filter.RunID) ||
			(filter.LatestOnly && !r.IsLatestForJobCandidate) {
			continue
		}
		out = append(out, cloneResult(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchingScore > out[j].MatchingScore })
	return out
}

func (m *MemoryStore) ListScreeningResults(_ context.Context, filter ResultFilter) ([]*models.ScreeningResult, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, total := paginate(m.matchResults(filter), filter.Page)
	return page, total, nil
}

func (m *MemoryStore) CountScreeningResults(_ context.Context, filter ResultFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matchResults(filter)), nil
}

// --- Candidate Actions ---

func (m *MemoryStore) CreateCandidateAction(_ context.Context, a *models.CandidateAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *a
	c.Tags = slices.Clone(a.Tags)
	m.actions = append(m.actions, &c)
	return nil
}

func (m *MemoryStore) ListCandidateActions(_ context.Context, jobID, candidateID uuid.UUID) ([]*models.CandidateAction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.CandidateAction
	for _, a := range newestFirst(m.actions, func(a *models.CandidateAction) time.Time { return a.CreatedAt }) {
		if a.JobID == jobID && a.CandidateID == candidateID {
			c := *a
			c.Tags = slices.Clone(a.Tags)
			out = append(out, &c)
		}
	}
	return out, nil
}

// --- Audit Logs ---

func (m *MemoryStore) AppendAuditLog(_ context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *entry
	m.audit = append(m.audit, &c)
	return nil
}

// --- helpers ---

// newestFirst orders items by created time descending. Ties keep the most recently inserted first.
func newestFirst[T any](items []T, created func(T) time.Time) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	sort.SliceStable(out, func(i, j int) bool { return created(out[i]).After(created(out[j])) })
	return out
}

func paginate[T any](items []T, p Page) ([]T, int) {
	total := len(items)
	p = p.Normalize()
	start := p.Offset()
	if start >= total {
		return nil, total
	}
	end := min(start+p.Limit, total)
	return items[start:end], total
}

// sameOrg reports whether id passes an optional organization filter.
func sameOrg(filter, id *uuid.UUID) bool {
	return filter == nil || (id != nil && *id == *filter)
}

func sameOrgExact(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
