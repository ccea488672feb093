package recruit

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"golang.org/x/sync/errgroup"
)

// ref describes one referenceable entity kind and its error vocabulary.
type ref struct {
	label        string
	invalidCode  string
	notFoundCode string
}

var (
	jobRef        = ref{label: "job", invalidCode: "INVALID_JOB_ID", notFoundCode: "JOB_NOT_FOUND"}
	candidateRef  = ref{label: "candidate", invalidCode: "INVALID_CANDIDATE_ID", notFoundCode: "CANDIDATE_NOT_FOUND"}
	resumeFileRef = ref{label: "resume file", invalidCode: "INVALID_RESUME_FILE_ID", notFoundCode: "RESUME_FILE_NOT_FOUND"}
	runRef        = ref{label: "screening run", invalidCode: "INVALID_SCREENING_RUN_ID", notFoundCode: "SCREENING_RUN_NOT_FOUND"}
)

func (r ref) invalid() *Error {
	return newError(KindInvalidID, r.invalidCode, "Invalid "+r.label+" id")
}

func (r ref) notFound() *Error {
	return newError(KindNotFound, r.notFoundCode, strings.ToUpper(r.label[:1])+r.label[1:]+" not found")
}

// parseID is the well-formed-id predicate. It runs before any lookup.
func parseID(raw string, r ref) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, r.invalid()
	}
	return id, nil
}

// parseOptionalID parses raw when present. Empty input yields nil.
func parseOptionalID(raw string, r ref) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := parseID(raw, r)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// notFoundAs translates store.ErrNotFound into the kind-specific domain error.
func notFoundAs(err error, r ref) error {
	if errors.Is(err, store.ErrNotFound) {
		return r.notFound()
	}
	return err
}

// missingParent maps a parent row deleted mid-write onto its not-found error.
func missingParent(err error) error {
	var missing *store.MissingRowError
	if !errors.As(err, &missing) {
		return err
	}
	switch missing.Table {
	case store.TableJobs:
		return jobRef.notFound()
	case store.TableCandidates:
		return candidateRef.notFound()
	case store.TableResumeFiles:
		return resumeFileRef.notFound()
	}
	return err
}

// visibleTo reports whether a record owned by owner is reachable from org.
// A nil org sees every record, matching the list filters.
func visibleTo(org, owner *uuid.UUID) bool {
	return org == nil || (owner != nil && *owner == *org)
}

func (s *Service) findJob(ctx context.Context, org *uuid.UUID, raw string) (*models.Job, error) {
	id, err := parseID(raw, jobRef)
	if err != nil {
		return nil, err
	}
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, jobRef)
	}
	if !visibleTo(org, job.OrganizationID) {
		return nil, jobRef.notFound()
	}
	return job, nil
}

func (s *Service) findCandidate(ctx context.Context, org *uuid.UUID, raw string) (*models.Candidate, error) {
	id, err := parseID(raw, candidateRef)
	if err != nil {
		return nil, err
	}
	c, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, candidateRef)
	}
	if !visibleTo(org, c.OrganizationID) {
		return nil, candidateRef.notFound()
	}
	return c, nil
}

func (s *Service) findResumeFile(ctx context.Context, org *uuid.UUID, raw string) (*models.ResumeFile, error) {
	id, err := parseID(raw, resumeFileRef)
	if err != nil {
		return nil, err
	}
	f, err := s.store.GetResumeFile(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, resumeFileRef)
	}
	if !visibleTo(org, f.OrganizationID) {
		return nil, resumeFileRef.notFound()
	}
	return f, nil
}

func (s *Service) findRun(ctx context.Context, org *uuid.UUID, raw string) (*models.ScreeningRun, error) {
	id, err := parseID(raw, runRef)
	if err != nil {
		return nil, err
	}
	run, err := s.store.GetScreeningRun(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, runRef)
	}
	if !visibleTo(org, run.OrganizationID) {
		return nil, runRef.notFound()
	}
	return run, nil
}

// LinkedRecords counts the records that reference an entity and block its deletion.
type LinkedRecords struct {
	ResumeFiles      int `json:"resumeFilesCount"`
	ScreeningResults int `json:"screeningResultsCount"`
	ScreeningRuns    int `json:"screeningRunsCount"`
}

func (l LinkedRecords) Total() int {
	return l.ResumeFiles + l.ScreeningResults + l.ScreeningRuns
}

// countLinked runs the three counts concurrently. A nil counter contributes zero.
func countLinked(ctx context.Context, files, results, runs func(context.Context) (int, error)) (LinkedRecords, error) {
	var out LinkedRecords
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range []struct {
		fn  func(context.Context) (int, error)
		dst *int
	}{
		{files, &out.ResumeFiles},
		{results, &out.ScreeningResults},
		{runs, &out.ScreeningRuns},
	} {
		if c.fn == nil {
			continue
		}
		g.Go(func() error {
			n, err := c.fn(gctx)
			*c.dst = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return LinkedRecords{}, err
	}
	return out, nil
}

// CountJobLinkedRecords counts live resume files, screening results and runs on a job.
func (s *Service) CountJobLinkedRecords(ctx context.Context, jobID uuid.UUID) (LinkedRecords, error) {
	return countLinked(ctx,
		func(ctx context.Context) (int, error) {
			return s.store.CountResumeFiles(ctx, store.ResumeFileFilter{JobID: &jobID})
		},
		func(ctx context.Context) (int, error) {
			return s.store.CountScreeningResults(ctx, store.ResultFilter{JobID: &jobID})
		},
		func(ctx context.Context) (int, error) {
			return s.store.CountScreeningRuns(ctx, store.RunFilter{JobID: &jobID})
		},
	)
}

// CountResumeFileLinkedRecords counts screening results and runs that reference a resume file.
func (s *Service) CountResumeFileLinkedRecords(ctx context.Context, resumeFileID uuid.UUID) (LinkedRecords, error) {
	return countLinked(ctx, nil,
		func(ctx context.Context) (int, error) {
			return s.store.CountScreeningResults(ctx, store.ResultFilter{ResumeFileID: &resumeFileID})
		},
		func(ctx context.Context) (int, error) {
			return s.store.CountScreeningRuns(ctx, store.RunFilter{ResumeFileID: &resumeFileID})
		},
	)
}

// CountCandidateLinkedRecords counts live resume files, screening results and runs whose input names the candidate.
func (s *Service) CountCandidateLinkedRecords(ctx context.Context, candidateID uuid.UUID) (LinkedRecords, error) {
	return countLinked(ctx,
		func(ctx context.Context) (int, error) {
			return s.store.CountResumeFiles(ctx, store.ResumeFileFilter{CandidateID: &candidateID})
		},
		func(ctx context.Context) (int, error) {
			return s.store.CountScreeningResults(ctx, store.ResultFilter{CandidateID: &candidateID})
		},
		func(ctx context.Context) (int, error) {
			return s.store.CountScreeningRuns(ctx, store.RunFilter{CandidateID: &candidateID})
		},
	)
}
