package recruit

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

// CandidateFields carries candidate profile values. Nil fields are absent.
type CandidateFields struct {
	FullName             *string
	Email                *string
	Phone                *string
	Location             *string
	CurrentTitle         *string
	CurrentCompany       *string
	Summary              *string
	TotalYearsExperience *float64
	ProfileStatus        *string
	Tags                 StringList
	SkillsHard           StringList
	SkillsSoft           StringList
}

func (f CandidateFields) apply(c *models.Candidate) error {
	if f.FullName != nil {
		c.FullName = strings.TrimSpace(*f.FullName)
		c.NormalizedFullName = strings.ToLower(c.FullName)
	}
	if f.Email != nil {
		if email := trimmedOrNil(f.Email); email != nil {
			lower := strings.ToLower(*email)
			c.Email = &lower
		} else {
			c.Email = nil
		}
	}
	if f.Phone != nil {
		c.Phone = trimmedOrNil(f.Phone)
	}
	if f.Location != nil {
		c.Location = trimmedOrNil(f.Location)
	}
	if f.CurrentTitle != nil {
		c.CurrentTitle = trimmedOrNil(f.CurrentTitle)
	}
	if f.CurrentCompany != nil {
		c.CurrentCompany = trimmedOrNil(f.CurrentCompany)
	}
	if f.Summary != nil {
		c.Summary = strings.TrimSpace(*f.Summary)
	}
	if f.TotalYearsExperience != nil {
		c.TotalYearsExperience = max(*f.TotalYearsExperience, 0)
	}
	if f.ProfileStatus != nil {
		if !oneOf(*f.ProfileStatus, models.ProfileStatuses) {
			return invalidStatus("Invalid candidate profile status")
		}
		c.ProfileStatus = *f.ProfileStatus
	}
	if f.Tags != nil {
		c.Tags = normalizeStrings(f.Tags)
	}
	if f.SkillsHard != nil {
		names := normalizeStrings(f.SkillsHard)
		c.Skills.Hard = make([]models.HardSkill, 0, len(names))
		for _, name := range names {
			c.Skills.Hard = append(c.Skills.Hard, models.HardSkill{Name: name})
		}
	}
	if f.SkillsSoft != nil {
		c.Skills.Soft = normalizeStrings(f.SkillsSoft)
	}
	return nil
}

func (s *Service) CreateCandidate(ctx context.Context, actor Actor, in CandidateFields) (*models.Candidate, error) {
	if !actor.authenticated() {
		return nil, unauthorized()
	}
	now := s.clock()
	c := &models.Candidate{
		ID:             uuid.New(),
		OrganizationID: actor.OrganizationID,
		ProfileStatus:  models.ProfileStatusNeedsReview,
		Tags:           []string{},
		Skills:         models.CandidateSkills{Hard: []models.HardSkill{}, Soft: []string{}},
		Source:         models.CandidateSource{Type: models.CandidateSourceManual},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if c.FullName == "" {
		return nil, validationError("fullName is required")
	}

	if err := s.store.CreateCandidate(ctx, c); err != nil {
		return nil, translateCandidateWrite(err)
	}
	return c, nil
}

// CandidateQuery filters ListCandidates.
type CandidateQuery struct {
	OrganizationID *uuid.UUID
	ProfileStatus  string
	Search         string
	store.Page
}

func (s *Service) ListCandidates(ctx context.Context, q CandidateQuery) (ListResult[*models.Candidate], error) {
	if q.ProfileStatus != "" && !oneOf(q.ProfileStatus, models.ProfileStatuses) {
		return ListResult[*models.Candidate]{}, invalidStatus("Invalid candidate profile status")
	}
	items, total, err := s.store.ListCandidates(ctx, store.CandidateFilter{
		OrganizationID: q.OrganizationID,
		ProfileStatus:  q.ProfileStatus,
		Search:         q.Search,
		Page:           q.Page,
	})
	if err != nil {
		return ListResult[*models.Candidate]{}, err
	}
	return newListResult(items, total, q.Page), nil
}

func (s *Service) GetCandidate(ctx context.Context, actor Actor, id string) (*models.Candidate, error) {
	return s.findCandidate(ctx, actor.OrganizationID, id)
}

func (s *Service) UpdateCandidate(ctx context.Context, actor Actor, id string, patch CandidateFields) (*models.Candidate, error) {
	c, err := s.findCandidate(ctx, actor.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if err := patch.apply(c); err != nil {
		return nil, err
	}
	if c.FullName == "" {
		return nil, validationError("fullName cannot be empty")
	}
	c.UpdatedAt = s.clock()

	if err := s.store.UpdateCandidate(ctx, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, candidateRef.notFound()
		}
		return nil, translateCandidateWrite(err)
	}
	return c, nil
}

// DeleteCandidate soft-deletes a candidate with no live resume files, screening results or runs.
func (s *Service) DeleteCandidate(ctx context.Context, actor Actor, id string) error {
	c, err := s.findCandidate(ctx, actor.OrganizationID, id)
	if err != nil {
		return err
	}
	linked, err := s.CountCandidateLinkedRecords(ctx, c.ID)
	if err != nil {
		return err
	}
	conflict := newError(KindRelationshipConflict, "CANDIDATE_RELATIONSHIP_CONFLICT",
		"Cannot delete candidate while linked resume files or screening records still exist")
	if linked.Total() > 0 {
		s.recorder.DeleteBlocked("candidate")
		return conflict
	}

	if err := s.store.SoftDeleteCandidate(ctx, c.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			s.recorder.DeleteBlocked("candidate")
			return conflict
		case errors.Is(err, store.ErrNotFound):
			return candidateRef.notFound()
		}
		return err
	}

	s.audit(ctx, actor, models.AuditModuleCandidateWorkflow, "candidate", c.ID, "candidate.deleted", nil)
	return nil
}

func translateCandidateWrite(err error) error {
	if errors.Is(err, store.ErrDuplicateKey) {
		return newError(KindDuplicateEmail, "DUPLICATE_EMAIL", "Candidate email already exists")
	}
	return err
}
