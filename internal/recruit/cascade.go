package recruit

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/store"
)

// syncCandidateLatestResumeFile points the candidate at its newest live resume file,
// or clears the pointer and source job when none remain.
func (s *Service) syncCandidateLatestResumeFile(ctx context.Context, candidateID uuid.UUID) error {
	files, err := s.store.FindResumeFiles(ctx, store.ResumeFileFilter{CandidateID: &candidateID})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return s.store.SetCandidateLatestResume(ctx, candidateID, nil, nil)
	}
	latest := files[0]
	return s.store.SetCandidateLatestResume(ctx, candidateID, &latest.ID, latest.JobID)
}
