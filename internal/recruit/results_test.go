package recruit_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordScreeningResult_LatestPerJobCandidate(t *testing.T) {
	e := newEnv(t)
	job := e.job(t)
	files := e.upload(t, &job.ID, nil, 2)
	first := e.run(t, job.ID)
	second := e.run(t, job.ID)
	candidate := files[0].CandidateID

	r1, err := e.svc.RecordScreeningResult(e.ctx, e.actor, recruit.RecordResultInput{
		RunID:         first.ID.String(),
		CandidateID:   candidate.String(),
		MatchingScore: 55,
		StatusBadge:   "potential",
		MatchedSkills: recruit.StringList{"go", " "},
	})
	require.NoError(t, err)
	assert.True(t, r1.IsLatestForJobCandidate)
	assert.Equal(t, []string{"go"}, r1.MatchedSkills)
	assert.Equal(t, job.ID, r1.JobID)

	r2, err := e.svc.RecordScreeningResult(e.ctx, e.actor, recruit.RecordResultInput{
		RunID:         second.ID.String(),
		CandidateID:   candidate.String(),
		MatchingScore: 91,
		StatusBadge:   "strong_fit",
	})
	require.NoError(t, err)

	latest, err := e.svc.ListScreeningResults(e.ctx, recruit.ResultQuery{JobID: job.ID.String(), LatestOnly: true})
	require.NoError(t, err)
	require.Len(t, latest.Items, 1)
	assert.Equal(t, r2.ID, latest.Items[0].ID)

	all, err := e.svc.ListScreeningResults(e.ctx, recruit.ResultQuery{JobID: job.ID.String()})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.InDelta(t, 91, all.Items[0].MatchingScore, 0, "highest score first")

	c, err := e.svc.GetCandidate(e.ctx, e.actor, candidate.String())
	require.NoError(t, err)
	require.NotNil(t, c.LastScreenedAt)
	assert.Equal(t, r2.CreatedAt, *c.LastScreenedAt)

	_, err = e.svc.RecordScreeningResult(e.ctx, e.actor, recruit.RecordResultInput{
		RunID:         second.ID.String(),
		CandidateID:   candidate.String(),
		MatchingScore: 10,
		StatusBadge:   "not_suitable",
	})
	requireKind(t, err, recruit.KindDuplicateResult, "DUPLICATE_SCREENING_RESULT")
}

func TestRecordScreeningResult_Validation(t *testing.T) {
	e := newEnv(t)
	job := e.job(t)
	files := e.upload(t, &job.ID, nil, 2)
	run, err := e.svc.CreateScreeningRun(e.ctx, e.actor, recruit.CreateRunInput{
		JobID:         job.ID.String(),
		ResumeFileIDs: []string{files[0].ID.String()},
	})
	require.NoError(t, err)

	base := recruit.RecordResultInput{
		RunID:         run.ID.String(),
		CandidateID:   files[0].CandidateID.String(),
		MatchingScore: 50,
		StatusBadge:   "potential",
	}

	tests := []struct {
		name   string
		mutate func(*recruit.RecordResultInput)
		kind   recruit.Kind
		code   string
	}{
		{"score above range", func(in *recruit.RecordResultInput) { in.MatchingScore = 101 }, recruit.KindValidation, "VALIDATION_ERROR"},
		{"unknown badge", func(in *recruit.RecordResultInput) { in.StatusBadge = "maybe" }, recruit.KindValidation, "VALIDATION_ERROR"},
		{"bad run id", func(in *recruit.RecordResultInput) { in.RunID = "x" }, recruit.KindInvalidID, "INVALID_SCREENING_RUN_ID"},
		{"unknown run", func(in *recruit.RecordResultInput) { in.RunID = uuid.NewString() }, recruit.KindNotFound, "SCREENING_RUN_NOT_FOUND"},
		{"candidate outside run", func(in *recruit.RecordResultInput) { in.CandidateID = files[1].CandidateID.String() }, recruit.KindCandidateJobMismatch, "CANDIDATE_NOT_IN_RUN"},
		{"file of another candidate", func(in *recruit.RecordResultInput) { in.ResumeFileID = files[1].ID.String() }, recruit.KindValidation, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := e.svc.RecordScreeningResult(e.ctx, e.actor, in)
			requireKind(t, err, tt.kind, tt.code)
		})
	}
}

func TestListScreeningResults_RequiresJob(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.ListScreeningResults(e.ctx, recruit.ResultQuery{})
	requireKind(t, err, recruit.KindValidation, "VALIDATION_ERROR")

	_, err = e.svc.ListScreeningResults(e.ctx, recruit.ResultQuery{JobID: uuid.NewString()})
	requireKind(t, err, recruit.KindNotFound, "JOB_NOT_FOUND")

	job := e.job(t)
	_, err = e.svc.ListScreeningResults(e.ctx, recruit.ResultQuery{JobID: job.ID.String(), RunID: "bad"})
	requireKind(t, err, recruit.KindInvalidID, "INVALID_SCREENING_RUN_ID")
}

func TestCandidateActions(t *testing.T) {
	e := newEnv(t)
	job := e.job(t)
	c := e.candidate(t, "Barbara")

	_, err := e.svc.CreateCandidateAction(e.ctx, e.actor, recruit.ActionInput{
		JobID:       job.ID.String(),
		CandidateID: c.ID.String(),
		ActionType:  models.ActionMoveStage,
	})
	requireKind(t, err, recruit.KindValidation, "VALIDATION_ERROR")

	first, err := e.svc.CreateCandidateAction(e.ctx, e.actor, recruit.ActionInput{
		JobID:       job.ID.String(),
		CandidateID: c.ID.String(),
		ActionType:  models.ActionMoveStage,
		Stage:       ptr(models.Stages[1]),
		Note:        ptr("  strong systems background "),
	})
	require.NoError(t, err)
	require.NotNil(t, first.Note)
	assert.Equal(t, "strong systems background", *first.Note)

	second, err := e.svc.CreateCandidateAction(e.ctx, e.actor, recruit.ActionInput{
		JobID:       job.ID.String(),
		CandidateID: c.ID.String(),
		ActionType:  models.ActionTypes[0],
		Tags:        recruit.StringList{"priority"},
	})
	require.NoError(t, err)

	actions, err := e.svc.ListCandidateActions(e.ctx, e.actor, job.ID.String(), c.ID.String())
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, second.ID, actions[0].ID)
	assert.Equal(t, first.ID, actions[1].ID)

	none, err := e.svc.ListCandidateActions(e.ctx, e.actor, job.ID.String(), uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = e.svc.CreateCandidateAction(e.ctx, e.actor, recruit.ActionInput{
		JobID:       uuid.NewString(),
		CandidateID: c.ID.String(),
		ActionType:  models.ActionTypes[0],
	})
	requireKind(t, err, recruit.KindNotFound, "JOB_NOT_FOUND")
}
