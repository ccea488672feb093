package recruit_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/internal/store"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJob_Defaults(t *testing.T) {
	e := newEnv(t)

	job, err := e.svc.CreateJob(e.ctx, e.actor, recruit.JobInput{
		Title:      "  Data Engineer ",
		JDText:     "Pipelines",
		Department: ptr(" "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", job.Title)
	assert.Equal(t, "mid", job.SeniorityLevel)
	assert.Equal(t, "full-time", job.EmploymentType)
	assert.Equal(t, models.JobStatusDraft, job.Status)
	assert.Nil(t, job.Department)
	assert.Nil(t, job.OpenedAt)
	assert.Equal(t, models.DefaultScreeningConfig(), job.ScreeningConfig)
	assert.Equal(t, e.actor.UserID, job.CreatedBy)
}

func TestCreateJob_Validation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		in   recruit.JobInput
		kind recruit.Kind
	}{
		{"missing title", recruit.JobInput{JDText: "x"}, recruit.KindValidation},
		{"blank jd", recruit.JobInput{Title: "x", JDText: "  "}, recruit.KindValidation},
		{"bad seniority", recruit.JobInput{Title: "x", JDText: "y", SeniorityLevel: "wizard"}, recruit.KindValidation},
		{"bad status", recruit.JobInput{Title: "x", JDText: "y", Status: "archived"}, recruit.KindInvalidStatus},
		{"weights do not sum", recruit.JobInput{Title: "x", JDText: "y", ScreeningConfig: &models.ScreeningConfig{
			ShortlistAboveScore: 80, RequiredSkillWeight: 0.5, ExperienceWeight: 0.5, EducationWeight: 0.5,
		}}, recruit.KindValidation},
		{"reject above shortlist", recruit.JobInput{Title: "x", JDText: "y", ScreeningConfig: &models.ScreeningConfig{
			AutoRejectBelowScore: 90, ShortlistAboveScore: 80, RequiredSkillWeight: 1,
		}}, recruit.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.CreateJob(e.ctx, e.actor, tt.in)
			requireKind(t, err, tt.kind, "")
		})
	}

	_, err := e.svc.CreateJob(e.ctx, recruit.Actor{}, recruit.JobInput{Title: "x", JDText: "y"})
	requireKind(t, err, recruit.KindUnauthorized, "UNAUTHORIZED")
}

func TestCreateJob_DuplicateJobCode(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.CreateJob(e.ctx, e.actor, recruit.JobInput{Title: "A", JDText: "a", JobCode: ptr("ENG-1")})
	require.NoError(t, err)
	_, err = e.svc.CreateJob(e.ctx, e.actor, recruit.JobInput{Title: "B", JDText: "b", JobCode: ptr(" ENG-1 ")})
	requireKind(t, err, recruit.KindDuplicateJobCode, "DUPLICATE_JOB_CODE")
	assert.ErrorIs(t, err, recruit.ErrDuplicateJobCode)
}

func TestUpdateJob_StatusTimestamps(t *testing.T) {
	e := newEnv(t)
	job := e.job(t)

	opened, err := e.svc.UpdateJob(e.ctx, e.actor, job.ID.String(), recruit.JobPatch{Status: ptr(models.JobStatusOpen)})
	require.NoError(t, err)
	require.NotNil(t, opened.OpenedAt)
	assert.Nil(t, opened.ClosedAt)
	openedAt := *opened.OpenedAt

	closed, err := e.svc.UpdateJob(e.ctx, e.actor, job.ID.String(), recruit.JobPatch{Status: ptr(models.JobStatusClosed)})
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, openedAt, *closed.OpenedAt)

	reopened, err := e.svc.UpdateJob(e.ctx, e.actor, job.ID.String(), recruit.JobPatch{Status: ptr(models.JobStatusOpen)})
	require.NoError(t, err)
	assert.Nil(t, reopened.ClosedAt)
	assert.Equal(t, openedAt, *reopened.OpenedAt, "openedAt is kept from the first opening")

	_, err = e.svc.UpdateJob(e.ctx, e.actor, job.ID.String(), recruit.JobPatch{Title: ptr("  ")})
	requireKind(t, err, recruit.KindValidation, "VALIDATION_ERROR")

	_, err = e.svc.UpdateJob(e.ctx, e.actor, uuid.NewString(), recruit.JobPatch{})
	requireKind(t, err, recruit.KindNotFound, "JOB_NOT_FOUND")
}

func TestListJobs(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.CreateJob(e.ctx, e.actor, recruit.JobInput{Title: "Go Engineer", JDText: "x", Status: models.JobStatusOpen})
	require.NoError(t, err)
	_, err = e.svc.CreateJob(e.ctx, e.actor, recruit.JobInput{Title: "Designer", JDText: "x"})
	require.NoError(t, err)

	open, err := e.svc.ListJobs(e.ctx, recruit.JobQuery{Status: models.JobStatusOpen})
	require.NoError(t, err)
	require.Len(t, open.Items, 1)
	assert.Equal(t, "Go Engineer", open.Items[0].Title)

	search, err := e.svc.ListJobs(e.ctx, recruit.JobQuery{Search: "design"})
	require.NoError(t, err)
	assert.Equal(t, 1, search.Total)

	paged, err := e.svc.ListJobs(e.ctx, recruit.JobQuery{Page: store.Page{Page: 1, Limit: 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, paged.Total)
	assert.Len(t, paged.Items, 1)
	assert.Equal(t, 2, paged.TotalPages())

	_, err = e.svc.ListJobs(e.ctx, recruit.JobQuery{Status: "archived"})
	requireKind(t, err, recruit.KindInvalidStatus, "INVALID_STATUS")
}

func TestGetJob_InvalidIDBeforeLookup(t *testing.T) {
	e := newEnv(t)

	for _, raw := range []string{"", "abc", "00000000-0000-0000-0000-000000000000"} {
		_, err := e.svc.GetJob(e.ctx, e.actor, raw)
		requireKind(t, err, recruit.KindInvalidID, "INVALID_JOB_ID")
	}
	_, err := e.svc.GetJob(e.ctx, e.actor, uuid.NewString())
	requireKind(t, err, recruit.KindNotFound, "JOB_NOT_FOUND")
	assert.EqualError(t, err, "Job not found")
}

func TestDeleteJob_Guard(t *testing.T) {
	e := newEnv(t)
	job := e.job(t)
	file := e.upload(t, &job.ID, nil, 1)[0]

	linked, err := e.svc.CountJobLinkedRecords(e.ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, recruit.LinkedRecords{ResumeFiles: 1}, linked)

	err = e.svc.DeleteJob(e.ctx, e.actor, job.ID.String())
	requireKind(t, err, recruit.KindRelationshipConflict, "JOB_RELATIONSHIP_CONFLICT")
	assert.Equal(t, []string{"job"}, e.recorder.blocked)

	require.NoError(t, e.svc.DeleteResumeFile(e.ctx, e.actor, file.ID.String()))
	require.NoError(t, e.svc.DeleteJob(e.ctx, e.actor, job.ID.String()))

	err = e.svc.DeleteJob(e.ctx, e.actor, job.ID.String())
	requireKind(t, err, recruit.KindNotFound, "JOB_NOT_FOUND")

	_, err = e.svc.GetJob(e.ctx, e.actor, job.ID.String())
	requireKind(t, err, recruit.KindNotFound, "JOB_NOT_FOUND")
}

func TestDeleteJob_BlockedByRun(t *testing.T) {
	e := newEnv(t)
	job := e.job(t)
	file := e.upload(t, &job.ID, nil, 1)[0]
	e.run(t, job.ID)

	// The run references the file, so neither can go.
	err := e.svc.DeleteResumeFile(e.ctx, e.actor, file.ID.String())
	requireKind(t, err, recruit.KindRelationshipConflict, "RESUME_FILE_RELATIONSHIP_CONFLICT")

	linked, err := e.svc.CountJobLinkedRecords(e.ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, recruit.LinkedRecords{ResumeFiles: 1, ScreeningRuns: 1}, linked)

	err = e.svc.DeleteJob(e.ctx, e.actor, job.ID.String())
	requireKind(t, err, recruit.KindRelationshipConflict, "JOB_RELATIONSHIP_CONFLICT")
}

func TestDeleteJob_Audited(t *testing.T) {
	e := newEnv(t)
	job := e.job(t)

	require.NoError(t, e.svc.DeleteJob(e.ctx, e.actor, job.ID.String()))

	logs := e.store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "job.deleted", logs[0].Action)
	assert.Equal(t, job.ID, logs[0].EntityID)
	assert.Equal(t, models.AuditModuleJobManagement, logs[0].Module)
	require.NotNil(t, logs[0].ActorID)
	assert.Equal(t, e.actor.UserID, *logs[0].ActorID)
}
