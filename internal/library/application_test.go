package library

import (
	"testing"

	"jobboard-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func applicationTestLibs(t *testing.T) (*ApplicationLibrary, *JobLibrary) {
	t.Helper()

	db := testDB(t,
		&model.Job{},
		&model.PipelineStage{},
		&model.Application{},
		&model.ApplicationStageLog{},
	)
	return NewApplicationLibrary(db), NewJobLibrary(db)
}

func submitApplication(t *testing.T, apps *ApplicationLibrary, jobs *JobLibrary, email string) *model.Application {
	t.Helper()

	job := model.Job{UserID: 1, CompanyID: 1, BoardID: 1, Title: "Backend Engineer", Type: model.JobTypeFullTime}
	require.NoError(t, jobs.Create(&job))

	first, err := jobs.FirstStage(job.ID)
	require.NoError(t, err)

	application := model.Application{
		JobID:          job.ID,
		Name:           "Ada Lovelace",
		Email:          email,
		CurrentStageID: first.ID,
	}
	require.NoError(t, apps.Create(&application))
	return &application
}

func TestApplicationCreateLogsEntryStage(t *testing.T) {
	apps, jobs := applicationTestLibs(t)
	application := submitApplication(t, apps, jobs, "ada@example.com")

	logs, err := apps.StageLogs(application.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, application.CurrentStageID, logs[0].PipelineStageID)
	assert.Nil(t, logs[0].UserID)
}

func TestApplicationCreateDuplicateEmail(t *testing.T) {
	apps, jobs := applicationTestLibs(t)
	submitApplication(t, apps, jobs, "ada@example.com")

	duplicate := model.Application{JobID: 1, Name: "Someone Else", Email: "ada@example.com"}
	assert.ErrorIs(t, apps.Create(&duplicate), ErrDuplicate)
}

func TestApplicationEmailTakenIncludesTrashed(t *testing.T) {
	apps, jobs := applicationTestLibs(t)
	application := submitApplication(t, apps, jobs, "ada@example.com")

	require.NoError(t, apps.Lifecycle.SoftDelete(application.ID))

	assert.True(t, apps.EmailTaken("ada@example.com", 0))
	assert.False(t, apps.EmailTaken("ada@example.com", application.ID))
}

func TestMoveToStageAppendsLog(t *testing.T) {
	apps, jobs := applicationTestLibs(t)
	application := submitApplication(t, apps, jobs, "ada@example.com")

	stages, err := jobs.Stages(application.JobID)
	require.NoError(t, err)
	require.True(t, len(stages) >= 2)

	screening := stages[1]
	require.NoError(t, apps.MoveToStage(application.ID, screening.ID, 7))

	reloaded, err := apps.ByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, screening.ID, reloaded.CurrentStageID)

	logs, err := apps.StageLogs(application.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, screening.ID, logs[1].PipelineStageID)
	require.NotNil(t, logs[1].UserID)
	assert.Equal(t, uint(7), *logs[1].UserID)
}

func TestMoveToStageMissingApplication(t *testing.T) {
	apps, _ := applicationTestLibs(t)

	err := apps.MoveToStage(404, 1, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
