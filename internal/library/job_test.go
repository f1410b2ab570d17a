package library

import (
	"testing"

	"jobboard-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testJobLibrary(t *testing.T) *JobLibrary {
	t.Helper()
	return NewJobLibrary(testDB(t, &model.Job{}, &model.PipelineStage{}))
}

func newJob(t *testing.T, lib *JobLibrary) *model.Job {
	t.Helper()

	job := model.Job{
		UserID:    1,
		CompanyID: 1,
		BoardID:   1,
		Title:     "Backend Engineer",
		Type:      model.JobTypeFullTime,
	}
	require.NoError(t, lib.Create(&job))
	return &job
}

func TestJobCreateSeedsPipeline(t *testing.T) {
	lib := testJobLibrary(t)
	job := newJob(t, lib)

	stages, err := lib.Stages(job.ID)
	require.NoError(t, err)
	require.Len(t, stages, len(DefaultPipelineStages))

	for i, stage := range stages {
		assert.Equal(t, DefaultPipelineStages[i], stage.Name)
		assert.Equal(t, i+1, stage.Order)
		assert.Equal(t, job.ID, stage.JobID)
	}
}

func TestJobFirstStage(t *testing.T) {
	lib := testJobLibrary(t)
	job := newJob(t, lib)

	first, err := lib.FirstStage(job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Applied", first.Name)
	assert.Equal(t, 1, first.Order)
}

func TestStageBelongsToJob(t *testing.T) {
	lib := testJobLibrary(t)
	job := newJob(t, lib)
	other := newJob(t, lib)

	first, err := lib.FirstStage(job.ID)
	require.NoError(t, err)

	assert.True(t, lib.StageBelongsToJob(first.ID, job.ID))
	assert.False(t, lib.StageBelongsToJob(first.ID, other.ID))
	assert.False(t, lib.StageBelongsToJob(9999, job.ID))
}

func TestJobDeleteRemovesStages(t *testing.T) {
	lib := testJobLibrary(t)
	job := newJob(t, lib)

	require.NoError(t, lib.Delete(job.ID))

	_, err := lib.ByID(job.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	stages, err := lib.Stages(job.ID)
	require.NoError(t, err)
	assert.Empty(t, stages)

	assert.ErrorIs(t, lib.Delete(job.ID), gorm.ErrRecordNotFound)
}

func TestJobSetPublished(t *testing.T) {
	lib := testJobLibrary(t)
	job := newJob(t, lib)
	require.False(t, job.Published)

	require.NoError(t, lib.SetPublished(job.ID, true))

	reloaded, err := lib.ByID(job.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Published)

	assert.ErrorIs(t, lib.SetPublished(9999, true), gorm.ErrRecordNotFound)
}
