package handler

import (
	"net/http"
	"strconv"
	"testing"

	"jobboard-service/internal/library"
	"jobboard-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createJobForUser(t *testing.T, db *gorm.DB, userID uint) *model.Job {
	t.Helper()

	job := model.Job{
		UserID:    userID,
		CompanyID: 1,
		BoardID:   1,
		Title:     "Backend Engineer",
		Type:      model.JobTypeFullTime,
	}
	require.NoError(t, library.NewJobLibrary(db).Create(&job))
	return &job
}

func submitTestApplication(t *testing.T, db *gorm.DB, job *model.Job, email string) *model.Application {
	t.Helper()

	first, err := library.NewJobLibrary(db).FirstStage(job.ID)
	require.NoError(t, err)

	application := model.Application{
		JobID:          job.ID,
		Name:           "Ada Lovelace",
		Email:          email,
		ResumeID:       1,
		CurrentStageID: first.ID,
	}
	require.NoError(t, library.NewApplicationLibrary(db).Create(&application))
	return &application
}

func TestCreateApplicationPinsFirstStage(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	job := createJobForUser(t, db, owner.ID)

	form := newMultipartForm().
		field("job_id", strconv.Itoa(int(job.ID))).
		field("name", "Ada Lovelace").
		field("email", "ada@example.com").
		file("resume", "resume.pdf", "application/pdf", "%PDF-1.4 fake")
	c, rec := form.context(t, http.MethodPost, "/applications/create")
	require.NoError(t, CreateApplication(c))
	assertStatus(t, rec, http.StatusCreated)

	var application model.Application
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&application).Error)

	first, err := library.NewJobLibrary(db).FirstStage(job.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, application.CurrentStageID)

	// The entry stage was logged
	logs, err := library.NewApplicationLibrary(db).StageLogs(application.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, first.ID, logs[0].PipelineStageID)

	// The resume row exists
	var resume model.File
	require.NoError(t, db.First(&resume, application.ResumeID).Error)
	assert.Equal(t, "resume.pdf", resume.Name)
}

func TestCreateApplicationRequiresResume(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	job := createJobForUser(t, db, owner.ID)

	form := newMultipartForm().
		field("job_id", strconv.Itoa(int(job.ID))).
		field("name", "Ada Lovelace").
		field("email", "ada@example.com")
	c, rec := form.context(t, http.MethodPost, "/applications/create")
	require.NoError(t, CreateApplication(c))
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	body := decodeBody(t, rec)
	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "resume")
}

func TestCreateApplicationRejectsImageResume(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	job := createJobForUser(t, db, owner.ID)

	// Images pass the general upload allow-list but not the resume one
	form := newMultipartForm().
		field("job_id", strconv.Itoa(int(job.ID))).
		field("name", "Ada Lovelace").
		field("email", "ada@example.com").
		file("resume", "me.png", "image/png", "pngdata")
	c, rec := form.context(t, http.MethodPost, "/applications/create")
	require.NoError(t, CreateApplication(c))
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	var count int64
	require.NoError(t, db.Model(&model.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateApplicationDuplicateEmail(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	job := createJobForUser(t, db, owner.ID)
	submitTestApplication(t, db, job, "ada@example.com")

	form := newMultipartForm().
		field("job_id", strconv.Itoa(int(job.ID))).
		field("name", "Ada Again").
		field("email", "ada@example.com").
		file("resume", "resume.pdf", "application/pdf", "%PDF-1.4 fake")
	c, rec := form.context(t, http.MethodPost, "/applications/create")
	require.NoError(t, CreateApplication(c))
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	var count int64
	require.NoError(t, db.Model(&model.Application{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMoveApplicationStage(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	job := createJobForUser(t, db, owner.ID)
	application := submitTestApplication(t, db, job, "ada@example.com")

	stages, err := library.NewJobLibrary(db).Stages(job.ID)
	require.NoError(t, err)
	screening := stages[1]

	c, rec := jsonContext(t, http.MethodPut, "/applications/1/stage", map[string]interface{}{
		"stage_id": screening.ID,
	})
	setParam(c, "id", "1")
	asUser(c, owner)
	require.NoError(t, MoveApplicationStage(c))
	assertStatus(t, rec, http.StatusOK)

	var reloaded model.Application
	require.NoError(t, db.First(&reloaded, application.ID).Error)
	assert.Equal(t, screening.ID, reloaded.CurrentStageID)
}

func TestMoveApplicationStageRejectsForeignStage(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	job := createJobForUser(t, db, owner.ID)
	otherJob := createJobForUser(t, db, owner.ID)
	application := submitTestApplication(t, db, job, "ada@example.com")

	foreign, err := library.NewJobLibrary(db).FirstStage(otherJob.ID)
	require.NoError(t, err)

	c, rec := jsonContext(t, http.MethodPut, "/applications/1/stage", map[string]interface{}{
		"stage_id": foreign.ID,
	})
	setParam(c, "id", "1")
	asUser(c, owner)
	require.NoError(t, MoveApplicationStage(c))
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	var reloaded model.Application
	require.NoError(t, db.First(&reloaded, application.ID).Error)
	assert.Equal(t, application.CurrentStageID, reloaded.CurrentStageID)
}

func TestMoveApplicationStageRequiresJobOwnership(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	intruder := createTestUser(t, db, "intruder", "complete")
	job := createJobForUser(t, db, owner.ID)
	submitTestApplication(t, db, job, "ada@example.com")

	stages, err := library.NewJobLibrary(db).Stages(job.ID)
	require.NoError(t, err)

	c, rec := jsonContext(t, http.MethodPut, "/applications/1/stage", map[string]interface{}{
		"stage_id": stages[1].ID,
	})
	setParam(c, "id", "1")
	asUser(c, intruder)
	require.NoError(t, MoveApplicationStage(c))
	assertStatus(t, rec, http.StatusForbidden)
}

func TestApplicationLifecycle(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	job := createJobForUser(t, db, owner.ID)
	application := submitTestApplication(t, db, job, "ada@example.com")

	// Trash
	c, rec := jsonContext(t, http.MethodDelete, "/applications/delete/1", nil)
	setParam(c, "id", "1")
	asUser(c, owner)
	require.NoError(t, TrashApplication(c))
	assertStatus(t, rec, http.StatusOK)

	var found model.Application
	assert.ErrorIs(t, db.First(&found, application.ID).Error, gorm.ErrRecordNotFound)

	// Restore
	c, rec = jsonContext(t, http.MethodPost, "/applications/restore/1", nil)
	setParam(c, "id", "1")
	asUser(c, owner)
	require.NoError(t, RestoreApplication(c))
	assertStatus(t, rec, http.StatusOK)
	require.NoError(t, db.First(&found, application.ID).Error)

	// Purge
	c, rec = jsonContext(t, http.MethodDelete, "/applications/purge/1", nil)
	setParam(c, "id", "1")
	asUser(c, owner)
	require.NoError(t, PurgeApplication(c))
	assertStatus(t, rec, http.StatusOK)

	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateApplicationPartial(t *testing.T) {
	db := setupTest(t)
	owner := createTestUser(t, db, "owner", "complete")
	job := createJobForUser(t, db, owner.ID)
	application := submitTestApplication(t, db, job, "ada@example.com")

	c, rec := jsonContext(t, http.MethodPut, "/applications/update/1", map[string]interface{}{
		"phone": "555-0100",
	})
	setParam(c, "id", "1")
	asUser(c, owner)
	require.NoError(t, UpdateApplication(c))
	assertStatus(t, rec, http.StatusOK)

	var reloaded model.Application
	require.NoError(t, db.First(&reloaded, application.ID).Error)
	assert.Equal(t, "555-0100", reloaded.Phone)
	assert.Equal(t, "ada@example.com", reloaded.Email)
	assert.Equal(t, "Ada Lovelace", reloaded.Name)
}
