package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"jobboard-service/internal/model"
	"jobboard-service/pkg/config"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/jwtutil"
	"jobboard-service/pkg/storage"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTest wires a fresh sqlite database and a temp upload store into the
// package globals the handlers read.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.SetDB(db)

	store, err := storage.New(&config.StorageConfig{Dir: t.TempDir(), MaxUploadBytes: 1 << 20})
	require.NoError(t, err)
	SetFileStore(store)

	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	return db
}

// jsonContext builds an echo context carrying a JSON body
func jsonContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// multipartForm accumulates fields and file parts for upload endpoints
type multipartForm struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

func newMultipartForm() *multipartForm {
	f := &multipartForm{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

func (f *multipartForm) field(name, value string) *multipartForm {
	f.writer.WriteField(name, value)
	return f
}

// file adds a part with an explicit Content-Type, which the handlers check
// against the MIME allow-list.
func (f *multipartForm) file(field, filename, contentType, content string) *multipartForm {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(header)
	if err != nil {
		panic(err)
	}
	io.Copy(part, strings.NewReader(content))
	return f
}

func (f *multipartForm) context(t *testing.T, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	require.NoError(t, f.writer.Close())

	req := httptest.NewRequest(method, target, &f.buf)
	req.Header.Set(echo.HeaderContentType, f.writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// asUser marks the context authenticated the way the auth middleware does
func asUser(c echo.Context, user *model.User) {
	c.Set("user_id", user.ID)
	c.Set("email", user.Email)
	c.Set("username", user.Username)
}

func setParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// createTestUser inserts a user mid-onboarding at the given stage
func createTestUser(t *testing.T, db *gorm.DB, username, stage string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := model.User{
		Name:            "Test User",
		Email:           username + "@example.com",
		Username:        username,
		Password:        string(hashed),
		IsOnboarding:    true,
		OnboardingStage: stage,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createOnboardedUser inserts a user who already finished onboarding
func createOnboardedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := createTestUser(t, db, username, "complete")
	require.NoError(t, db.Model(user).Update("is_onboarding", false).Error)
	user.IsOnboarding = false
	return user
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
