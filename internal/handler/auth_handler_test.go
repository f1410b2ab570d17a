package handler

import (
	"net/http"
	"testing"

	"jobboard-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserAndToken(t *testing.T) {
	db := setupTest(t)

	c, rec := jsonContext(t, http.MethodPost, "/auth/register", map[string]string{
		"name":                  "Grace Hopper",
		"email":                 "grace@example.com",
		"username":              "grace",
		"password":              "password123",
		"password_confirmation": "password123",
	})
	require.NoError(t, Register(c))
	assertStatus(t, rec, http.StatusCreated)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])

	var user model.User
	require.NoError(t, db.Where("email = ?", "grace@example.com").First(&user).Error)
	assert.Equal(t, "grace", user.Username)
	assert.True(t, user.IsOnboarding)
	assert.Equal(t, "welcome", user.OnboardingStage)
	assert.NotEqual(t, "password123", user.Password)
}

func TestRegisterValidatesPayload(t *testing.T) {
	setupTest(t)

	c, rec := jsonContext(t, http.MethodPost, "/auth/register", map[string]string{
		"name":                  "Grace Hopper",
		"email":                 "not-an-email",
		"username":              "grace",
		"password":              "short",
		"password_confirmation": "different",
	})
	require.NoError(t, Register(c))
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	body := decodeBody(t, rec)
	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "password_confirmation")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTest(t)
	createTestUser(t, db, "grace", "welcome")

	c, rec := jsonContext(t, http.MethodPost, "/auth/register", map[string]string{
		"name":                  "Impostor",
		"email":                 "grace@example.com",
		"username":              "grace2",
		"password":              "password123",
		"password_confirmation": "password123",
	})
	require.NoError(t, Register(c))
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginSuccess(t *testing.T) {
	db := setupTest(t)
	createTestUser(t, db, "grace", "welcome")

	c, rec := jsonContext(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "grace@example.com",
		"password": "password123",
	})
	require.NoError(t, Login(c))
	assertStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "User logged in successfully", body["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTest(t)
	createTestUser(t, db, "grace", "welcome")

	c, rec := jsonContext(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "grace@example.com",
		"password": "wrong-password",
	})
	require.NoError(t, Login(c))
	assertStatus(t, rec, http.StatusUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	setupTest(t)

	c, rec := jsonContext(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	require.NoError(t, Login(c))
	assertStatus(t, rec, http.StatusUnauthorized)
}

func TestGetAuthenticatedUser(t *testing.T) {
	db := setupTest(t)
	user := createTestUser(t, db, "grace", "welcome")

	c, rec := jsonContext(t, http.MethodGet, "/auth/user", nil)
	asUser(c, user)
	require.NoError(t, GetAuthenticatedUser(c))
	assertStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	assert.Equal(t, "grace", body["username"])
	// The password hash never leaves the server
	assert.NotContains(t, rec.Body.String(), user.Password)
}

func TestLogout(t *testing.T) {
	db := setupTest(t)
	user := createTestUser(t, db, "grace", "welcome")

	c, rec := jsonContext(t, http.MethodPost, "/auth/logout", nil)
	asUser(c, user)
	require.NoError(t, Logout(c))
	assertStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	assert.Equal(t, "User logged out successfully", body["message"])
}
