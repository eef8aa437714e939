// Package testutil builds the in-memory API used by the tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aradhik11/task-management-api/internal/config"
	"github.com/Aradhik11/task-management-api/internal/logger"
	"github.com/Aradhik11/task-management-api/internal/models"
	"github.com/Aradhik11/task-management-api/internal/routes"
)

// NewTestConfig returns the fixed configuration every test runs with.
// MinCost keeps the bcrypt work factor out of the test runtime.
func NewTestConfig() *config.Config {
	return &config.Config{
		Environment:  "test",
		Port:         "0",
		CORSOrigin:   "*",
		JWTSecret:    "test-secret",
		JWTExpiresIn: time.Hour,
		BcryptCost:   bcrypt.MinCost,
	}
}

// SetupTestAPI migrates a fresh in-memory sqlite database and builds the
// full router on top of it, so tests exercise the same middleware chain as
// production.
func SetupTestAPI(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	_ = godotenv.Load()
	gin.SetMode(gin.TestMode)

	// A uniquely named shared-cache database keeps each test isolated
	// while letting gorm's connection pool see the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	r := routes.SetupRouter(db, NewTestConfig(), logger.NewNop())
	return db, r
}

// DoJSON performs a request against the router, JSON-encoding body when
// present and attaching the bearer token when non-empty.
func DoJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DecodeBody unmarshals the recorded response body into target.
func DecodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target),
		"response should be valid JSON: %s", w.Body.String())
}

// RegisterUser registers an account through the API and returns its id and
// token.
func RegisterUser(t *testing.T, r http.Handler, email, password, role string) (uint, string) {
	t.Helper()

	body := map[string]string{"email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	w := DoJSON(t, r, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())

	var resp struct {
		User  models.PublicUser `json:"user"`
		Token string            `json:"token"`
	}
	DecodeBody(t, w, &resp)
	require.NotZero(t, resp.User.ID)
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

// CreateTask creates a task through the API and returns it.
func CreateTask(t *testing.T, r http.Handler, token, title, description string) models.Task {
	t.Helper()

	w := DoJSON(t, r, http.MethodPost, "/tasks", token, map[string]string{
		"title":       title,
		"description": description,
	})
	require.Equal(t, http.StatusCreated, w.Code, "task creation failed: %s", w.Body.String())

	var resp struct {
		Task models.Task `json:"task"`
	}
	DecodeBody(t, w, &resp)
	require.NotZero(t, resp.Task.ID)
	return resp.Task
}
