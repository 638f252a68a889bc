package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitcoach/server/internal/repository/sqlite"
	"fitcoach/server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.OpenInMemory()
	require.NoError(t, err)

	userRepo := sqlite.NewUserRepository(db)
	router := gin.New()
	SetupRoutes(
		router,
		testSecret,
		service.NewAuthService(userRepo, testSecret, 0),
		service.NewUserService(userRepo),
		service.NewProgramService(sqlite.NewProgramRepository(db), sqlite.NewWorkoutRepository(db), sqlite.NewAssignmentRepository(db), userRepo),
		service.NewWorkoutLogService(sqlite.NewWorkoutLogRepository(db)),
		service.NewTaskService(sqlite.NewTaskRepository(db), userRepo),
		service.NewLeaderboardService(sqlite.NewLeaderboardRepository(db), sqlite.NewStreakRepository(db), userRepo),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// registerUser drives the real registration endpoint and returns the token
// plus the decoded user payload.
func registerUser(t *testing.T, router *gin.Engine, role, inviteCode string) (string, map[string]interface{}) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":       "Test " + role,
		"email":      fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]),
		"password":   "password123",
		"role":       role,
		"inviteCode": inviteCode,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/users", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	// Short password is rejected before it reaches the service.
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "X", "email": "x@example.com", "password": "short", "role": "trainer",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "X", "email": "x@example.com", "password": "password123", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	router := newTestRouter(t)
	_, trainer := registerUser(t, router, "trainer", "")
	require.NotEmpty(t, trainer["inviteCode"])

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": trainer["email"], "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), trainer["email"].(string))
}

func TestTaskRoutes_RoleGating(t *testing.T) {
	router := newTestRouter(t)
	trainerToken, trainer := registerUser(t, router, "trainer", "")
	traineeToken, _ := registerUser(t, router, "trainee", trainer["inviteCode"].(string))

	// Trainees cannot author tasks.
	rec := doJSON(t, router, http.MethodPost, "/api/tasks", traineeToken, gin.H{"title": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Trainers cannot record progress.
	rec = doJSON(t, router, http.MethodPost, "/api/tasks", trainerToken, gin.H{
		"title": "Train 2x", "targetCount": 2, "assignAll": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	progressPath := fmt.Sprintf("/api/tasks/%s/progress", created.ID)
	rec = doJSON(t, router, http.MethodPut, progressPath, trainerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The assigned trainee drives the task to completion over the wire.
	for i := 1; i <= 2; i++ {
		rec = doJSON(t, router, http.MethodPut, progressPath, traineeToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	var progress struct {
		Progress  int  `json:"progress"`
		Completed bool `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, 2, progress.Progress)
	assert.True(t, progress.Completed)

	// Progress on an unknown task is a 404.
	rec = doJSON(t, router, http.MethodPut, "/api/tasks/unknown/progress", traineeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgramRoutes_TrainerOnlyWrites(t *testing.T) {
	router := newTestRouter(t)
	trainerToken, trainer := registerUser(t, router, "trainer", "")
	traineeToken, _ := registerUser(t, router, "trainee", trainer["inviteCode"].(string))

	rec := doJSON(t, router, http.MethodPost, "/api/programs", traineeToken, gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/programs", trainerToken, gin.H{
		"name": "Block", "workouts": []gin.H{{"name": "Day A"}},
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Both roles can read the catalog.
	rec = doJSON(t, router, http.MethodGet, "/api/programs", traineeToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Block")
}

func TestDuplicateRegistrationIsConflict(t *testing.T) {
	router := newTestRouter(t)
	_, trainer := registerUser(t, router, "trainer", "")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Again", "email": trainer["email"], "password": "password123", "role": "trainer",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
