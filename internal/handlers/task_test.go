package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/citygarden/community-task-api/internal/models"
	"github.com/citygarden/community-task-api/internal/repository"
	"github.com/citygarden/community-task-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type taskTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupTaskTestEnv(t *testing.T) taskTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Participation{},
	)
	require.NoError(t, err)

	taskService := services.NewTaskService(repository.NewTaskRepository(db))
	handler := NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tasks", handler.ListTasks)
	r.POST("/tasks", handler.CreateTask)
	r.GET("/tasks/:id", handler.GetTask)
	r.PUT("/tasks/:id", handler.UpdateTask)
	r.DELETE("/tasks/:id", handler.DeleteTask)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return taskTestEnv{db: db, router: r}
}

func (env taskTestEnv) doJSON(t *testing.T, method, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_CreateTask_Defaults(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.doJSON(t, "POST", "/tasks", map[string]any{"title": "Clean the park"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Clean the park", resp["title"])
	require.Equal(t, "other", resp["type"])
	require.EqualValues(t, 10, resp["points"])
	require.Equal(t, "open", resp["status"])
}

func TestTaskHandler_CreateTask_MissingTitle(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.doJSON(t, "POST", "/tasks", map[string]any{"description": "no title"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "MISSING_FIELD", resp["code"])
}

func TestTaskHandler_CreateTask_InvalidType(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.doJSON(t, "POST", "/tasks", map[string]any{"title": "x", "type": "gardening"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_ListTasks_NewestFirst(t *testing.T) {
	env := setupTaskTestEnv(t)

	now := time.Now()
	env.db.Create(&models.Task{Title: "older", Type: models.TaskTypeOther, Status: models.TaskStatusOpen, CreatedAt: now.Add(-time.Hour)})
	env.db.Create(&models.Task{Title: "newer", Type: models.TaskTypeOther, Status: models.TaskStatusOpen, CreatedAt: now})

	w := env.doJSON(t, "GET", "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.Equal(t, "newer", resp[0]["title"])
	require.Equal(t, "older", resp[1]["title"])
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.doJSON(t, "GET", "/tasks/99", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	env := setupTaskTestEnv(t)

	env.db.Create(&models.Task{Title: "Clean the park", Type: models.TaskTypeOther, Status: models.TaskStatusOpen})

	w := env.doJSON(t, "PUT", "/tasks/1", map[string]any{"title": "Clean the riverside park", "status": "closed"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Clean the riverside park", resp["title"])
	require.Equal(t, "closed", resp["status"])
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	env := setupTaskTestEnv(t)

	env.db.Create(&models.Task{Title: "Clean the park", Type: models.TaskTypeOther, Status: models.TaskStatusOpen})

	w := env.doJSON(t, "DELETE", "/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	env.db.Model(&models.Task{}).Count(&count)
	require.Zero(t, count)
}

func TestTaskHandler_DeleteTask_NotFound(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.doJSON(t, "DELETE", "/tasks/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
