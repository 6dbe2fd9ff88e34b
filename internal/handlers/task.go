package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/citygarden/community-task-api/internal/dto"
	apierrors "github.com/citygarden/community-task-api/internal/errors"
	"github.com/citygarden/community-task-api/internal/logging"
	"github.com/citygarden/community-task-api/internal/middleware"
	"github.com/citygarden/community-task-api/internal/models"
	"github.com/citygarden/community-task-api/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task HTTP endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new community task. A logged-in session, when present,
// is recorded as the creator.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		Type         string     `json:"type"`
		Points       *int       `json:"points"`
		Status       string     `json:"status"`
		LocationName string     `json:"location_name"`
		Address      string     `json:"address"`
		Lat          float64    `json:"lat"`
		Lng          float64    `json:"lng"`
		StartTime    *time.Time `json:"start_time"`
		EndTime      *time.Time `json:"end_time"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Type:         models.TaskType(req.Type),
		Points:       req.Points,
		Status:       models.TaskStatus(req.Status),
		LocationName: req.LocationName,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}

	if userID, ok := middleware.GetUserID(c); ok {
		input.CreatedByID = &userID
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates mutable fields of an existing task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	type UpdateTaskRequest struct {
		Title        *string    `json:"title"`
		Description  *string    `json:"description"`
		Type         *string    `json:"type"`
		Points       *int       `json:"points"`
		Status       *string    `json:"status"`
		LocationName *string    `json:"location_name"`
		Address      *string    `json:"address"`
		Lat          *float64   `json:"lat"`
		Lng          *float64   `json:"lng"`
		StartTime    *time.Time `json:"start_time"`
		EndTime      *time.Time `json:"end_time"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Points:       req.Points,
		LocationName: req.LocationName,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if req.Type != nil {
		t := models.TaskType(*req.Type)
		input.Type = &t
	}
	if req.Status != nil {
		s := models.TaskStatus(*req.Status)
		input.Status = &s
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.MissingField(c, "title is required")
	case errors.Is(err, services.ErrInvalidTaskType):
		apierrors.BadRequest(c, "Invalid task type")
	case errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, "Invalid task status")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		logging.Logger.WithError(err).Error("task request failed")
		apierrors.InternalError(c, "")
	}
}
