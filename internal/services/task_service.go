package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/citygarden/community-task-api/internal/models"
	"github.com/citygarden/community-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidTaskType   = errors.New("invalid task type")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	Type         models.TaskType
	Points       *int
	Status       models.TaskStatus
	LocationName string
	Address      string
	Lat          float64
	Lng          float64
	CreatedByID  *uint64
	StartTime    *time.Time
	EndTime      *time.Time
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Type         *models.TaskType
	Points       *int
	Status       *models.TaskStatus
	LocationName *string
	Address      *string
	Lat          *float64
	Lng          *float64
	StartTime    *time.Time
	EndTime      *time.Time
}

// ListTasks returns all tasks, newest first
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a new task after validating required fields and the
// enumerated type/status values, applying defaults where the input is silent.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Type == "" {
		input.Type = models.TaskTypeOther
	} else if !models.ValidTaskType(input.Type) {
		return nil, ErrInvalidTaskType
	}

	if input.Status == "" {
		input.Status = models.TaskStatusOpen
	} else if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	points := 10
	if input.Points != nil {
		points = *input.Points
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Type:         input.Type,
		Points:       points,
		Status:       input.Status,
		LocationName: input.LocationName,
		Address:      input.Address,
		Lat:          input.Lat,
		Lng:          input.Lng,
		CreatedByID:  input.CreatedByID,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask updates an existing task
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Type != nil {
		if !models.ValidTaskType(*input.Type) {
			return nil, ErrInvalidTaskType
		}
		task.Type = *input.Type
	}
	if input.Points != nil {
		task.Points = *input.Points
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.LocationName != nil {
		task.LocationName = *input.LocationName
	}
	if input.Address != nil {
		task.Address = *input.Address
	}
	if input.Lat != nil {
		task.Lat = *input.Lat
	}
	if input.Lng != nil {
		task.Lng = *input.Lng
	}
	if input.StartTime != nil {
		task.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		task.EndTime = input.EndTime
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
