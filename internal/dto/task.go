package dto

import (
	"time"

	"github.com/citygarden/community-task-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID     uint64          `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	Points int             `json:"points"`
	Level  int             `json:"level"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Type         models.TaskType   `json:"type"`
	Points       int               `json:"points"`
	Status       models.TaskStatus `json:"status"`
	LocationName string            `json:"location_name"`
	Address      string            `json:"address"`
	Lat          float64           `json:"lat"`
	Lng          float64           `json:"lng"`
	CreatedByID  *uint64           `json:"created_by_id"`
	StartTime    *time.Time        `json:"start_time"`
	EndTime      *time.Time        `json:"end_time"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Points: user.Points,
		Level:  user.Level,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Type:         task.Type,
		Points:       task.Points,
		Status:       task.Status,
		LocationName: task.LocationName,
		Address:      task.Address,
		Lat:          task.Lat,
		Lng:          task.Lng,
		CreatedByID:  task.CreatedByID,
		StartTime:    task.StartTime,
		EndTime:      task.EndTime,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
