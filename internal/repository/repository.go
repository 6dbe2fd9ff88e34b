package repository

import (
	"github.com/citygarden/community-task-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List returns all tasks, newest first
	List() ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// ParticipationRepository defines the interface for participation data access.
// Claim and Submit are atomic upserts against the (task_id, user_name) unique
// index; callers never do a separate find-then-create.
type ParticipationRepository interface {
	// FindByID finds a participation by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Participation, error)

	// FindByTaskAndUser finds the participation for a (task, user) pair
	FindByTaskAndUser(taskID uint64, userName string) (*models.Participation, error)

	// Claim inserts a claimed participation for the pair, or returns the
	// existing one unchanged
	Claim(taskID uint64, userName string) (*models.Participation, error)

	// Submit inserts a submitted participation for the pair, or moves the
	// existing one to submitted with the given proof note
	Submit(taskID uint64, userName, proofNote string) (*models.Participation, error)

	// Update updates a participation
	Update(p *models.Participation) error

	// ListAll returns all participations with their task, newest first
	ListAll() ([]models.Participation, error)

	// ListPending returns submitted participations with their task, oldest first
	ListPending() ([]models.Participation, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
