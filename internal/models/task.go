package models

import (
	"time"
)

type TaskType string

const (
	TaskTypeEnvironment TaskType = "environment"
	TaskTypeFacility    TaskType = "facility"
	TaskTypeDonation    TaskType = "donation"
	TaskTypeSharing     TaskType = "sharing"
	TaskTypeOther       TaskType = "other"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusClosed     TaskStatus = "closed"
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Type        TaskType   `gorm:"type:varchar(20);not null;default:'other'" json:"type"`
	Points      int        `gorm:"not null;default:10" json:"points"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	// Location (LBS)
	LocationName string  `gorm:"type:varchar(255)" json:"location_name"`
	Address      string  `gorm:"type:varchar(255)" json:"address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`

	CreatedByID *uint64 `json:"created_by_id"`

	// Validity window
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy      *User           `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Participations []Participation `gorm:"foreignKey:TaskID" json:"participations,omitempty"`
}

// ValidTaskType reports whether t is one of the allowed task types.
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskTypeEnvironment, TaskTypeFacility, TaskTypeDonation, TaskTypeSharing, TaskTypeOther:
		return true
	}
	return false
}

// ValidTaskStatus reports whether s is one of the allowed task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusClosed:
		return true
	}
	return false
}
