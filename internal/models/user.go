package models

import "time"

type UserRole string

const (
	RoleCitizen   UserRole = "citizen"
	RoleCommunity UserRole = "community"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           uint64   `gorm:"primarykey" json:"id"`
	Name         string   `gorm:"type:varchar(255);not null" json:"name"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'citizen'" json:"role"`
	Points       int      `gorm:"not null;default:0" json:"points"`
	Level        int      `gorm:"not null;default:1" json:"level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedTasks []Task `gorm:"foreignKey:CreatedByID" json:"-"`
}
