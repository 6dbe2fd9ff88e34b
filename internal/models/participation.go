package models

import "time"

type ParticipationStatus string

const (
	ParticipationStatusClaimed   ParticipationStatus = "claimed"
	ParticipationStatusSubmitted ParticipationStatus = "submitted"
	ParticipationStatusApproved  ParticipationStatus = "approved"
	ParticipationStatusRejected  ParticipationStatus = "rejected"
)

// Participation records one user's progress against one task. The composite
// unique index on (task_id, user_name) is what makes claim and submit safe to
// run as upserts: at most one row can ever exist per pair.
type Participation struct {
	ID       uint64              `gorm:"primarykey" json:"id"`
	TaskID   uint64              `gorm:"not null;uniqueIndex:idx_participations_task_user" json:"task_id"`
	UserName string              `gorm:"type:varchar(255);not null;uniqueIndex:idx_participations_task_user" json:"user_name"`
	Status   ParticipationStatus `gorm:"type:varchar(20);not null;default:'claimed';index" json:"status"`

	ProofNote  string `gorm:"type:text" json:"proof_note"`
	ReviewNote string `gorm:"type:text" json:"review_note"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
