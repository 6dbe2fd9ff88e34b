package dto

import (
	"time"

	"github.com/citygarden/community-task-api/internal/models"
)

// ParticipationDTO represents a participation in API responses
type ParticipationDTO struct {
	ID         uint64                     `json:"id"`
	TaskID     uint64                     `json:"task_id"`
	UserName   string                     `json:"user_name"`
	Status     models.ParticipationStatus `json:"status"`
	ProofNote  string                     `json:"proof_note"`
	ReviewNote string                     `json:"review_note"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
	Task       *TaskDTO                   `json:"task,omitempty"`
}

// ToParticipationDTO converts a Participation model to ParticipationDTO
func ToParticipationDTO(p models.Participation) ParticipationDTO {
	dto := ParticipationDTO{
		ID:         p.ID,
		TaskID:     p.TaskID,
		UserName:   p.UserName,
		Status:     p.Status,
		ProofNote:  p.ProofNote,
		ReviewNote: p.ReviewNote,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}

	// Include task if preloaded
	if p.Task.ID != 0 {
		task := ToTaskDTO(p.Task)
		dto.Task = &task
	}

	return dto
}

// ToParticipationDTOs converts a slice of Participation models
func ToParticipationDTOs(participations []models.Participation) []ParticipationDTO {
	dtos := make([]ParticipationDTO, len(participations))
	for i, p := range participations {
		dtos[i] = ToParticipationDTO(p)
	}
	return dtos
}
