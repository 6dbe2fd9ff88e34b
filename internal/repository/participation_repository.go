package repository

import (
	"github.com/citygarden/community-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParticipationRepository is a GORM implementation of ParticipationRepository
type GormParticipationRepository struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &GormParticipationRepository{db: db}
}

// FindByID finds a participation by ID with optional preloading
func (r *GormParticipationRepository) FindByID(id uint64, preload ...string) (*models.Participation, error) {
	var p models.Participation
	query := r.db

	for _, pre := range preload {
		query = query.Preload(pre)
	}

	if err := query.First(&p, id).Error; err != nil {
		return nil, err
	}

	return &p, nil
}

// FindByTaskAndUser finds the participation for a (task, user) pair
func (r *GormParticipationRepository) FindByTaskAndUser(taskID uint64, userName string) (*models.Participation, error) {
	var p models.Participation
	if err := r.db.Where("task_id = ? AND user_name = ?", taskID, userName).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Claim inserts a claimed participation for the pair. When a row for the pair
// already exists the insert is a no-op and the existing row is returned
// unchanged, so concurrent claims settle on a single record.
func (r *GormParticipationRepository) Claim(taskID uint64, userName string) (*models.Participation, error) {
	p := models.Participation{
		TaskID:   taskID,
		UserName: userName,
		Status:   models.ParticipationStatusClaimed,
	}

	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_name"}},
			DoNothing: true,
		}).
		Create(&p).Error
	if err != nil {
		return nil, err
	}

	// Read back the canonical row; on conflict the insert returned no ID.
	return r.FindByTaskAndUser(taskID, userName)
}

// Submit inserts a submitted participation for the pair, or moves the existing
// row to submitted and overwrites its proof note in the same statement.
func (r *GormParticipationRepository) Submit(taskID uint64, userName, proofNote string) (*models.Participation, error) {
	p := models.Participation{
		TaskID:    taskID,
		UserName:  userName,
		Status:    models.ParticipationStatusSubmitted,
		ProofNote: proofNote,
	}

	err := r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "task_id"}, {Name: "user_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     models.ParticipationStatusSubmitted,
				"proof_note": proofNote,
			}),
		}).
		Create(&p).Error
	if err != nil {
		return nil, err
	}

	return r.FindByTaskAndUser(taskID, userName)
}

// Update updates a participation
func (r *GormParticipationRepository) Update(p *models.Participation) error {
	return r.db.Save(p).Error
}

// ListAll returns all participations with their task, newest first
func (r *GormParticipationRepository) ListAll() ([]models.Participation, error) {
	var participations []models.Participation
	if err := r.db.Preload("Task").
		Order("created_at DESC").
		Find(&participations).Error; err != nil {
		return nil, err
	}
	return participations, nil
}

// ListPending returns submitted participations with their task, oldest first
// so reviewers clear the longest-waiting items first.
func (r *GormParticipationRepository) ListPending() ([]models.Participation, error) {
	var participations []models.Participation
	if err := r.db.Preload("Task").
		Where("status = ?", models.ParticipationStatusSubmitted).
		Order("created_at ASC").
		Find(&participations).Error; err != nil {
		return nil, err
	}
	return participations, nil
}
