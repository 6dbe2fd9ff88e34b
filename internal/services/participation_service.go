package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/citygarden/community-task-api/internal/logging"
	"github.com/citygarden/community-task-api/internal/models"
	"github.com/citygarden/community-task-api/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUserNameRequired             = errors.New("userName is required")
	ErrParticipationNotFound        = errors.New("participation not found")
	ErrParticipationNotReviewable   = errors.New("only submitted participations can be reviewed")
	ErrParticipationAlreadyApproved = errors.New("participation is already approved")
)

// ParticipationService owns the participation workflow: claim, submit, review.
type ParticipationService struct {
	participationRepo repository.ParticipationRepository
	taskRepo          repository.TaskRepository
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(participationRepo repository.ParticipationRepository, taskRepo repository.TaskRepository) *ParticipationService {
	return &ParticipationService{
		participationRepo: participationRepo,
		taskRepo:          taskRepo,
	}
}

// ClaimInput represents input for claiming a task
type ClaimInput struct {
	TaskID   uint64
	UserName string
}

// SubmitInput represents input for submitting proof of completion
type SubmitInput struct {
	TaskID    uint64
	UserName  string
	ProofNote string
}

// ReviewInput represents input for reviewing a submitted participation
type ReviewInput struct {
	ParticipationID uint64
	Approve         bool
	ReviewNote      string
}

// Claim records a user's intent to complete a task. Claiming is idempotent: a
// second claim by the same user on the same task returns the existing record
// unchanged.
func (s *ParticipationService) Claim(input ClaimInput) (*models.Participation, error) {
	userName := strings.TrimSpace(input.UserName)
	if userName == "" {
		return nil, ErrUserNameRequired
	}

	if err := s.ensureTaskExists(input.TaskID); err != nil {
		return nil, err
	}

	p, err := s.participationRepo.Claim(input.TaskID, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	return p, nil
}

// Submit marks a task complete for a user, attaching the proof note. A prior
// claim is optional; submitting with no existing record creates one directly
// in submitted. A rejected participation is reopened, an approved one is
// terminal and refused.
func (s *ParticipationService) Submit(input SubmitInput) (*models.Participation, error) {
	userName := strings.TrimSpace(input.UserName)
	if userName == "" {
		return nil, ErrUserNameRequired
	}

	if err := s.ensureTaskExists(input.TaskID); err != nil {
		return nil, err
	}

	existing, err := s.participationRepo.FindByTaskAndUser(input.TaskID, userName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find participation: %w", err)
	}
	if existing != nil && existing.Status == models.ParticipationStatusApproved {
		return nil, ErrParticipationAlreadyApproved
	}

	p, err := s.participationRepo.Submit(input.TaskID, userName, input.ProofNote)
	if err != nil {
		return nil, fmt.Errorf("failed to submit proof: %w", err)
	}

	return p, nil
}

// Review applies a community decision to a submitted participation. Approve
// sets the status to approved, otherwise rejected; the review note is stored
// verbatim.
func (s *ParticipationService) Review(input ReviewInput) (*models.Participation, error) {
	p, err := s.participationRepo.FindByID(input.ParticipationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipationNotFound
		}
		return nil, fmt.Errorf("failed to find participation: %w", err)
	}

	if p.Status != models.ParticipationStatusSubmitted {
		return nil, ErrParticipationNotReviewable
	}

	if input.Approve {
		p.Status = models.ParticipationStatusApproved
	} else {
		p.Status = models.ParticipationStatusRejected
	}
	p.ReviewNote = input.ReviewNote

	if err := s.participationRepo.Update(p); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	logging.Logger.WithFields(logrus.Fields{
		"participation_id": p.ID,
		"task_id":          p.TaskID,
		"status":           p.Status,
	}).Info("participation reviewed")

	return p, nil
}

// ListAll returns every participation with its task, newest first.
func (s *ParticipationService) ListAll() ([]models.Participation, error) {
	participations, err := s.participationRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return participations, nil
}

// ListPending returns the review queue: submitted participations with their
// task, oldest first.
func (s *ParticipationService) ListPending() ([]models.Participation, error) {
	participations, err := s.participationRepo.ListPending()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending participations: %w", err)
	}
	return participations, nil
}

func (s *ParticipationService) ensureTaskExists(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	return nil
}
