package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/citygarden/community-task-api/internal/dto"
	apierrors "github.com/citygarden/community-task-api/internal/errors"
	"github.com/citygarden/community-task-api/internal/logging"
	"github.com/citygarden/community-task-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ParticipationHandler coordinates the claim/submit/review HTTP endpoints.
type ParticipationHandler struct {
	participationService *services.ParticipationService
}

// NewParticipationHandler creates a new ParticipationHandler.
func NewParticipationHandler(participationService *services.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{
		participationService: participationService,
	}
}

// Claim records the caller's intent to complete a task.
func (h *ParticipationHandler) Claim(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	type ClaimRequest struct {
		UserName string `json:"userName"`
	}

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.participationService.Claim(services.ClaimInput{
		TaskID:   taskID,
		UserName: req.UserName,
	})
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipationDTO(*p))
}

// Submit records proof of completion for a task.
func (h *ParticipationHandler) Submit(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	type SubmitRequest struct {
		UserName  string `json:"userName"`
		ProofNote string `json:"proofNote"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.participationService.Submit(services.SubmitInput{
		TaskID:    taskID,
		UserName:  req.UserName,
		ProofNote: req.ProofNote,
	})
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipationDTO(*p))
}

// Review applies an approve/reject decision to a submitted participation.
func (h *ParticipationHandler) Review(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid participation id")
		return
	}

	type ReviewRequest struct {
		Approve    *bool  `json:"approve" binding:"required"`
		ReviewNote string `json:"reviewNote"`
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.participationService.Review(services.ReviewInput{
		ParticipationID: id,
		Approve:         *req.Approve,
		ReviewNote:      req.ReviewNote,
	})
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipationDTO(*p))
}

// ListAll returns every participation with its task, newest first.
func (h *ParticipationHandler) ListAll(c *gin.Context) {
	participations, err := h.participationService.ListAll()
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipationDTOs(participations))
}

// ListPending returns the review queue, oldest first.
func (h *ParticipationHandler) ListPending(c *gin.Context) {
	participations, err := h.participationService.ListPending()
	if err != nil {
		respondParticipationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToParticipationDTOs(participations))
}

func respondParticipationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNameRequired):
		apierrors.MissingField(c, "userName is required")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrParticipationNotFound):
		apierrors.NotFound(c, "Participation not found")
	case errors.Is(err, services.ErrParticipationNotReviewable):
		apierrors.Conflict(c, "Only submitted participations can be reviewed")
	case errors.Is(err, services.ErrParticipationAlreadyApproved):
		apierrors.Conflict(c, "Participation is already approved")
	default:
		logging.Logger.WithError(err).Error("participation request failed")
		apierrors.InternalError(c, "")
	}
}
