package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wind28111988/QLCV-DLRR/internal/dto"
	apierrors "github.com/Wind28111988/QLCV-DLRR/internal/errors"
	"github.com/Wind28111988/QLCV-DLRR/internal/middleware"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/services"
)

// DelegationHandler coordinates task delegation HTTP handlers.
type DelegationHandler struct {
	delegationService *services.DelegationService
}

// NewDelegationHandler creates a new DelegationHandler.
func NewDelegationHandler(delegationService *services.DelegationService) *DelegationHandler {
	return &DelegationHandler{delegationService: delegationService}
}

// ListUnits returns every unit in the directory.
func (h *DelegationHandler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"units": h.delegationService.Units(),
	})
}

// ListTargets returns the users the current actor may delegate to in
// the requested unit. Defaults to the actor's own unit.
func (h *DelegationHandler) ListTargets(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	unit := c.DefaultQuery("unit", user.Unit)
	targets := h.delegationService.EligibleTargets(user, unit)

	c.JSON(http.StatusOK, gin.H{
		"unit":    unit,
		"targets": dto.ToUserDTOs(targets),
	})
}

// Assign creates a delegated task with an explicit lead.
func (h *DelegationHandler) Assign(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type AssignRequest struct {
		Content         string                `json:"content"`
		Complexity      models.TaskComplexity `json:"complexity" binding:"required,oneof=MEDIUM HARD VERY_HARD"`
		LeadID          string                `json:"leadId"`
		CollaboratorIDs []string              `json:"collaboratorIds"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.delegationService.Assign(user, services.AssignInput{
		Content:         req.Content,
		Complexity:      req.Complexity,
		LeadID:          req.LeadID,
		CollaboratorIDs: req.CollaboratorIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContentRequired),
			errors.Is(err, services.ErrLeadRequired):
			apierrors.ValidationError(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}
