package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	"github.com/studyplan-dev/study-planner-api/internal/service"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
	"github.com/studyplan-dev/study-planner-api/pkg/response"
)

type planReader interface {
	MergedPlan(ctx context.Context, userID, token string) ([]models.Semester, error)
}

type planWriter interface {
	AddSemester(ctx context.Context, userID string, req service.AddSemesterRequest) (*models.PlanSemester, error)
	PlaceModule(ctx context.Context, userID, token string, req service.PlacementRequest) (*models.SemesterPlacement, error)
	RemoveModule(ctx context.Context, userID string, req service.RemovePlacementRequest) error
	DropTargets(ctx context.Context, userID, token, moduleID string) ([]service.DropTarget, error)
}

type tokenProvider interface {
	PlatformToken(ctx context.Context, sessionID string) (string, error)
}

// PlanHandler exposes the merged study plan and its mutations.
type PlanHandler struct {
	planner planReader
	plans   planWriter
	auth    tokenProvider
}

// NewPlanHandler constructs a plan handler.
func NewPlanHandler(planner planReader, plans planWriter, auth tokenProvider) *PlanHandler {
	return &PlanHandler{planner: planner, plans: plans, auth: auth}
}

func (h *PlanHandler) platformToken(c *gin.Context) (string, string, bool) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", "", false
	}
	token, err := h.auth.PlatformToken(c.Request.Context(), claims.SessionID)
	if err != nil {
		response.Error(c, err)
		return "", "", false
	}
	return claims.UserID, token, true
}

// GetPlan godoc
// @Summary Get the merged study plan
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /plan [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, token, ok := h.platformToken(c)
	if !ok {
		return
	}
	semesters, err := h.planner.MergedPlan(c.Request.Context(), userID, token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, semesters, nil)
}

// AddSemester godoc
// @Summary Add a semester to the plan
// @Tags Plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.AddSemesterRequest true "Semester payload"
// @Success 201 {object} response.Envelope
// @Router /plan/semesters [post]
func (h *PlanHandler) AddSemester(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.AddSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	semester, err := h.plans.AddSemester(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, semester)
}

// PlaceModule godoc
// @Summary Place a module into a semester category
// @Tags Plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.PlacementRequest true "Placement payload"
// @Success 200 {object} response.Envelope
// @Router /plan/placements [put]
func (h *PlanHandler) PlaceModule(c *gin.Context) {
	userID, token, ok := h.platformToken(c)
	if !ok {
		return
	}
	var req service.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	placement, err := h.plans.PlaceModule(c.Request.Context(), userID, token, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, placement, nil)
}

// RemoveModule godoc
// @Summary Remove a module from a semester
// @Tags Plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.RemovePlacementRequest true "Removal payload"
// @Success 204
// @Router /plan/placements [delete]
func (h *PlanHandler) RemoveModule(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.RemovePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.plans.RemoveModule(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DropTargets godoc
// @Summary Evaluate drop targets for a dragged module
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Param moduleId query string true "Dragged module id"
// @Success 200 {object} response.Envelope
// @Router /plan/drop-targets [get]
func (h *PlanHandler) DropTargets(c *gin.Context) {
	userID, token, ok := h.platformToken(c)
	if !ok {
		return
	}
	moduleID := c.Query("moduleId")
	if moduleID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "moduleId is required"))
		return
	}
	targets, err := h.plans.DropTargets(c.Request.Context(), userID, token, moduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, targets, nil)
}
