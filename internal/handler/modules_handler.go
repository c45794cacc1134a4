package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
	"github.com/studyplan-dev/study-planner-api/pkg/response"
)

type moduleSearcher interface {
	Search(ctx context.Context, userID, token string, filter models.ModuleFilter) ([]models.Module, error)
}

// ModulesHandler exposes catalog search.
type ModulesHandler struct {
	search moduleSearcher
	auth   tokenProvider
}

// NewModulesHandler constructs a modules handler.
func NewModulesHandler(search moduleSearcher, auth tokenProvider) *ModulesHandler {
	return &ModulesHandler{search: search, auth: auth}
}

// Search godoc
// @Summary Search the module catalog
// @Tags Modules
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free-text query"
// @Param early query bool false "Only modules allowing early assessment"
// @Param alternative query bool false "Only modules allowing alternative assessment"
// @Param passed query bool false "Only passed modules"
// @Param failed query bool false "Only failed modules"
// @Param notTaken query bool false "Only modules without assessments"
// @Param mySemester query bool false "Only modules of the active semester"
// @Success 200 {object} response.Envelope
// @Router /modules [get]
func (h *ModulesHandler) Search(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	token, err := h.auth.PlatformToken(c.Request.Context(), claims.SessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := models.ParseModuleFilter(c.Request.URL.Query())
	modules, err := h.search.Search(c.Request.Context(), claims.UserID, token, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modules, nil)
}
