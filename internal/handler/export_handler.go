package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyplan-dev/study-planner-api/internal/service"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
	"github.com/studyplan-dev/study-planner-api/pkg/response"
)

type planExporter interface {
	Export(ctx context.Context, userID, token string, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler serves plan exports.
type ExportHandler struct {
	exports planExporter
	auth    tokenProvider
}

// NewExportHandler constructs an export handler.
func NewExportHandler(exports planExporter, auth tokenProvider) *ExportHandler {
	return &ExportHandler{exports: exports, auth: auth}
}

// Export godoc
// @Summary Export the merged plan
// @Tags Plan
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string true "Export format (csv or pdf)"
// @Success 200
// @Router /plan/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
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

	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Export(c.Request.Context(), claims.UserID, token, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
