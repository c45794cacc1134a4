package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

type systemStatsMock struct {
	snapshot models.SystemMetrics
	called   bool
}

func (m *systemStatsMock) Snapshot() models.SystemMetrics {
	m.called = true
	return m.snapshot
}

func TestSystemHandlerStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockStats := &systemStatsMock{snapshot: models.SystemMetrics{RequestsTotal: 42, CacheHitRatio: 0.5}}
	h := NewSystemHandler(mockStats)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/system/stats", nil)
	c.Request = req

	h.Stats(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockStats.called)
	assert.Contains(t, w.Body.String(), `"requests_total":42`)
	assert.Contains(t, w.Body.String(), `"cache_hit_ratio":0.5`)
}
