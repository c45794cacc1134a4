package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyplan-dev/study-planner-api/internal/middleware"
	"github.com/studyplan-dev/study-planner-api/internal/models"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

type authenticatorMock struct {
	loginResp    *models.LoginResponse
	loginErr     error
	refreshResp  *models.RefreshTokenResponse
	refreshErr   error
	logoutErr    error
	loginCalled  bool
	logoutCalled bool
}

func (m *authenticatorMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.loginCalled = true
	return m.loginResp, m.loginErr
}

func (m *authenticatorMock) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	return m.refreshResp, m.refreshErr
}

func (m *authenticatorMock) Logout(ctx context.Context, sessionID, userID string) error {
	m.logoutCalled = true
	return m.logoutErr
}

func TestAuthHandlerLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &authenticatorMock{loginResp: &models.LoginResponse{AccessToken: "jwt", RefreshToken: "sess.secret"}}
	h := NewAuthHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"platform_token":"tok"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.loginCalled)
	assert.Contains(t, w.Body.String(), "sess.secret")
}

func TestAuthHandlerLoginInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&authenticatorMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"platform_token":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&authenticatorMock{loginErr: appErrors.Clone(appErrors.ErrUnauthorized, "platform rejected access token")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"platform_token":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &authenticatorMock{}
	h := NewAuthHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", SessionID: "sess-1"})

	h.Logout(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.logoutCalled)
}

func TestAuthHandlerLogoutWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&authenticatorMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	c.Request = req

	h.Logout(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
