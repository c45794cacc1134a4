package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	"github.com/studyplan-dev/study-planner-api/pkg/config"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

type memorySessionRepo struct {
	sessions map[string]*models.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: map[string]*models.Session{}}
}

func (r *memorySessionRepo) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

func (r *memorySessionRepo) FindByID(ctx context.Context, id string) (*models.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *session
	return &copied, nil
}

func (r *memorySessionRepo) Rotate(ctx context.Context, id, refreshTokenHash string, expiresAt time.Time) error {
	if session, ok := r.sessions[id]; ok {
		session.RefreshTokenHash = refreshTokenHash
		session.ExpiresAt = expiresAt
	}
	return nil
}

func (r *memorySessionRepo) Revoke(ctx context.Context, id string) error {
	if session, ok := r.sessions[id]; ok {
		now := time.Now().UTC()
		session.RevokedAt = &now
	}
	return nil
}

type stubViewerSource struct {
	viewer *models.PlatformViewer
	err    error
}

func (s *stubViewerSource) FetchViewer(ctx context.Context, token string) (*models.PlatformViewer, error) {
	return s.viewer, s.err
}

func newTestAuthService(repo sessionRepository, platform viewerSource) *AuthService {
	return NewAuthService(repo, platform, nil, zap.NewNop(), config.AuthConfig{
		Secret:            "test-secret",
		Expiration:        time.Minute,
		RefreshExpiration: time.Hour,
		Issuer:            "study-planner-test",
	})
}

func TestLoginIssuesSession(t *testing.T) {
	repo := newMemorySessionRepo()
	svc := newTestAuthService(repo, &stubViewerSource{viewer: &models.PlatformViewer{ID: "u1", FullName: "Ada Lovelace"}})

	resp, err := svc.Login(context.Background(), models.LoginRequest{PlatformToken: "platform-tok"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "u1", resp.User.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.NotEmpty(t, claims.SessionID)

	token, err := svc.PlatformToken(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "platform-tok", token)
}

func TestLoginRejectsInvalidPlatformToken(t *testing.T) {
	repo := newMemorySessionRepo()
	svc := newTestAuthService(repo, &stubViewerSource{err: appErrors.Clone(appErrors.ErrUnauthorized, "platform rejected access token")})

	_, err := svc.Login(context.Background(), models.LoginRequest{PlatformToken: "bad"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.sessions)
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newMemorySessionRepo()
	svc := newTestAuthService(repo, &stubViewerSource{viewer: &models.PlatformViewer{ID: "u1"}})

	login, err := svc.Login(context.Background(), models.LoginRequest{PlatformToken: "platform-tok"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old secret is gone after rotation.
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
}

func TestRefreshMalformedToken(t *testing.T) {
	svc := newTestAuthService(newMemorySessionRepo(), &stubViewerSource{})
	_, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: "not-a-pair"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	repo := newMemorySessionRepo()
	svc := newTestAuthService(repo, &stubViewerSource{viewer: &models.PlatformViewer{ID: "u1"}})

	login, err := svc.Login(context.Background(), models.LoginRequest{PlatformToken: "platform-tok"})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.SessionID, "u1"))

	_, err = svc.PlatformToken(context.Background(), claims.SessionID)
	require.Error(t, err)

	err = svc.Logout(context.Background(), claims.SessionID, "someone-else")
	require.Error(t, err)
}
