package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	"github.com/studyplan-dev/study-planner-api/pkg/config"
	appErrors "github.com/studyplan-dev/study-planner-api/pkg/errors"
)

type sessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Rotate(ctx context.Context, id, refreshTokenHash string, expiresAt time.Time) error
	Revoke(ctx context.Context, id string) error
}

type viewerSource interface {
	FetchViewer(ctx context.Context, token string) (*models.PlatformViewer, error)
}

// AuthService exchanges learning-platform access tokens for first-party
// sessions. Refresh tokens are "<session id>.<secret>" pairs; only the bcrypt
// hash of the secret is stored.
type AuthService struct {
	sessions  sessionRepository
	platform  viewerSource
	validator *validator.Validate
	logger    *zap.Logger
	config    config.AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(sessions sessionRepository, platform viewerSource, validate *validator.Validate, logger *zap.Logger, cfg config.AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{sessions: sessions, platform: platform, validator: validate, logger: logger, config: cfg}
}

// Login validates the platform token against the learning platform and opens
// a session carrying it.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	viewer, err := s.platform.FetchViewer(ctx, req.PlatformToken)
	if err != nil {
		return nil, err
	}

	secret, err := s.generateSecret()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create refresh token")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash refresh token")
	}

	session := &models.Session{
		UserID:           viewer.ID,
		RefreshTokenHash: string(hash),
		PlatformToken:    req.PlatformToken,
		ExpiresAt:        time.Now().UTC().Add(s.config.RefreshExpiration),
		UserAgent:        req.UserAgent,
		IPAddress:        req.IP,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	accessToken, err := s.generateAccessToken(viewer, session.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: session.ID + "." + secret,
		ExpiresIn:    int64(s.config.Expiration.Seconds()),
		IssuedAt:     time.Now().UTC(),
		User:         *viewer,
	}, nil
}

// RefreshToken rotates the session's refresh secret and issues a new access token.
func (s *AuthService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid refresh payload")
	}

	sessionID, secret, ok := splitRefreshToken(req.RefreshToken)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "malformed refresh token")
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.Revoked() || time.Now().UTC().After(session.ExpiresAt) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session is expired or revoked")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(session.RefreshTokenHash), []byte(secret)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token mismatch")
	}

	newSecret, err := s.generateSecret()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rotate refresh token")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash refresh token")
	}
	expiresAt := time.Now().UTC().Add(s.config.RefreshExpiration)
	if err := s.sessions.Rotate(ctx, session.ID, string(newHash), expiresAt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rotate session")
	}

	accessToken, err := s.generateAccessToken(&models.PlatformViewer{ID: session.UserID}, session.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: session.ID + "." + newSecret,
		ExpiresIn:    int64(s.config.Expiration.Seconds()),
		IssuedAt:     time.Now().UTC(),
	}, nil
}

// Logout revokes the session.
func (s *AuthService) Logout(ctx context.Context, sessionID, userID string) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrUnauthorized, "session not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.UserID != userID {
		return appErrors.Clone(appErrors.ErrForbidden, "session does not belong to user")
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}
	return nil
}

// PlatformToken returns the learning-platform token held by a live session.
func (s *AuthService) PlatformToken(ctx context.Context, sessionID string) (string, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrUnauthorized, "session not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.Revoked() || time.Now().UTC().After(session.ExpiresAt) {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "session is expired or revoked")
	}
	return session.PlatformToken, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(viewer *models.PlatformViewer, sessionID string) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID:    viewer.ID,
		SessionID: sessionID,
		FullName:  viewer.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   viewer.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *AuthService) generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func splitRefreshToken(token string) (string, string, bool) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
