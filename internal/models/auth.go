package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the session claims carried in access tokens.
type JWTClaims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	FullName  string `json:"name"`
	jwt.RegisteredClaims
}

// Session is a persisted login session. The refresh secret is stored as a
// bcrypt hash; the platform token is kept to call the learning platform on
// the user's behalf.
type Session struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"user_id"`
	RefreshTokenHash string     `db:"refresh_token_hash" json:"-"`
	PlatformToken    string     `db:"platform_token" json:"-"`
	ExpiresAt        time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	RevokedAt        *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	LastRefreshedAt  *time.Time `db:"last_refreshed_at" json:"-"`
	UserAgent        string     `db:"user_agent" json:"-"`
	IPAddress        string     `db:"ip_address" json:"-"`
}

// Revoked reports whether the session has been revoked.
func (s *Session) Revoked() bool {
	return s.RevokedAt != nil
}

// PlatformViewer is the identity returned by the learning platform for a
// valid access token.
type PlatformViewer struct {
	ID       string `json:"id"`
	FullName string `json:"name"`
	Email    string `json:"email"`
}

// LoginRequest exchanges a learning-platform access token for a session.
type LoginRequest struct {
	PlatformToken string `json:"platform_token" validate:"required"`
	IP            string `json:"-"`
	UserAgent     string `json:"-"`
}

// LoginResponse carries the issued session tokens.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
	IssuedAt     time.Time      `json:"issued_at"`
	User         PlatformViewer `json:"user"`
}

// RefreshTokenRequest rotates a refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	IP           string `json:"-"`
	UserAgent    string `json:"-"`
}

// RefreshTokenResponse carries the rotated token pair.
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	IssuedAt     time.Time `json:"issued_at"`
}
