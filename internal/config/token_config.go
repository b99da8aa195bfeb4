package config

import (
	"strconv"
	"time"
)

type TokenConfig interface {
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetSessionTokenTTL() time.Duration
}

type Tokens struct{}

var _ TokenConfig = Tokens{}

func (Tokens) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "change-me-in-production")
}

func (Tokens) GetAccessTokenExpiry() time.Duration {
	return durationEnv("JWT_EXPIRATION", time.Hour)
}

func (Tokens) GetRefreshTokenExpiry() time.Duration {
	return durationEnv("JWT_REFRESH_EXPIRATION", 7*24*time.Hour)
}

// GetSessionTokenTTL bounds the window between password verification and
// company selection during a multi-company login.
func (Tokens) GetSessionTokenTTL() time.Duration {
	return durationEnv("SESSION_TOKEN_TTL", 5*time.Minute)
}

// durationEnv reads a duration either as a Go duration string ("15m") or as
// plain milliseconds, matching the numeric format used by older deployments.
func durationEnv(envVar string, defaultValue time.Duration) time.Duration {
	raw := GetEnv(envVar, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
