package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultAccessTokenTTL  = time.Hour
	defaultRefreshTokenTTL = 720 * time.Hour
	defaultConnMaxLifetime = time.Hour
)

// AccessTokenTTL is the configured access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return durationOr("jwt.access_token_expiration", c.JWT.AccessTokenExpiration, defaultAccessTokenTTL)
}

// RefreshTokenTTL is the configured refresh token lifetime.
func (c *Config) RefreshTokenTTL() time.Duration {
	return durationOr("jwt.refresh_token_expiration", c.JWT.RefreshTokenExpiration, defaultRefreshTokenTTL)
}

// ConnMaxLifetime is how long a pooled database connection may live.
func (c *Config) ConnMaxLifetime() time.Duration {
	return durationOr("database.conn_max_lifetime", c.Database.ConnMaxLifetime, defaultConnMaxLifetime)
}

// durationOr parses value, falling back when it is empty, malformed or not
// positive. LoadConfig rejects malformed values, so the fallback only
// applies to hand-built configs.
func durationOr(key, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn().Err(err).Str("key", key).Str("value", value).Dur("default", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}
