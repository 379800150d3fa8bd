package config

import "time"

type AuthConfig interface {
	GetTokenLength() int
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetResetTokenExpiry() time.Duration
	GetBcryptCost() int
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetTokenLength() int {
	return 30 // 30 random bytes per opaque token
}

func (Auth) GetAccessTokenExpiry() time.Duration {
	return 15 * time.Minute
}

func (Auth) GetRefreshTokenExpiry() time.Duration {
	return 24 * time.Hour
}

func (Auth) GetResetTokenExpiry() time.Duration {
	return 5 * time.Minute
}

func (Auth) GetBcryptCost() int {
	return 10
}
