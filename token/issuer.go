package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/jrsteele09/go-contacts-server/internal/config"
)

// Pair is a freshly generated access/refresh token pair with expiries.
type Pair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Issuer generates opaque token pairs. It holds no state beyond its
// configuration; generation is crypto/rand plus a wall-clock read.
type Issuer struct {
	config  config.AuthConfig
	nowTime func() time.Time
}

// IssuerOption modifies an Issuer instance.
type IssuerOption func(*Issuer)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowTime = nowFunc
	}
}

// NewIssuer creates a token issuer with the configured token length and
// expiry windows.
func NewIssuer(cfg config.AuthConfig, options ...IssuerOption) *Issuer {
	issuer := &Issuer{
		config:  cfg,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(issuer)
	}
	return issuer
}

// IssuePair generates a new access/refresh token pair. Each token is
// built from the configured number of random bytes (minimum 30) encoded
// as standard base64.
func (i *Issuer) IssuePair() (*Pair, error) {
	accessToken, err := i.generateToken()
	if err != nil {
		return nil, fmt.Errorf("[IssuePair] access token: %w", err)
	}
	refreshToken, err := i.generateToken()
	if err != nil {
		return nil, fmt.Errorf("[IssuePair] refresh token: %w", err)
	}

	now := i.nowTime()
	return &Pair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  now.Add(i.config.GetAccessTokenExpiry()),
		RefreshExpiresAt: now.Add(i.config.GetRefreshTokenExpiry()),
	}, nil
}

func (i *Issuer) generateToken() (string, error) {
	length := i.config.GetTokenLength()
	if length < 30 {
		length = 30
	}
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}
