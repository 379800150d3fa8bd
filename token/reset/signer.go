// Package reset issues and verifies password-reset tokens. Unlike session
// tokens, which are opaque strings validated against the session store,
// reset tokens are self-contained signed claims: validity is established by
// signature and embedded expiry alone. They cannot be revoked early except
// by rotating the signing secret.
package reset

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-contacts-server/internal/errors"
)

// Signer creates and verifies signed reset tokens carrying an email claim.
type Signer struct {
	secret  []byte
	ttl     time.Duration
	nowTime func() time.Time
}

// SignerOption modifies a Signer instance.
type SignerOption func(*Signer)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SignerOption {
	return func(s *Signer) {
		s.nowTime = nowFunc
	}
}

// NewSigner creates a reset token signer using the process-wide secret.
func NewSigner(secret string, ttl time.Duration, options ...SignerOption) *Signer {
	signer := &Signer{
		secret:  []byte(secret),
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(signer)
	}
	return signer
}

// Issue produces a signed token embedding the email claim with the
// configured expiry.
func (s *Signer) Issue(email string) (string, error) {
	now := s.nowTime()
	claims := jwtlib.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("[Issue] failed to sign reset token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded email.
// Expired tokens return ErrResetTokenExpired; any other verification
// failure returns ErrResetTokenInvalid.
func (s *Signer) Verify(tokenStr string) (string, error) {
	token, err := jwtlib.Parse(tokenStr, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	}, jwtlib.WithTimeFunc(s.nowTime))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return "", errors.ErrResetTokenExpired
		}
		return "", errors.ErrResetTokenInvalid
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || !token.Valid {
		return "", errors.ErrResetTokenInvalid
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.ErrResetTokenInvalid
	}
	return email, nil
}
