package reset_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/token/reset"
	"github.com/stretchr/testify/require"
)

const testEmail = "a@x.com"

func TestIssueAndVerify(t *testing.T) {
	signer := reset.NewSigner("secret", 5*time.Minute)

	tokenStr, err := signer.Issue(testEmail)
	require.NoError(t, err)

	email, err := signer.Verify(tokenStr)
	require.NoError(t, err)
	require.Equal(t, testEmail, email)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	signer := reset.NewSigner("secret", 5*time.Minute, reset.WithNowTime(func() time.Time { return now }))

	tokenStr, err := signer.Issue(testEmail)
	require.NoError(t, err)

	// Still valid one minute before expiry.
	now = now.Add(4 * time.Minute)
	_, err = signer.Verify(tokenStr)
	require.NoError(t, err)

	// Invalid one minute after.
	now = now.Add(2 * time.Minute)
	_, err = signer.Verify(tokenStr)
	require.ErrorIs(t, err, apperrors.ErrResetTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	signer := reset.NewSigner("secret", 5*time.Minute)
	forger := reset.NewSigner("other-secret", 5*time.Minute)

	tokenStr, err := forger.Issue(testEmail)
	require.NoError(t, err)

	_, err = signer.Verify(tokenStr)
	require.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	signer := reset.NewSigner("secret", 5*time.Minute)

	_, err := signer.Verify("not-a-jwt")
	require.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestVerify_ExpiredAndForgedShareMessage(t *testing.T) {
	require.Equal(t, apperrors.ErrResetTokenExpired.Error(), apperrors.ErrResetTokenInvalid.Error())
}
