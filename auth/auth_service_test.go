package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-contacts-server/auth"
	"github.com/jrsteele09/go-contacts-server/internal/config"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/mail"
	sessionrepofake "github.com/jrsteele09/go-contacts-server/sessions/repofake"
	"github.com/jrsteele09/go-contacts-server/token"
	"github.com/jrsteele09/go-contacts-server/token/reset"
	userrepofake "github.com/jrsteele09/go-contacts-server/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testUserName     = "John Doe"
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "password123"
	testSecret       = "test-signing-secret"
)

// fakeMailer captures sent messages and can be told to fail.
type fakeMailer struct {
	sent    []mail.Message
	sendErr error
}

func (m *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

// testFixture holds all test dependencies with a controllable clock.
type testFixture struct {
	userRepo    *userrepofake.FakeUserRepo
	sessionRepo *sessionrepofake.FakeSessionRepo
	mailer      *fakeMailer
	service     *auth.Service
	now         time.Time
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		userRepo:    userrepofake.NewFakeUserRepo(),
		sessionRepo: sessionrepofake.NewFakeSessionRepo(),
		mailer:      &fakeMailer{},
		now:         time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	nowFunc := func() time.Time { return f.now }

	cfg := config.Auth{}
	issuer := token.NewIssuer(cfg, token.WithNowTime(nowFunc))
	signer := reset.NewSigner(testSecret, cfg.GetResetTokenExpiry(), reset.WithNowTime(nowFunc))

	service, err := auth.NewService(
		auth.Repos{Users: f.userRepo, Sessions: f.sessionRepo},
		issuer,
		signer,
		f.mailer,
		cfg,
		auth.WithNowTime(nowFunc),
		auth.WithResetMailLink("noreply@example.com", "http://localhost:3000"),
	)
	require.NoError(t, err)

	f.service = service
	return f
}

func (f *testFixture) registerTestUser(t *testing.T) {
	t.Helper()
	_, err := f.service.Register(context.Background(), testUserName, testUserEmail, testUserPassword)
	require.NoError(t, err)
}

func (f *testFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestRegister_Success(t *testing.T) {
	f := setupTestFixture(t)

	user, err := f.service.Register(context.Background(), testUserName, testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, testUserEmail, user.Email)
	require.NotEqual(t, testUserPassword, user.PasswordHash)

	stored, err := f.userRepo.GetByEmail(context.Background(), testUserEmail)
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.ID)
}

func TestRegister_EmailInUse(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	_, err := f.service.Register(context.Background(), "Other", testUserEmail, "otherPassword1")
	require.ErrorIs(t, err, apperrors.ErrEmailInUse)
}

func TestLogin_Success(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.Equal(t, f.now.Add(15*time.Minute), pair.AccessExpiresAt)
	require.Equal(t, f.now.Add(24*time.Hour), pair.RefreshExpiresAt)
}

func TestLogin_UnknownUserAndWrongPasswordIndistinguishable(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	_, errUnknown := f.service.Login(context.Background(), "nobody@example.com", testUserPassword)
	_, errWrongPwd := f.service.Login(context.Background(), testUserEmail, "wrong-password")

	require.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPwd, apperrors.ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrongPwd.Error())
}

func TestLogin_ReplacesExistingSession(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	first, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	// A second login invalidates the first session immediately.
	second, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	user, err := f.userRepo.GetByEmail(ctx, testUserEmail)
	require.NoError(t, err)
	require.Equal(t, 1, f.sessionRepo.CountForUser(user.ID))

	_, err = f.service.Authenticate(ctx, first.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	resolved, err := f.service.Authenticate(ctx, second.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testUserEmail, resolved.Email)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	t1, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	t2, err := f.service.Refresh(ctx, t1.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, t1.RefreshToken, t2.RefreshToken)
	require.NotEqual(t, t1.AccessToken, t2.AccessToken)

	// The old refresh token is permanently invalid after rotation.
	_, err = f.service.Refresh(ctx, t1.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// The new pair works.
	_, err = f.service.Refresh(ctx, t2.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_UnknownToken(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background(), "no-such-token")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefresh_ExpiredTokenDeletesSession(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	f.advance(24*time.Hour + time.Minute)

	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)

	user, err := f.userRepo.GetByEmail(ctx, testUserEmail)
	require.NoError(t, err)
	require.Equal(t, 0, f.sessionRepo.CountForUser(user.ID))

	// Idempotent: the session is gone, never resurrected.
	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthenticate_ResolvesUserWithinValidity(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	f.advance(10 * time.Minute)
	user, err := f.service.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testUserEmail, user.Email)
}

func TestAuthenticate_ExpiredAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	// Record still exists but expiry is evaluated lazily.
	f.advance(16 * time.Minute)
	_, err = f.service.Authenticate(ctx, pair.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestAuthenticate_MissingAndUnknownTokens(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Authenticate(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrMissingToken)

	_, err = f.service.Authenticate(context.Background(), "unknown-token")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestAuthenticate_UserDeletedOutOfBand(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	user, err := f.userRepo.GetByEmail(ctx, testUserEmail)
	require.NoError(t, err)
	f.userRepo.Delete(user.ID)

	_, err = f.service.Authenticate(ctx, pair.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLogout_Success(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	pair, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, pair.RefreshToken))

	_, err = f.service.Authenticate(ctx, pair.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	// Already logged out behaves like a forged token.
	require.ErrorIs(t, f.service.Logout(ctx, pair.RefreshToken), apperrors.ErrInvalidToken)
}

func TestRequestPasswordReset_SendsMailWithResetLink(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), testUserEmail))

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	require.Equal(t, testUserEmail, msg.To)
	require.Equal(t, "noreply@example.com", msg.From)
	require.Contains(t, msg.Text, "http://localhost:3000/reset-password?token=")
	require.Contains(t, msg.HTML, "http://localhost:3000/reset-password?token=")
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	require.Empty(t, f.mailer.sent)
}

func TestRequestPasswordReset_MailFailurePropagates(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	f.mailer.sendErr = errors.New("smtp unreachable")

	err := f.service.RequestPasswordReset(context.Background(), testUserEmail)
	require.Error(t, err)
	require.NotErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestResetPassword_ChangesPasswordAndClearsSessions(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	_, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.RequestPasswordReset(ctx, testUserEmail))
	resetToken := tokenFromResetMail(t, f.mailer.sent[0])

	f.advance(4 * time.Minute)
	require.NoError(t, f.service.ResetPassword(ctx, resetToken, "newPassword456"))

	user, err := f.userRepo.GetByEmail(ctx, testUserEmail)
	require.NoError(t, err)
	require.Equal(t, 0, f.sessionRepo.CountForUser(user.ID))

	_, err = f.service.Login(ctx, testUserEmail, testUserPassword)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, testUserEmail, "newPassword456")
	require.NoError(t, err)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	require.NoError(t, f.service.RequestPasswordReset(ctx, testUserEmail))
	resetToken := tokenFromResetMail(t, f.mailer.sent[0])

	f.advance(6 * time.Minute)
	err := f.service.ResetPassword(ctx, resetToken, "newPassword456")
	require.ErrorIs(t, err, apperrors.ErrResetTokenExpired)
}

func TestResetPassword_ForgedToken(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.ResetPassword(context.Background(), "not-a-real-token", "newPassword456")
	require.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestResetPassword_UserDeletedAfterIssue(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t)
	ctx := context.Background()

	require.NoError(t, f.service.RequestPasswordReset(ctx, testUserEmail))
	resetToken := tokenFromResetMail(t, f.mailer.sent[0])

	user, err := f.userRepo.GetByEmail(ctx, testUserEmail)
	require.NoError(t, err)
	f.userRepo.Delete(user.ID)

	err = f.service.ResetPassword(ctx, resetToken, "newPassword456")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestNewService_MissingDependencies(t *testing.T) {
	cfg := config.Auth{}
	issuer := token.NewIssuer(cfg)
	signer := reset.NewSigner(testSecret, cfg.GetResetTokenExpiry())
	mailer := &fakeMailer{}
	userRepo := userrepofake.NewFakeUserRepo()
	sessionRepo := sessionrepofake.NewFakeSessionRepo()

	_, err := auth.NewService(auth.Repos{Sessions: sessionRepo}, issuer, signer, mailer, cfg)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Users: userRepo}, issuer, signer, mailer, cfg)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Users: userRepo, Sessions: sessionRepo}, nil, signer, mailer, cfg)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Users: userRepo, Sessions: sessionRepo}, issuer, nil, mailer, cfg)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Users: userRepo, Sessions: sessionRepo}, issuer, signer, nil, cfg)
	require.Error(t, err)
}

func tokenFromResetMail(t *testing.T, msg mail.Message) string {
	t.Helper()
	const marker = "token="
	idx := strings.Index(msg.Text, marker)
	require.GreaterOrEqual(t, idx, 0, "reset mail should contain a token")
	return msg.Text[idx+len(marker):]
}
