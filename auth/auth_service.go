package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-contacts-server/internal/config"
	"github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/mail"
	"github.com/jrsteele09/go-contacts-server/sessions"
	"github.com/jrsteele09/go-contacts-server/token"
	"github.com/jrsteele09/go-contacts-server/token/reset"
	"github.com/jrsteele09/go-contacts-server/users"
)

// Repos holds the repository dependencies for the Service.
type Repos struct {
	Users    users.Repo    // Credential store
	Sessions sessions.Repo // Session store
}

// Service orchestrates the session lifecycle: registration, login, refresh,
// logout, bearer-token authentication and the password reset flow.
//
// Login, refresh and reset all sequence "delete old session(s)" strictly
// before "create new session", so a failure between the two steps leaves a
// user with zero sessions rather than two valid ones.
type Service struct {
	repos       Repos
	issuer      *token.Issuer
	resetSigner *reset.Signer
	mailer      mail.Mailer
	config      config.AuthConfig
	appDomain   string
	mailFrom    string
	nowTime     func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithResetMailLink configures the sender address and public domain used in
// password-reset emails.
func WithResetMailLink(mailFrom, appDomain string) ServiceOption {
	return func(s *Service) {
		s.mailFrom = mailFrom
		s.appDomain = appDomain
	}
}

// NewService initializes a Service with its required dependencies.
func NewService(
	repos Repos,
	issuer *token.Issuer,
	resetSigner *reset.Signer,
	mailer mail.Mailer,
	cfg config.AuthConfig,
	options ...ServiceOption,
) (*Service, error) {
	if repos.Users == nil {
		return nil, fmt.Errorf("[NewService] Users repo is required")
	}
	if repos.Sessions == nil {
		return nil, fmt.Errorf("[NewService] Sessions repo is required")
	}
	if issuer == nil {
		return nil, fmt.Errorf("[NewService] token issuer is required")
	}
	if resetSigner == nil {
		return nil, fmt.Errorf("[NewService] reset signer is required")
	}
	if mailer == nil {
		return nil, fmt.Errorf("[NewService] mailer is required")
	}

	service := &Service{
		repos:       repos,
		issuer:      issuer,
		resetSigner: resetSigner,
		mailer:      mailer,
		config:      cfg,
		nowTime:     time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Register creates a new user with a bcrypt-hashed password. Fails with
// ErrEmailInUse when the email is already registered.
func (s *Service) Register(ctx context.Context, name, email, password string) (*users.User, error) {
	if _, err := s.repos.Users.GetByEmail(ctx, email); err == nil {
		return nil, errors.ErrEmailInUse
	}

	passwordHash, err := users.HashPassword(password, s.config.GetBcryptCost())
	if err != nil {
		return nil, fmt.Errorf("[Register] HashPassword: %w", err)
	}

	user := &users.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.nowTime(),
	}
	if err := s.repos.Users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("[Register] Users.Upsert: %w", err)
	}
	return user, nil
}

// Login validates credentials and establishes a new session. Unknown emails
// and wrong passwords both fail with ErrInvalidCredentials so callers cannot
// tell which was the case. All prior sessions for the user are deleted
// before the new one is created.
func (s *Service) Login(ctx context.Context, email, password string) (*token.Pair, error) {
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errors.ErrInvalidCredentials
	}

	if err := s.repos.Sessions.DeleteAllForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("[Login] Sessions.DeleteAllForUser: %w", err)
	}

	return s.createSession(ctx, user.ID)
}

// Refresh rotates a session: the record holding the presented refresh token
// is deleted and replaced with a fresh token pair. The old refresh token is
// permanently invalid the moment this succeeds; there is no grace window.
// An expired refresh token deletes the session and fails with
// ErrTokenExpired, forcing a re-login.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	session, err := s.repos.Sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	if s.nowTime().After(session.RefreshTokenValidUntil) {
		if err := s.repos.Sessions.Delete(ctx, session.ID); err != nil && !errors.Is(err, errors.ErrSessionNotFound) {
			return nil, fmt.Errorf("[Refresh] Sessions.Delete expired: %w", err)
		}
		return nil, errors.ErrTokenExpired
	}

	// The store's atomic single-record delete arbitrates concurrent
	// refreshes on the same token: the loser gets not-found.
	if err := s.repos.Sessions.Delete(ctx, session.ID); err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			return nil, errors.ErrInvalidToken
		}
		return nil, fmt.Errorf("[Refresh] Sessions.Delete: %w", err)
	}

	return s.createSession(ctx, session.UserID)
}

// Logout deletes the session holding the presented refresh token. An absent
// session (already logged out or forged token) fails with ErrInvalidToken.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.repos.Sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return errors.ErrInvalidToken
	}

	if err := s.repos.Sessions.Delete(ctx, session.ID); err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			return errors.ErrInvalidToken
		}
		return fmt.Errorf("[Logout] Sessions.Delete: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer access token to its user. Expiry is
// evaluated lazily against the stored timestamp; an expired-but-present
// record is as invalid as a missing one. The user load is a defensive
// check for records deleted out-of-band.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*users.User, error) {
	if accessToken == "" {
		return nil, errors.ErrMissingToken
	}

	session, err := s.repos.Sessions.GetByAccessToken(ctx, accessToken)
	if err != nil {
		return nil, errors.ErrSessionNotFound
	}

	if s.nowTime().After(session.AccessTokenValidUntil) {
		return nil, errors.ErrTokenExpired
	}

	user, err := s.repos.Users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// RequestPasswordReset issues a signed reset token for a registered email
// and mails the reset link. Unknown emails fail with ErrUserNotFound.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.repos.Users.GetByEmail(ctx, email); err != nil {
		return errors.ErrUserNotFound
	}

	resetToken, err := s.resetSigner.Issue(email)
	if err != nil {
		return fmt.Errorf("[RequestPasswordReset] resetSigner.Issue: %w", err)
	}

	msg := mail.ResetMessage(s.mailFrom, email, s.appDomain, resetToken)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("[RequestPasswordReset] mailer.Send: %w", err)
	}
	return nil
}

// ResetPassword verifies a reset token, stores the new password hash and
// deletes every session for the user, forcing re-authentication everywhere.
func (s *Service) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	email, err := s.resetSigner.Verify(tokenStr)
	if err != nil {
		return err
	}

	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return errors.ErrUserNotFound
	}

	passwordHash, err := users.HashPassword(newPassword, s.config.GetBcryptCost())
	if err != nil {
		return fmt.Errorf("[ResetPassword] HashPassword: %w", err)
	}

	user.PasswordHash = passwordHash
	if err := s.repos.Users.Upsert(ctx, user); err != nil {
		return fmt.Errorf("[ResetPassword] Users.Upsert: %w", err)
	}

	if err := s.repos.Sessions.DeleteAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("[ResetPassword] Sessions.DeleteAllForUser: %w", err)
	}
	return nil
}

func (s *Service) createSession(ctx context.Context, userID string) (*token.Pair, error) {
	pair, err := s.issuer.IssuePair()
	if err != nil {
		return nil, fmt.Errorf("[createSession] IssuePair: %w", err)
	}

	session := &sessions.Session{
		ID:                     uuid.New().String(),
		UserID:                 userID,
		AccessToken:            pair.AccessToken,
		RefreshToken:           pair.RefreshToken,
		AccessTokenValidUntil:  pair.AccessExpiresAt,
		RefreshTokenValidUntil: pair.RefreshExpiresAt,
		CreatedAt:              s.nowTime(),
	}
	if err := s.repos.Sessions.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("[createSession] Sessions.Insert: %w", err)
	}
	return pair, nil
}
