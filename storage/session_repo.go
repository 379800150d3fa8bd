package storage

import (
	"context"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/sessions"
	"gorm.io/gorm"
)

var _ sessions.Repo = (*SQLiteAdapter)(nil)

// GetByAccessToken retrieves a session by its access token.
func (a *SQLiteAdapter) GetByAccessToken(ctx context.Context, accessToken string) (*sessions.Session, error) {
	return a.getSession(ctx, "access_token = ?", accessToken)
}

// GetByRefreshToken retrieves a session by its refresh token.
func (a *SQLiteAdapter) GetByRefreshToken(ctx context.Context, refreshToken string) (*sessions.Session, error) {
	return a.getSession(ctx, "refresh_token = ?", refreshToken)
}

func (a *SQLiteAdapter) getSession(ctx context.Context, query, arg string) (*sessions.Session, error) {
	var session sessions.Session
	if err := a.db.WithContext(ctx).Where(query, arg).First(&session).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Insert stores a new session record.
func (a *SQLiteAdapter) Insert(ctx context.Context, session *sessions.Session) error {
	return a.db.WithContext(ctx).Create(session).Error
}

// Delete removes a session by ID. The single-row delete is atomic: of two
// callers racing on the same record, exactly one gets RowsAffected == 1 and
// the other gets ErrSessionNotFound.
func (a *SQLiteAdapter) Delete(ctx context.Context, id string) error {
	result := a.db.WithContext(ctx).Delete(&sessions.Session{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// DeleteAllForUser removes every session owned by a user.
func (a *SQLiteAdapter) DeleteAllForUser(ctx context.Context, userID string) error {
	return a.db.WithContext(ctx).Delete(&sessions.Session{}, "user_id = ?", userID).Error
}
