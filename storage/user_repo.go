package storage

import (
	"context"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/users"
	"gorm.io/gorm"
)

var _ users.Repo = (*SQLiteAdapter)(nil)

// Upsert creates or updates a user.
func (a *SQLiteAdapter) Upsert(ctx context.Context, user *users.User) error {
	return a.db.WithContext(ctx).Save(user).Error
}

// GetByEmail retrieves a user by their unique email.
func (a *SQLiteAdapter) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var user users.User
	if err := a.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (a *SQLiteAdapter) GetByID(ctx context.Context, id string) (*users.User, error) {
	var user users.User
	if err := a.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
