package users

import "context"

// Repo is the credential store. Implementations must return
// errors.ErrUserNotFound (wrapped or not) when a user does not exist.
type Repo interface {
	Upsert(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
