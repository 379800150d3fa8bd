package sessions

import "context"

// Repo is the session store. Token lookups must be backed by an index and
// single-record deletes must be atomic: of two callers racing to delete the
// same record, exactly one observes it present.
//
// Implementations return errors.ErrSessionNotFound when no record matches.
type Repo interface {
	GetByAccessToken(ctx context.Context, accessToken string) (*Session, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*Session, error)
	Insert(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
