package repofake

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	byID map[string]*sessions.Session
	lock sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		byID: make(map[string]*sessions.Session),
	}
}

func (sr *FakeSessionRepo) GetByAccessToken(ctx context.Context, accessToken string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	for _, s := range sr.byID {
		if s.AccessToken == accessToken {
			copied := *s
			return &copied, nil
		}
	}
	return nil, errors.ErrSessionNotFound
}

func (sr *FakeSessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	for _, s := range sr.byID {
		if s.RefreshToken == refreshToken {
			copied := *s
			return &copied, nil
		}
	}
	return nil, errors.ErrSessionNotFound
}

func (sr *FakeSessionRepo) Insert(ctx context.Context, session *sessions.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	copied := *session
	sr.byID[session.ID] = &copied
	return nil
}

func (sr *FakeSessionRepo) Delete(ctx context.Context, id string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if _, ok := sr.byID[id]; !ok {
		return errors.ErrSessionNotFound
	}
	delete(sr.byID, id)
	return nil
}

func (sr *FakeSessionRepo) DeleteAllForUser(ctx context.Context, userID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	for id, s := range sr.byID {
		if s.UserID == userID {
			delete(sr.byID, id)
		}
	}
	return nil
}

// CountForUser returns the number of stored sessions for a user.
func (sr *FakeSessionRepo) CountForUser(userID string) int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	count := 0
	for _, s := range sr.byID {
		if s.UserID == userID {
			count++
		}
	}
	return count
}
