package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jrsteele09/go-contacts-server/contacts"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/sessions"
	"github.com/jrsteele09/go-contacts-server/users"
	"github.com/stretchr/testify/require"
)

// setupInMemoryDB creates a migrated SQLiteAdapter used for testing
func setupInMemoryDB(t *testing.T) *SQLiteAdapter {
	t.Helper()
	adapter, err := NewSQLiteAdapter(":memory:")
	require.NoError(t, err)
	return adapter
}

func TestUserUpsertAndGet(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	user := &users.User{
		ID:           "user-1",
		Name:         "Test User",
		Email:        "a@x.com",
		PasswordHash: "hash-1",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, adapter.Upsert(ctx, user))

	byEmail, err := adapter.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", byEmail.ID)

	byID, err := adapter.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)

	_, err = adapter.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Upsert on an existing ID updates in place.
	user.PasswordHash = "hash-2"
	require.NoError(t, adapter.Upsert(ctx, user))

	updated, err := adapter.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "hash-2", updated.PasswordHash)
}

func TestSessionLifecycle(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	session := &sessions.Session{
		ID:                     "session-1",
		UserID:                 "user-1",
		AccessToken:            "access-1",
		RefreshToken:           "refresh-1",
		AccessTokenValidUntil:  time.Now().Add(15 * time.Minute),
		RefreshTokenValidUntil: time.Now().Add(24 * time.Hour),
		CreatedAt:              time.Now(),
	}
	require.NoError(t, adapter.Insert(ctx, session))

	byAccess, err := adapter.GetByAccessToken(ctx, "access-1")
	require.NoError(t, err)
	require.Equal(t, "session-1", byAccess.ID)

	byRefresh, err := adapter.GetByRefreshToken(ctx, "refresh-1")
	require.NoError(t, err)
	require.Equal(t, "session-1", byRefresh.ID)

	_, err = adapter.GetByAccessToken(ctx, "forged")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestSessionDelete_SecondCallerLoses(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	require.NoError(t, adapter.Insert(ctx, &sessions.Session{
		ID:           "session-1",
		UserID:       "user-1",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	require.NoError(t, adapter.Delete(ctx, "session-1"))
	require.ErrorIs(t, adapter.Delete(ctx, "session-1"), apperrors.ErrSessionNotFound)
}

func TestDeleteAllForUser(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, adapter.Insert(ctx, &sessions.Session{
			ID:           fmt.Sprintf("session-%d", i),
			UserID:       "user-1",
			AccessToken:  fmt.Sprintf("access-%d", i),
			RefreshToken: fmt.Sprintf("refresh-%d", i),
		}))
	}
	require.NoError(t, adapter.Insert(ctx, &sessions.Session{
		ID:           "session-other",
		UserID:       "user-2",
		AccessToken:  "access-other",
		RefreshToken: "refresh-other",
	}))

	require.NoError(t, adapter.DeleteAllForUser(ctx, "user-1"))

	for i := 0; i < 3; i++ {
		_, err := adapter.GetByAccessToken(ctx, fmt.Sprintf("access-%d", i))
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	}

	// Deleting for one user leaves the other's session alone.
	_, err := adapter.GetByAccessToken(ctx, "access-other")
	require.NoError(t, err)
}

func TestContactListFilterSortPage(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		contactType := contacts.TypePersonal
		if i%2 == 0 {
			contactType = contacts.TypeWork
		}
		require.NoError(t, adapter.Insert(ctx, &contacts.Contact{
			ID:          fmt.Sprintf("contact-%d", i),
			UserID:      "user-1",
			Name:        fmt.Sprintf("Contact %d", i),
			PhoneNumber: fmt.Sprintf("+38063000000%d", i),
			IsFavourite: i < 2,
			ContactType: contactType,
		}))
	}
	require.NoError(t, adapter.Insert(ctx, &contacts.Contact{
		ID:          "contact-other",
		UserID:      "user-2",
		Name:        "Other",
		PhoneNumber: "+380630000099",
	}))

	// Owner scoping and total count.
	items, total, err := adapter.List(ctx, "user-1", contacts.ListQuery{Limit: 10, SortBy: "name"})
	require.NoError(t, err)
	require.Equal(t, int64(6), total)
	require.Len(t, items, 6)

	// Paging keeps the unpaged total.
	items, total, err = adapter.List(ctx, "user-1", contacts.ListQuery{Offset: 4, Limit: 4, SortBy: "name"})
	require.NoError(t, err)
	require.Equal(t, int64(6), total)
	require.Len(t, items, 2)

	// Type filter.
	items, total, err = adapter.List(ctx, "user-1", contacts.ListQuery{
		Limit:  10,
		SortBy: "name",
		Filter: contacts.Filter{Type: contacts.TypeWork},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	for _, c := range items {
		require.Equal(t, contacts.TypeWork, c.ContactType)
	}

	// Favourite filter.
	favourite := true
	_, total, err = adapter.List(ctx, "user-1", contacts.ListQuery{
		Limit:  10,
		SortBy: "name",
		Filter: contacts.Filter{IsFavourite: &favourite},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	// Descending sort.
	items, _, err = adapter.List(ctx, "user-1", contacts.ListQuery{Limit: 1, SortBy: "name", SortDesc: true})
	require.NoError(t, err)
	require.Equal(t, "Contact 5", items[0].Name)
}

func TestContactUpdateAndDelete_OwnerScoped(t *testing.T) {
	adapter := setupInMemoryDB(t)
	ctx := context.Background()

	contact := &contacts.Contact{
		ID:          "contact-1",
		UserID:      "user-1",
		Name:        "Alice",
		PhoneNumber: "+380630000000",
		ContactType: contacts.TypePersonal,
	}
	require.NoError(t, adapter.Insert(ctx, contact))

	contact.Name = "Alice B"
	contact.IsFavourite = true
	require.NoError(t, adapter.Update(ctx, contact))

	stored, err := adapter.GetByID(ctx, "user-1", "contact-1")
	require.NoError(t, err)
	require.Equal(t, "Alice B", stored.Name)
	require.True(t, stored.IsFavourite)

	// Another user's update or delete does not touch the record.
	hijack := *contact
	hijack.UserID = "user-2"
	require.ErrorIs(t, adapter.Update(ctx, &hijack), apperrors.ErrContactNotFound)
	require.ErrorIs(t, adapter.Delete(ctx, "user-2", "contact-1"), apperrors.ErrContactNotFound)

	_, err = adapter.GetByID(ctx, "user-2", "contact-1")
	require.ErrorIs(t, err, apperrors.ErrContactNotFound)

	require.NoError(t, adapter.Delete(ctx, "user-1", "contact-1"))
	_, err = adapter.GetByID(ctx, "user-1", "contact-1")
	require.ErrorIs(t, err, apperrors.ErrContactNotFound)
}
