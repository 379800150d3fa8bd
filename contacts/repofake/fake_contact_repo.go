package repofake

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-contacts-server/contacts"
	"github.com/jrsteele09/go-contacts-server/internal/errors"
)

var _ contacts.Repo = (*FakeContactRepo)(nil)

type FakeContactRepo struct {
	byID map[string]*contacts.Contact
	lock sync.RWMutex
}

func NewFakeContactRepo() *FakeContactRepo {
	return &FakeContactRepo{
		byID: make(map[string]*contacts.Contact),
	}
}

func (cr *FakeContactRepo) List(ctx context.Context, userID string, q contacts.ListQuery) ([]*contacts.Contact, int64, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	matched := make([]*contacts.Contact, 0)
	for _, c := range cr.byID {
		if c.UserID != userID {
			continue
		}
		if q.Filter.Type != "" && c.ContactType != q.Filter.Type {
			continue
		}
		if q.Filter.IsFavourite != nil && c.IsFavourite != *q.Filter.IsFavourite {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		less := compare(matched[i], matched[j], q.SortBy)
		if q.SortDesc {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []*contacts.Contact{}, total, nil
	}
	end := q.Offset + q.Limit
	if q.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], total, nil
}

func compare(a, b *contacts.Contact, sortBy string) bool {
	switch sortBy {
	case "phoneNumber":
		return a.PhoneNumber < b.PhoneNumber
	case "email":
		return a.Email < b.Email
	case "contactType":
		return a.ContactType < b.ContactType
	case "createdAt":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

func (cr *FakeContactRepo) GetByID(ctx context.Context, userID, contactID string) (*contacts.Contact, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	c, ok := cr.byID[contactID]
	if !ok || c.UserID != userID {
		return nil, errors.ErrContactNotFound
	}
	copied := *c
	return &copied, nil
}

func (cr *FakeContactRepo) Insert(ctx context.Context, contact *contacts.Contact) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	copied := *contact
	cr.byID[contact.ID] = &copied
	return nil
}

func (cr *FakeContactRepo) Update(ctx context.Context, contact *contacts.Contact) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	existing, ok := cr.byID[contact.ID]
	if !ok || existing.UserID != contact.UserID {
		return errors.ErrContactNotFound
	}
	copied := *contact
	cr.byID[contact.ID] = &copied
	return nil
}

func (cr *FakeContactRepo) Delete(ctx context.Context, userID, contactID string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	c, ok := cr.byID[contactID]
	if !ok || c.UserID != userID {
		return errors.ErrContactNotFound
	}
	delete(cr.byID, contactID)
	return nil
}
