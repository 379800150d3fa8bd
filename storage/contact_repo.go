package storage

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-contacts-server/contacts"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"gorm.io/gorm"
)

var _ contacts.Repo = (*SQLiteAdapter)(nil)

// sortColumns maps API sort keys onto database columns.
var sortColumns = map[string]string{
	"name":        "name",
	"phoneNumber": "phone_number",
	"email":       "email",
	"contactType": "contact_type",
	"createdAt":   "created_at",
}

// List returns one page of a user's contacts plus the unpaged total.
func (a *SQLiteAdapter) List(ctx context.Context, userID string, q contacts.ListQuery) ([]*contacts.Contact, int64, error) {
	db := a.db.WithContext(ctx).Model(&contacts.Contact{}).Where("user_id = ?", userID)
	if q.Filter.Type != "" {
		db = db.Where("contact_type = ?", q.Filter.Type)
	}
	if q.Filter.IsFavourite != nil {
		db = db.Where("is_favourite = ?", *q.Filter.IsFavourite)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "name"
	}
	direction := "asc"
	if q.SortDesc {
		direction = "desc"
	}

	var items []*contacts.Contact
	err := db.Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID retrieves a contact scoped to its owning user.
func (a *SQLiteAdapter) GetByID(ctx context.Context, userID, contactID string) (*contacts.Contact, error) {
	var contact contacts.Contact
	err := a.db.WithContext(ctx).Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// Insert stores a new contact.
func (a *SQLiteAdapter) Insert(ctx context.Context, contact *contacts.Contact) error {
	return a.db.WithContext(ctx).Create(contact).Error
}

// Update persists a modified contact, scoped to its owning user.
func (a *SQLiteAdapter) Update(ctx context.Context, contact *contacts.Contact) error {
	result := a.db.WithContext(ctx).
		Model(&contacts.Contact{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Select("*").
		Updates(contact)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrContactNotFound
	}
	return nil
}

// Delete removes a contact scoped to its owning user.
func (a *SQLiteAdapter) Delete(ctx context.Context, userID, contactID string) error {
	result := a.db.WithContext(ctx).Delete(&contacts.Contact{}, "id = ? AND user_id = ?", contactID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrContactNotFound
	}
	return nil
}
