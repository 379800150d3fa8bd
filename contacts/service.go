package contacts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-contacts-server/internal/errors"
)

// Allowed sort columns for contact listings.
var sortColumns = map[string]bool{
	"name":        true,
	"phoneNumber": true,
	"email":       true,
	"contactType": true,
	"createdAt":   true,
}

// Query is a page request from the API surface.
type Query struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
	Type      ContactType
	Favourite *bool
}

// Page is one page of contacts with pagination bookkeeping.
type Page struct {
	Data            []*Contact `json:"data"`
	Page            int        `json:"page"`
	PerPage         int        `json:"perPage"`
	TotalItems      int64      `json:"totalItems"`
	TotalPages      int        `json:"totalPages"`
	HasPreviousPage bool       `json:"hasPreviousPage"`
	HasNextPage     bool       `json:"hasNextPage"`
}

// Service provides owner-scoped contact CRUD over a Repo.
type Service struct {
	repo    Repo
	nowTime func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService creates a contact service over the given repository.
func NewService(repo Repo, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("[NewService] contacts repo is required")
	}
	service := &Service{
		repo:    repo,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// List returns one page of the user's contacts. Page and PerPage default to
// 1 and 10; invalid paging or sorting parameters fail with ErrValidation.
func (s *Service) List(ctx context.Context, userID string, q Query) (*Page, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = 10
	}
	if q.Page < 1 || q.PerPage < 1 {
		return nil, errors.Wrapf(errors.ErrValidation, "page and perPage must be positive integers")
	}
	if q.SortBy == "" {
		q.SortBy = "name"
	}
	if !sortColumns[q.SortBy] {
		return nil, errors.Wrapf(errors.ErrValidation, "invalid sortBy %q", q.SortBy)
	}
	switch q.SortOrder {
	case "", "asc", "desc":
	default:
		return nil, errors.Wrapf(errors.ErrValidation, "invalid sortOrder %q", q.SortOrder)
	}
	if q.Type != "" && !ValidType(q.Type) {
		return nil, errors.Wrapf(errors.ErrValidation, "invalid contact type %q", q.Type)
	}

	listQuery := ListQuery{
		Offset:   (q.Page - 1) * q.PerPage,
		Limit:    q.PerPage,
		SortBy:   q.SortBy,
		SortDesc: q.SortOrder == "desc",
		Filter: Filter{
			Type:        q.Type,
			IsFavourite: q.Favourite,
		},
	}

	items, total, err := s.repo.List(ctx, userID, listQuery)
	if err != nil {
		return nil, fmt.Errorf("[List] repo.List: %w", err)
	}

	totalPages := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	return &Page{
		Data:            items,
		Page:            q.Page,
		PerPage:         q.PerPage,
		TotalItems:      total,
		TotalPages:      totalPages,
		HasPreviousPage: q.Page > 1,
		HasNextPage:     q.Page < totalPages,
	}, nil
}

// Get returns a single contact owned by the user.
func (s *Service) Get(ctx context.Context, userID, contactID string) (*Contact, error) {
	contact, err := s.repo.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// Create stores a new contact for the user.
func (s *Service) Create(ctx context.Context, userID string, contact Contact) (*Contact, error) {
	if contact.Name == "" || contact.PhoneNumber == "" {
		return nil, errors.Wrapf(errors.ErrValidation, "name and phoneNumber are required")
	}
	if contact.ContactType == "" {
		contact.ContactType = TypePersonal
	}
	if !ValidType(contact.ContactType) {
		return nil, errors.Wrapf(errors.ErrValidation, "invalid contact type %q", contact.ContactType)
	}

	contact.ID = uuid.New().String()
	contact.UserID = userID
	contact.CreatedAt = s.nowTime()
	contact.UpdatedAt = contact.CreatedAt

	if err := s.repo.Insert(ctx, &contact); err != nil {
		return nil, fmt.Errorf("[Create] repo.Insert: %w", err)
	}
	return &contact, nil
}

// Patch applies a partial update to a contact owned by the user.
func (s *Service) Patch(ctx context.Context, userID, contactID string, update Update) (*Contact, error) {
	if update.Empty() {
		return nil, errors.Wrapf(errors.ErrValidation, "no fields provided to update")
	}
	if update.ContactType != nil && !ValidType(*update.ContactType) {
		return nil, errors.Wrapf(errors.ErrValidation, "invalid contact type %q", *update.ContactType)
	}

	contact, err := s.repo.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	update.Apply(contact)
	contact.UpdatedAt = s.nowTime()
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("[Patch] repo.Update: %w", err)
	}
	return contact, nil
}

// Delete removes a contact owned by the user.
func (s *Service) Delete(ctx context.Context, userID, contactID string) error {
	return s.repo.Delete(ctx, userID, contactID)
}
