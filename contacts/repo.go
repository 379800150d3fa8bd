package contacts

import "context"

// Filter narrows a contact listing. Zero values mean "no filter".
type Filter struct {
	Type        ContactType
	IsFavourite *bool
}

// ListQuery describes pagination, sorting and filtering for a listing. All
// queries are additionally scoped to the owning user by the repository.
type ListQuery struct {
	Offset   int
	Limit    int
	SortBy   string
	SortDesc bool
	Filter   Filter
}

// Repo is the contact store. Every operation takes the owning user ID; a
// contact that exists but belongs to another user behaves exactly like a
// missing one (errors.ErrContactNotFound).
type Repo interface {
	List(ctx context.Context, userID string, q ListQuery) ([]*Contact, int64, error)
	GetByID(ctx context.Context, userID, contactID string) (*Contact, error)
	Insert(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, userID, contactID string) error
}
