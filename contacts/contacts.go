package contacts

import "time"

// ContactType categorizes a contact record.
type ContactType string

const (
	TypeWork     ContactType = "work"
	TypeHome     ContactType = "home"
	TypePersonal ContactType = "personal"
)

// ValidType reports whether t is one of the known contact types.
func ValidType(t ContactType) bool {
	switch t {
	case TypeWork, TypeHome, TypePersonal:
		return true
	}
	return false
}

// Contact is a single address-book entry, strictly scoped to its owning user.
type Contact struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	UserID      string      `json:"-" gorm:"index"`
	Name        string      `json:"name"`
	PhoneNumber string      `json:"phoneNumber"`
	Email       string      `json:"email,omitempty"`
	IsFavourite bool        `json:"isFavourite"`
	ContactType ContactType `json:"contactType"`
	Photo       string      `json:"photo,omitempty"` // URL of an externally stored photo
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Update carries the mutable contact fields for a partial update. Nil
// pointers leave the stored value untouched.
type Update struct {
	Name        *string      `json:"name,omitempty"`
	PhoneNumber *string      `json:"phoneNumber,omitempty"`
	Email       *string      `json:"email,omitempty"`
	IsFavourite *bool        `json:"isFavourite,omitempty"`
	ContactType *ContactType `json:"contactType,omitempty"`
	Photo       *string      `json:"photo,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u Update) Empty() bool {
	return u.Name == nil && u.PhoneNumber == nil && u.Email == nil &&
		u.IsFavourite == nil && u.ContactType == nil && u.Photo == nil
}

// Apply copies the set fields onto a contact.
func (u Update) Apply(c *Contact) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.PhoneNumber != nil {
		c.PhoneNumber = *u.PhoneNumber
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.IsFavourite != nil {
		c.IsFavourite = *u.IsFavourite
	}
	if u.ContactType != nil {
		c.ContactType = *u.ContactType
	}
	if u.Photo != nil {
		c.Photo = *u.Photo
	}
}
