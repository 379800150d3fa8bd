package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an identity record. Created at registration, mutated on password
// reset, never deleted by this service.
type User struct {
	ID           string    `json:"id,omitempty" gorm:"primaryKey"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// HashPassword hashes a plaintext password with bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
