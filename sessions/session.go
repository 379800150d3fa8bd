package sessions

import "time"

// Session pairs one user's access and refresh tokens with their expiries.
// At most one session exists per user: login and refresh delete all prior
// records before inserting a replacement, never mutating tokens in place.
type Session struct {
	ID                     string    `json:"id" gorm:"primaryKey"`
	UserID                 string    `json:"user_id" gorm:"index"`
	AccessToken            string    `json:"-" gorm:"index"`
	RefreshToken           string    `json:"-" gorm:"index"`
	AccessTokenValidUntil  time.Time `json:"access_token_valid_until"`
	RefreshTokenValidUntil time.Time `json:"refresh_token_valid_until"`
	CreatedAt              time.Time `json:"created_at"`
}
