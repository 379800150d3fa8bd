// Package storage implements the user, session and contact repositories on
// SQLite via GORM. Single-row writes are atomic, which is all the session
// lifecycle requires: concurrent refreshes racing on one token are decided
// by whichever delete lands first.
package storage

import (
	"github.com/jrsteele09/go-contacts-server/contacts"
	"github.com/jrsteele09/go-contacts-server/sessions"
	"github.com/jrsteele09/go-contacts-server/users"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteAdapter implements users.Repo, sessions.Repo and contacts.Repo.
type SQLiteAdapter struct {
	db *gorm.DB
}

// NewSQLiteAdapter opens the database and migrates the schema. Token and
// email lookups are index-backed (declared on the model structs).
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&users.User{}, &sessions.Session{}, &contacts.Contact{}); err != nil {
		return nil, err
	}

	return &SQLiteAdapter{db: db}, nil
}
