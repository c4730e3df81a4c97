// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered observer. Accounts are never mutated or
// deleted once created; the password column holds a bcrypt hash, never
// plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     []Note    `gorm:"foreignKey:CreatedUserID" json:"notes,omitempty"`
}
