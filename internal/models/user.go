// Package models contains data structures for the application's domain models.
package models

// SharerUserHeader carries the acting user's id on every protected endpoint.
// Trust is purely header-based; there is no token scheme in front of it.
const SharerUserHeader = "X-Sharer-User-Id"

// User represents a registered user who can own items and book other users' items.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
}
