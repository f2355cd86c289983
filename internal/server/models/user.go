// Package models defines server-side data models persisted in the database.
package models

import "time"

// DefaultAvatar is assigned to users who never uploaded one.
const DefaultAvatar = "https://picsum.photos/seed/default/100/100"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
