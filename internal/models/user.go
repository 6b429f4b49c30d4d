// Package models contains the domain entities of the board and the
// API error/response envelope shared by every handler.
package models

import "time"

// DefaultProfileURL is used when a signup supplies no profile image, and as
// the placeholder profile for authors whose account no longer exists.
const DefaultProfileURL = "https://default.image.jpg"

// UnknownAuthorNickname labels posts and comments whose author was deleted.
const UnknownAuthorNickname = "Unknown"

// User is a registered board member. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"userId"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Nickname  string    `gorm:"uniqueIndex;not null;size:10" json:"nickname"`
	Profile   string    `gorm:"not null" json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicProfile strips account-private fields for profile lookups by other
// users.
type PublicProfile struct {
	UserID   uint   `json:"userId"`
	Nickname string `json:"nickname"`
	Profile  string `json:"profile"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{UserID: u.ID, Nickname: u.Nickname, Profile: u.Profile}
}
