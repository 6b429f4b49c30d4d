package models

import "time"

// Comment ids come from a single global sequence, not a per-post one, but
// lookups are always scoped to the parent post. CommentDate is refreshed
// whenever the content is edited.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"commentId"`
	PostID      uint      `gorm:"index;not null" json:"postId"`
	AuthorID    *uint     `gorm:"index" json:"commentAuthor"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CommentDate time.Time `json:"commentDate"`

	AuthorNickname string `gorm:"-" json:"authorNickname,omitempty"`
	AuthorProfile  string `gorm:"-" json:"authorProfile,omitempty"`
}
