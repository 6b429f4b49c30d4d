package models

import "time"

// Post is a board entry. LikeCount, View and CommentsCount are persisted,
// denormalized counters; they are mutated by single atomic adjustments and
// never recomputed from the underlying rows.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"postId"`
	AuthorID      *uint     `gorm:"index" json:"author"`
	Author        *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Title         string    `gorm:"not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	PostImage     string    `json:"postImage,omitempty"`
	PostDate      time.Time `json:"postDate"`
	LikeCount     int       `gorm:"not null;default:0" json:"likeCount"`
	View          int       `gorm:"not null;default:0" json:"view"`
	CommentsCount int       `gorm:"not null;default:0" json:"commentsCount"`

	// Response enrichment, filled by the services. Not persisted.
	AuthorNickname string     `gorm:"-" json:"authorNickname,omitempty"`
	AuthorProfile  string     `gorm:"-" json:"authorProfile,omitempty"`
	Comments       []*Comment `gorm:"-" json:"comments,omitempty"`
}
