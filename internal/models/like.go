package models

import "time"

// Like records that a user liked a post. The composite primary key doubles
// as the uniqueness constraint that closes the duplicate-like race: the
// second concurrent insert conflicts instead of creating a second row.
type Like struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"postId"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
