package models

import "time"

// SavedPost marks a post bookmarked by a user; unique per (user, post),
// created and deleted by toggle.
type SavedPost struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"index;uniqueIndex:idx_user_post_save" json:"user_id"`
	PostID    int       `gorm:"index;uniqueIndex:idx_user_post_save" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID" json:"post"`
	CreatedAt time.Time `json:"created_at"`
}
