package models

import "time"

type Post struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Body         string    `json:"body"`
	Topic        string    `gorm:"index" json:"topic"` // Optional topic tag, e.g. "wholesaling"
	Images       string    `json:"-"`                  // JSON-encoded list of image URLs
	AuthorID     int       `gorm:"index" json:"author_id"`
	User         User      `gorm:"foreignKey:AuthorID" json:"user"`
	Upvotes      int       `gorm:"default:0" json:"upvotes"`
	Downvotes    int       `gorm:"default:0" json:"downvotes"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	Pinned       bool      `gorm:"default:false" json:"pinned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Title  string   `json:"title" binding:"required"`
	Body   string   `json:"body"`
	Topic  string   `json:"topic"`
	Images []string `json:"images"`
}
