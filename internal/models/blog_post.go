package models

import "time"

// BlogPost is an admin-authored article. Unpublished drafts are only visible
// through the admin surface.
type BlogPost struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"unique;not null" json:"slug"`
	Body       string    `json:"body"`
	CoverImage string    `json:"cover_image"`
	AuthorID   int       `json:"author_id"`
	User       User      `gorm:"foreignKey:AuthorID" json:"user"`
	Published  bool      `gorm:"default:false" json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BlogPostRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Body       string `json:"body"`
	CoverImage string `json:"cover_image"`
	Published  *bool  `json:"published"`
}
