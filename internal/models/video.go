package models

import "time"

// Video is an entry in the education catalog. Thumbnail is best-effort: a
// failed thumbnail upload leaves it empty rather than aborting the create.
type Video struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"index" json:"category"`
	VideoURL    string    `gorm:"not null" json:"video_url"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    int       `json:"duration"` // seconds
	Position    int       `gorm:"default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
