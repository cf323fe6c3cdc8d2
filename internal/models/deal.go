package models

import "time"

// Deal statuses
const (
	DealActive  = "active"
	DealPending = "pending"
	DealClosed  = "closed"
)

// Inquiry statuses — the pipeline a deal owner works through.
const (
	InquiryNew       = "new"
	InquiryContacted = "contacted"
	InquiryClosed    = "closed"
)

type Deal struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	OwnerID     int       `gorm:"index" json:"owner_id"`
	User        User      `gorm:"foreignKey:OwnerID" json:"user"`
	Title       string    `gorm:"not null" json:"title"`
	Address     string    `json:"address"`
	Price       int64     `json:"price"` // cents
	Description string    `json:"description"`
	Images      string    `json:"-"` // JSON-encoded list of image URLs
	Status      string    `gorm:"default:active" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DealInquiry is a member's expression of interest in a deal.
type DealInquiry struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	DealID    int       `gorm:"index;uniqueIndex:idx_deal_inquirer" json:"deal_id"`
	UserID    int       `gorm:"index;uniqueIndex:idx_deal_inquirer" json:"user_id"`
	Deal      Deal      `gorm:"foreignKey:DealID" json:"deal"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Message   string    `json:"message"`
	Status    string    `gorm:"default:new" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DealRequest struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
}
