package models

import "time"

// Contractor is a member-owned vendor listing in the marketplace. Verified is
// only settable through the admin surface.
type Contractor struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	OwnerID     int       `gorm:"index" json:"owner_id"`
	User        User      `gorm:"foreignKey:OwnerID" json:"user"`
	Company     string    `gorm:"not null" json:"company"`
	Trade       string    `gorm:"index" json:"trade"` // e.g. "roofing", "electrical"
	ServiceArea string    `json:"service_area"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	Verified    bool      `gorm:"default:false" json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ContractorRequest struct {
	Company     string `json:"company"`
	Trade       string `json:"trade"`
	ServiceArea string `json:"service_area"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Description string `json:"description"`
}
