package domain

import "time"

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`           // Primary key
	Title       string    `gorm:"not null" json:"title"`          // Product title
	Description string    `json:"description"`                    // Catalog description
	Image       string    `json:"image"`                          // Image URL
	Price       float64   `gorm:"not null" json:"price"`          // Unit price
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of creation
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"` // Timestamp of last update
}
