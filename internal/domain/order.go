package domain

import "time"

// Order Model
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`           // Primary key
	TransID   string    `gorm:"column:trans_id" json:"trans_id"` // External transaction id
	Code      string    `gorm:"not null" json:"code"`           // Referral code used at checkout
	AmbEmail  string    `gorm:"column:amb_email" json:"amb_email"` // Link owner's email, snapshotted at creation
	UserID    uint      `json:"user_id"`                        // Link owner's id, snapshotted at creation
	Email     string    `json:"email"`                          // Purchaser email
	FirstName string    `json:"first_name"`                     // Purchaser first name
	LastName  string    `json:"last_name"`                      // Purchaser last name
	Address   string    `json:"address"`                        // Shipping address
	City      string    `json:"city"`                           // Shipping city
	Country   string    `json:"country"`                        // Shipping country
	Zip       string    `json:"zip"`                            // Shipping zip code
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of creation
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"` // Timestamp of last update
}
