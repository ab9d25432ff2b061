package domain

// Link Model
type Link struct {
	ID     uint   `gorm:"primaryKey" json:"id"`           // Primary key
	Code   string `gorm:"unique;not null" json:"code"`    // Referral code, checkout lookup key
	UserID uint   `gorm:"not null" json:"user_id"`        // Foreign key to the owning ambassador
	User   User   `json:"user"`                           // Owning ambassador
}
