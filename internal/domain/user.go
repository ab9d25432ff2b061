package domain

import (
	"time" // Timestamps

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// User Model
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`              // Primary key
	FirstName    string     `json:"first_name"`                        // First name
	LastName     string     `json:"last_name"`                         // Last name
	Email        string     `gorm:"unique;not null" json:"email"`      // Unique email, used for login
	Password     string     `gorm:"not null" json:"-"`                 // Bcrypt hash, never serialized
	IsAmbassador bool       `json:"is_ambassador"`                     // Role flag: ambassador or admin
	IsStaff      bool       `json:"is_staff"`                          // Administrative flag, read-only via API
	IsSuperuser  bool       `json:"is_superuser"`                      // Administrative flag, read-only via API
	LastLogin    *time.Time `json:"last_login"`                        // Updated on every successful authentication
	DateJoined   time.Time  `gorm:"autoCreateTime" json:"date_joined"` // Set once at creation
}

// SetPassword hashes the plaintext password with bcrypt and stores the hash
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares the plaintext password against the stored hash
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
