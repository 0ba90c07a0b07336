package models

import "time"

// User represents a registered account. Passwords are stored as bcrypt hashes only,
// and the email is immutable once the row exists.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:250;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:250;not null" json:"name"`
	PasswordHash string    `gorm:"size:250;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
