package models

import (
	"time"

	"github.com/google/uuid"
)

// PersonalInfo groups the optional profile fields on a user account.
type PersonalInfo struct {
	FirstName   string `gorm:"column:first_name" json:"firstName"`
	LastName    string `gorm:"column:last_name" json:"lastName"`
	Address     string `gorm:"column:address" json:"address"`
	PhoneNumber string `gorm:"column:phone_number" json:"phoneNumber"`
}

// User represents the canonical identity entity. Email uniqueness is enforced
// case-insensitively at the repository layer (lookups lower-case the value).
type User struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string       `gorm:"column:username;not null;uniqueIndex"`
	Email        string       `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string       `gorm:"column:password_hash;not null"`
	PersonalInfo PersonalInfo `gorm:"embedded"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
