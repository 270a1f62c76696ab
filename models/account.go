// account.go - Defines the credential table used by the local auth provider

package models

import "time"

type Account struct { // Account holds login credentials, separate from the public user record
	ID           string    `gorm:"primaryKey;size:36"`   // uuid, shared with the user record
	Email        string    `gorm:"uniqueIndex;not null"` // Normalized email (must be unique)
	PasswordHash string    `gorm:"not null"`             // bcrypt hash
	Name         string    // Display name metadata
	Role         string    `gorm:"default:'user'"` // admin or user
	CreatedAt    time.Time // Set by gorm
	UpdatedAt    time.Time // Set by gorm
}
