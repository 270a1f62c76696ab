// user.go - Defines the user record stored in the key-value namespace

package models

import "time"

// Roles a user record can carry.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct { // User is the profile record kept under "user:<id>"
	ID        string     `json:"id"`                  // Same id as the auth account
	Email     string     `json:"email"`               // Login email
	Name      string     `json:"name"`                // Display name
	Role      string     `json:"role"`                // admin or user, fixed at registration
	CreatedAt time.Time  `json:"createdAt"`           // Registration time
	UpdatedAt *time.Time `json:"updatedAt,omitempty"` // Last profile change
}

// RoleFor derives the role of a registering email from the admin identity.
func RoleFor(email, adminEmail string) string {
	if SameEmail(email, adminEmail) {
		return RoleAdmin
	}
	return RoleUser
}
