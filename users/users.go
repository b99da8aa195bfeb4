package users

import (
	"golang.org/x/crypto/bcrypt"
)

// User is the stored credential record. PasswordHash is never serialized.
type User struct {
	ID           int    `json:"id,omitempty"`        // Unique identifier for the user
	Username     string `json:"user_name,omitempty"` // Unique login name
	PasswordHash string `json:"-"`                   // Hashed version of the user's password - never serialize
	Role         string `json:"role,omitempty"`      // Role carried as a claim in issued tokens
	Name         string `json:"name,omitempty"`      // First name of the user
	LastName     string `json:"last_name,omitempty"` // Last name of the user
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password against a bcrypt hash.
// bcrypt's comparison is constant-time for equal-cost hashes.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
