package entities

import "time"

// DefaultImageFile is the profile image assigned to accounts that never
// uploaded one.
const DefaultImageFile = "default.jpg"

// User represents a user entity in the database
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Don't expose password hash in JSON
	ImageFile    string    `json:"image_file"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
