package entities

import "time"

// Queue represents a queue entry in the database: one patient's request for
// examination, owned by exactly one user. The owner is fixed at creation.
type Queue struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`   // patient name
	Content   string    `json:"content"` // requested examination types
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
