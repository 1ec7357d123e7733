package models

import "time"

// QueueResponse represents a single queue entry
type QueueResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// QueueListResponse represents one page of queue entries, most recent first
type QueueListResponse struct {
	Entries    []*QueueResponse `json:"entries"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}
