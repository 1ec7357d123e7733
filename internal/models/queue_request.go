package models

// QueueRequest represents the request body for creating or updating a queue
// entry: the patient name and the requested examination types.
type QueueRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
}
