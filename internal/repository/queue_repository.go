package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"healthqueue-be/internal/apperrors"
	"healthqueue-be/internal/entities"
)

// QueueRepository defines the interface for queue entry database operations
type QueueRepository interface {
	Create(title, content string, userID int64) (*entities.Queue, error)
	FindByID(id int64) (*entities.Queue, error)
	Update(id int64, title, content string) (*entities.Queue, error)
	Delete(id int64) error
	ListRecent(page, perPage int) ([]*entities.Queue, int, error)
	ListByUser(userID int64, page, perPage int) ([]*entities.Queue, int, error)
}

type queueRepository struct {
	db *sql.DB
}

// NewQueueRepository creates a new queue entry repository
func NewQueueRepository(db *sql.DB) QueueRepository {
	return &queueRepository{db: db}
}

const queueColumns = "id, title, content, user_id, created_at"

// Create inserts a new queue entry owned by the given user
func (r *queueRepository) Create(title, content string, userID int64) (*entities.Queue, error) {
	query := `
		INSERT INTO queues (title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING ` + queueColumns

	var queue entities.Queue
	err := r.db.QueryRow(query, title, content, userID).Scan(
		&queue.ID,
		&queue.Title,
		&queue.Content,
		&queue.UserID,
		&queue.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue entry: %w", err)
	}

	return &queue, nil
}

// FindByID finds a queue entry by ID
func (r *queueRepository) FindByID(id int64) (*entities.Queue, error) {
	query := `SELECT ` + queueColumns + ` FROM queues WHERE id = $1`

	var queue entities.Queue
	err := r.db.QueryRow(query, id).Scan(
		&queue.ID,
		&queue.Title,
		&queue.Content,
		&queue.UserID,
		&queue.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find queue entry: %w", err)
	}

	return &queue, nil
}

// Update rewrites title and content of an existing queue entry. Ownership is
// checked by the caller before this runs.
func (r *queueRepository) Update(id int64, title, content string) (*entities.Queue, error) {
	query := `
		UPDATE queues
		SET title = $1, content = $2
		WHERE id = $3
		RETURNING ` + queueColumns

	var queue entities.Queue
	err := r.db.QueryRow(query, title, content, id).Scan(
		&queue.ID,
		&queue.Title,
		&queue.Content,
		&queue.UserID,
		&queue.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update queue entry: %w", err)
	}

	return &queue, nil
}

// Delete removes a queue entry permanently. Deleting an already-deleted entry
// reports ErrNotFound.
func (r *queueRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM queues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ListRecent retrieves one page of queue entries across all owners,
// most recent first. The id tiebreak keeps ordering stable across pages when
// entries share a created_at timestamp.
func (r *queueRepository) ListRecent(page, perPage int) ([]*entities.Queue, int, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM queues
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	entries, err := r.queryPage(query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM queues`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count queue entries: %w", err)
	}

	return entries, total, nil
}

// ListByUser retrieves one page of a single user's queue entries,
// most recent first.
func (r *queueRepository) ListByUser(userID int64, page, perPage int) ([]*entities.Queue, int, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM queues
		WHERE user_id = $3
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	entries, err := r.queryPage(query, perPage, (page-1)*perPage, userID)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM queues WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count queue entries: %w", err)
	}

	return entries, total, nil
}

func (r *queueRepository) queryPage(query string, limit, offset int, extra ...interface{}) ([]*entities.Queue, error) {
	args := append([]interface{}{limit, offset}, extra...)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.Queue
	for rows.Next() {
		var queue entities.Queue
		err := rows.Scan(
			&queue.ID,
			&queue.Title,
			&queue.Content,
			&queue.UserID,
			&queue.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}
		entries = append(entries, &queue)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating queue entries: %w", err)
	}

	return entries, nil
}
