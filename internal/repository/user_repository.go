package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"healthqueue-be/internal/apperrors"
	"healthqueue-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(username, email, passwordHash string) (*entities.User, error)
	FindByID(id int64) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindByUsername(username string) (*entities.User, error)
	UpdateProfile(id int64, username, email, imageFile string) (*entities.User, error)
	UpdatePassword(id int64, passwordHash string) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, username, email, password_hash, image_file, created_at, updated_at"

// Postgres error code for a unique constraint violation.
const uniqueViolation = pq.ErrorCode("23505")

func scanUser(row *sql.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.ImageFile,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(username, email, passwordHash string) (*entities.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, image_file)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(query, username, email, passwordHash, entities.DefaultImageFile))
	if err != nil {
		// Two registrations can race past the service-level uniqueness check.
		// The unique index wins and the loser gets a field error, not a 500.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			field := "username"
			if strings.Contains(string(pqErr.Constraint), "email") {
				field = "email"
			}
			return nil, (&apperrors.ValidationError{}).Add(field, "That "+field+" is taken. Please choose a different one.")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(id int64) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(query, id))
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(query, email))
}

// FindByUsername finds a user by username (case-sensitive exact match)
func (r *userRepository) FindByUsername(username string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(query, username))
}

// UpdateProfile updates username, email and profile image in one statement
func (r *userRepository) UpdateProfile(id int64, username, email, imageFile string) (*entities.User, error) {
	query := `
		UPDATE users
		SET username = $1, email = $2, image_file = $3, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $4
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(query, username, email, imageFile, id))
}

// UpdatePassword overwrites the stored password hash
func (r *userRepository) UpdatePassword(id int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $2
	`

	result, err := r.db.Exec(query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
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
