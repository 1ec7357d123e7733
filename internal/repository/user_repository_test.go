package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthqueue-be/internal/apperrors"
)

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func userRow(id int64, username, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "image_file", "created_at", "updated_at"}).
		AddRow(id, username, email, "hash", "default.jpg", now, now)
}

func TestUserCreate(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jane", "jane@example.com", "hash", "default.jpg").
		WillReturnRows(userRow(1, "jane", "jane@example.com"))

	user, err := repo.Create("jane", "jane@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "default.jpg", user.ImageFile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmailIsValidationError(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("janet", "jane@example.com", "hash", "default.jpg").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := repo.Create("janet", "jane@example.com", "hash")

	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 1)
	assert.Equal(t, "email", validation.Fields[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateUsernameIsValidationError(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jane", "other@example.com", "hash", "default.jpg").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	_, err := repo.Create("jane", "other@example.com", "hash")

	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 1)
	assert.Equal(t, "username", validation.Fields[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByEmailNotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail("ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByUsername(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("jane").
		WillReturnRows(userRow(1, "jane", "jane@example.com"))

	user, err := repo.FindByUsername("jane")
	require.NoError(t, err)
	assert.Equal(t, "jane", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateProfile(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery("UPDATE users").
		WithArgs("janet", "janet@example.com", "abc.png", int64(1)).
		WillReturnRows(userRow(1, "janet", "janet@example.com"))

	user, err := repo.UpdateProfile(1, "janet", "janet@example.com", "abc.png")
	require.NoError(t, err)
	assert.Equal(t, "janet", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdatePasswordMissingIsNotFound(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectExec("UPDATE users").
		WithArgs("newhash", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdatePassword(99, "newhash"), apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
