package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"healthqueue-be/internal/apperrors"
	"healthqueue-be/internal/mail"
	"healthqueue-be/internal/models"
	"healthqueue-be/internal/repository"
	"healthqueue-be/internal/token"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(req *models.LoginRequest) (*models.AuthResponse, error)
	Logout(tokenString string) error
	RequestPasswordReset(email string) error
	CompletePasswordReset(tokenString, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
	mailer   mail.Mailer
	denylist token.Denylist
	baseURL  string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens *token.Service, mailer mail.Mailer, denylist token.Denylist, baseURL string) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		denylist: denylist,
		baseURL:  baseURL,
	}
}

// Register creates a new user account. It does not log the user in.
func (s *authService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := checkUniqueness(s.userRepo, req.Username, req.Email, nil); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(req.Username, req.Email, string(hashedPassword))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.RegisterResponse{
		Message:  "Your account has been created! You are now able to log in",
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Login authenticates a user and returns user info with a session token.
// Unknown email and wrong password both yield the same generic error.
func (s *authService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	sessionToken, err := s.tokens.GenerateSessionToken(user.ID, user.Email, req.Remember)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Token:     sessionToken,
	}, nil
}

// Logout revokes the session token for the rest of its lifetime so it can no
// longer be presented as a valid session.
func (s *authService) Logout(tokenString string) error {
	ttl, err := s.tokens.SessionTTLRemaining(tokenString)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if err := s.denylist.Revoke(context.Background(), tokenString, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RequestPasswordReset mints a reset token for the account and emails it.
// An unknown email is not an error: the caller reports the same generic
// confirmation either way so addresses cannot be enumerated.
func (s *authService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	resetToken, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	body := fmt.Sprintf(`To reset your password, visit the following link:
%s/reset-password/%s

If you did not make this request then simply ignore this email and no changes will be made.
`, s.baseURL, resetToken)

	// Fire and forget: a delivery failure is logged, never retried
	if err := s.mailer.Send(user.Email, "Password Reset Request", body); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
	}

	return nil
}

// CompletePasswordReset verifies the token and overwrites the password hash.
// An invalid or expired token leaves the account untouched.
func (s *authService) CompletePasswordReset(tokenString, newPassword string) error {
	userID, err := s.tokens.ValidateResetToken(tokenString)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// checkUniqueness collects field errors for a username or email already held
// by another account. currentUserID, when set, exempts that user's own values
// so an account update can keep them unchanged.
func checkUniqueness(userRepo repository.UserRepository, username, email string, currentUserID *int64) error {
	validation := &apperrors.ValidationError{}

	if existing, err := userRepo.FindByUsername(username); err == nil {
		if currentUserID == nil || existing.ID != *currentUserID {
			validation.Add("username", "That username is taken. Please choose a different one.")
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if existing, err := userRepo.FindByEmail(email); err == nil {
		if currentUserID == nil || existing.ID != *currentUserID {
			validation.Add("email", "That email is taken. Please choose a different one.")
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if validation.HasErrors() {
		return validation
	}
	return nil
}
