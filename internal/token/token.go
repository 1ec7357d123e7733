package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"healthqueue-be/internal/apperrors"
)

const (
	sessionPurpose = "session"
	resetPurpose   = "password_reset"
)

// SessionClaims carries the authenticated user through a session token. The
// purpose claim keeps the two token kinds from standing in for each other.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

// ResetClaims binds a password reset token to a single user.
type ResetClaims struct {
	jwt.RegisteredClaims
	UserID  int64  `json:"user_id"`
	Purpose string `json:"purpose"`
}

// Service mints and verifies signed, time-limited tokens. Minting and
// verification are pure computation and safe for concurrent use.
type Service struct {
	secret      []byte
	sessionTTL  time.Duration
	rememberTTL time.Duration
	resetTTL    time.Duration
}

func NewService(secret string, sessionTTL, rememberTTL, resetTTL time.Duration) *Service {
	return &Service{
		secret:      []byte(secret),
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		resetTTL:    resetTTL,
	}
}

// GenerateSessionToken issues a session token for a logged-in user. A
// "remember me" login gets the longer TTL.
func (s *Service) GenerateSessionToken(userID int64, email string, remember bool) (string, error) {
	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}

	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  userID,
		Email:   email,
		Purpose: sessionPurpose,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateSessionToken verifies a session token and returns the user identity
// it carries. A reset token is not a session token and is rejected here.
func (s *Service) ValidateSessionToken(tokenString string) (int64, string, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return 0, "", err
	}
	if claims.Purpose != sessionPurpose {
		return 0, "", apperrors.ErrInvalidToken
	}
	return claims.UserID, claims.Email, nil
}

// SessionTTLRemaining reports how long a session token stays valid, for
// recording a logout until the token would have expired on its own.
func (s *Service) SessionTTLRemaining(tokenString string) (time.Duration, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return 0, err
	}
	if claims.Purpose != sessionPurpose || claims.ExpiresAt == nil {
		return 0, apperrors.ErrInvalidToken
	}
	return time.Until(claims.ExpiresAt.Time), nil
}

// GenerateResetToken mints a password reset token bound to the user identity,
// valid for the configured reset TTL.
func (s *Service) GenerateResetToken(userID int64) (string, error) {
	now := time.Now()
	claims := ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
		UserID:  userID,
		Purpose: resetPurpose,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateResetToken verifies a reset token and returns the bound user ID.
// Any malformed, tampered, mis-signed, mis-purposed or expired token yields
// apperrors.ErrInvalidToken; it never panics on bad input.
func (s *Service) ValidateResetToken(tokenString string) (int64, error) {
	claims := &ResetClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return 0, err
	}
	if claims.Purpose != resetPurpose {
		return 0, apperrors.ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *Service) parse(tokenString string, claims jwt.Claims) error {
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return apperrors.ErrInvalidToken
	}
	return nil
}
