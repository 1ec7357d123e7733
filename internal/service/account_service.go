package service

import (
	"fmt"
	"io"

	"healthqueue-be/internal/entities"
	"healthqueue-be/internal/models"
	"healthqueue-be/internal/repository"
	"healthqueue-be/internal/storage"
)

// AccountService defines the interface for profile business logic
type AccountService interface {
	GetAccount(userID int64) (*models.AccountResponse, error)
	UpdateAccount(userID int64, req *models.UpdateAccountRequest, picture io.Reader, pictureExt string) (*models.AccountResponse, error)
}

type accountService struct {
	userRepo repository.UserRepository
	images   storage.Provider
}

// NewAccountService creates a new account service
func NewAccountService(userRepo repository.UserRepository, images storage.Provider) AccountService {
	return &accountService{
		userRepo: userRepo,
		images:   images,
	}
}

// GetAccount returns the current user's profile
func (s *accountService) GetAccount(userID int64) (*models.AccountResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return accountResponse(user), nil
}

// UpdateAccount changes username and email, rechecking uniqueness against
// other accounts, and stores a new profile image when one was uploaded.
func (s *accountService) UpdateAccount(userID int64, req *models.UpdateAccountRequest, picture io.Reader, pictureExt string) (*models.AccountResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if err := checkUniqueness(s.userRepo, req.Username, req.Email, &userID); err != nil {
		return nil, err
	}

	imageFile := user.ImageFile
	if picture != nil {
		imageFile, err = s.images.Save(picture, pictureExt)
		if err != nil {
			return nil, fmt.Errorf("failed to save profile image: %w", err)
		}
	}

	updated, err := s.userRepo.UpdateProfile(userID, req.Username, req.Email, imageFile)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return accountResponse(updated), nil
}

func accountResponse(user *entities.User) *models.AccountResponse {
	return &models.AccountResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		ImageURL:  "/uploads/" + user.ImageFile,
		CreatedAt: user.CreatedAt,
	}
}
