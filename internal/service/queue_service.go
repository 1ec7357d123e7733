package service

import (
	"context"
	"fmt"
	"time"

	"healthqueue-be/internal/apperrors"
	"healthqueue-be/internal/cache"
	"healthqueue-be/internal/entities"
	"healthqueue-be/internal/models"
	"healthqueue-be/internal/repository"
)

const queueCacheTTL = 5 * time.Minute

// QueueService defines the interface for queue entry business logic
type QueueService interface {
	CreateQueue(userID int64, req *models.QueueRequest) (*models.QueueResponse, error)
	GetQueue(id int64) (*models.QueueResponse, error)
	UpdateQueue(id, userID int64, req *models.QueueRequest) (*models.QueueResponse, error)
	DeleteQueue(id, userID int64) error
	ListQueues(page, perPage int) (*models.QueueListResponse, error)
	ListUserQueues(username string, page, perPage int) (*models.QueueListResponse, error)
}

type queueService struct {
	repo     repository.QueueRepository
	userRepo repository.UserRepository
	cache    cache.Cache
	ctx      context.Context
}

// NewQueueService creates a new queue entry service
func NewQueueService(repo repository.QueueRepository, userRepo repository.UserRepository, cacheClient cache.Cache) QueueService {
	return &queueService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cacheClient,
		ctx:      context.Background(),
	}
}

// guardOwner is the single authorization rule for queue entry mutation:
// only the owner may update or delete, and a mismatch reveals nothing about
// who the owner is.
func guardOwner(userID int64, entry *entities.Queue) error {
	if entry.UserID != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateQueue creates a queue entry owned by the authenticated user
func (s *queueService) CreateQueue(userID int64, req *models.QueueRequest) (*models.QueueResponse, error) {
	entry, err := s.repo.Create(req.Title, req.Content, userID)
	if err != nil {
		return nil, err
	}
	return queueResponse(entry), nil
}

// GetQueue returns a single queue entry by ID. Reads are public.
func (s *queueService) GetQueue(id int64) (*models.QueueResponse, error) {
	cacheKey := fmt.Sprintf("queue:%d", id)

	if s.cache != nil {
		var cached entities.Queue
		if err := s.cache.GetJSON(s.ctx, cacheKey, &cached); err == nil {
			return queueResponse(&cached), nil
		}
	}

	entry, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(s.ctx, cacheKey, entry, queueCacheTTL)
	}

	return queueResponse(entry), nil
}

// UpdateQueue rewrites title and content of an entry the user owns
func (s *queueService) UpdateQueue(id, userID int64, req *models.QueueRequest) (*models.QueueResponse, error) {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := guardOwner(userID, entry); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(id, req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	s.invalidate(id)

	return queueResponse(updated), nil
}

// DeleteQueue removes an entry the user owns
func (s *queueService) DeleteQueue(id, userID int64) error {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	if err := guardOwner(userID, entry); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.invalidate(id)

	return nil
}

// ListQueues returns one page of the global listing, most recent first
func (s *queueService) ListQueues(page, perPage int) (*models.QueueListResponse, error) {
	entries, total, err := s.repo.ListRecent(page, perPage)
	if err != nil {
		return nil, err
	}
	return listResponse(entries, page, perPage, total, ""), nil
}

// ListUserQueues returns one page of a single user's entries. The username
// must resolve to an existing user; the listing itself is public.
func (s *queueService) ListUserQueues(username string, page, perPage int) (*models.QueueListResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}

	entries, total, err := s.repo.ListByUser(user.ID, page, perPage)
	if err != nil {
		return nil, err
	}
	return listResponse(entries, page, perPage, total, user.Username), nil
}

func (s *queueService) invalidate(id int64) {
	if s.cache != nil {
		_ = s.cache.Delete(s.ctx, fmt.Sprintf("queue:%d", id))
	}
}

func queueResponse(entry *entities.Queue) *models.QueueResponse {
	return &models.QueueResponse{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Content,
		UserID:    entry.UserID,
		CreatedAt: entry.CreatedAt,
	}
}

func listResponse(entries []*entities.Queue, page, perPage, total int, username string) *models.QueueListResponse {
	responses := make([]*models.QueueResponse, 0, len(entries))
	for _, entry := range entries {
		resp := queueResponse(entry)
		resp.Username = username
		responses = append(responses, resp)
	}

	totalPages := (total + perPage - 1) / perPage

	return &models.QueueListResponse{
		Entries:    responses,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
