package service

import (
	"context"
	"log/slog"
	"strings"

	"shareit/internal/middleware"
	"shareit/internal/models"
	"shareit/internal/repository"
)

// RequestService implements item requests: wishes for items that do not
// exist yet, later fulfilled by items referencing them.
type RequestService struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	clock       Clock
}

// NewRequestService creates a new RequestService
func NewRequestService(requestRepo repository.RequestRepository, userRepo repository.UserRepository, clock Clock) *RequestService {
	if clock == nil {
		clock = SystemClock()
	}
	return &RequestService{requestRepo: requestRepo, userRepo: userRepo, clock: clock}
}

// AddRequest records a new item request for the user.
func (s *RequestService) AddRequest(ctx context.Context, requestorID uint, description string) (*models.ItemRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, models.NewValidationError("Description is required")
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     s.clock.Now(),
		Items:       []models.Item{},
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "new item request added", slog.Uint64("request_id", uint64(request.ID)))
	return request, nil
}

// GetUserRequests returns the user's own requests with their fulfilling items.
func (s *RequestService) GetUserRequests(ctx context.Context, userID uint) ([]*models.ItemRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.requestRepo.ListByRequestor(ctx, userID)
}

// GetRequestByID returns one request, visible to any existing user.
func (s *RequestService) GetRequestByID(ctx context.Context, userID, requestID uint) (*models.ItemRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.requestRepo.GetByID(ctx, requestID)
}

// GetAllRequests pages through other users' requests ordered by creation
// time, using the same from/size window contract as the booking lists.
func (s *RequestService) GetAllRequests(ctx context.Context, userID uint, from, size int) ([]*models.ItemRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	limit, offset := pageWindow(from, size)
	return s.requestRepo.ListOthers(ctx, userID, limit, offset)
}
