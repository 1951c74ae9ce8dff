package service

import (
	"context"
	"log/slog"
	"strings"

	"shareit/internal/middleware"
	"shareit/internal/models"
	"shareit/internal/repository"
)

// ItemService implements item CRUD, search, the owner-aware detail view and
// the comment eligibility gate.
type ItemService struct {
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	commentRepo repository.CommentRepository
	clock       Clock
}

// CreateItemInput carries an item creation request.
type CreateItemInput struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *uint
}

// UpdateItemInput carries a partial item update; nil fields are left as is.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

// NewItemService creates a new ItemService
func NewItemService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	commentRepo repository.CommentRepository,
	clock Clock,
) *ItemService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ItemService{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		clock:       clock,
	}
}

// AddItem creates an item owned by ownerID.
func (s *ItemService) AddItem(ctx context.Context, ownerID uint, in CreateItemInput) (*models.Item, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if in.Available == nil {
		return nil, models.NewValidationError("Available is required")
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "new item added", slog.Uint64("item_id", uint64(item.ID)))
	return item, nil
}

// UpdateItem applies a partial update; only the owner may change an item and
// a non-owner is answered as if the item did not exist.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID uint, in UpdateItemInput) (*models.Item, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, models.NewNotFoundMessage("No owner with id " + itoa(userID))
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItemByID returns the detail view. Only the owner sees the APPROVED
// bookings adjacent to now; everyone sees the comments.
func (s *ItemService) GetItemByID(ctx context.Context, userID, itemID uint) (*models.ItemDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &models.ItemDetails{Item: *item}
	if item.OwnerID == userID {
		now := s.clock.Now()
		if details.LastBooking, err = s.bookingRepo.LastForItem(ctx, itemID, now, models.StatusApproved); err != nil {
			return nil, err
		}
		if details.NextBooking, err = s.bookingRepo.NextForItem(ctx, itemID, now, models.StatusApproved); err != nil {
			return nil, err
		}
	}
	if details.Comments, err = s.commentRepo.ListByItem(ctx, itemID); err != nil {
		return nil, err
	}
	return details, nil
}

// GetUserItems returns the owner's items as detail views, ordered by id,
// windowed by the from/size paging contract.
func (s *ItemService) GetUserItems(ctx context.Context, ownerID uint, from, size int) ([]*models.ItemDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	limit, offset := pageWindow(from, size)
	items, err := s.itemRepo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	details := make([]*models.ItemDetails, 0, len(items))
	for _, item := range items {
		d, err := s.GetItemByID(ctx, ownerID, item.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// SearchItems matches text against names, and against descriptions of
// available items. An empty query returns an empty list, not everything.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	if text == "" {
		return []*models.Item{}, nil
	}
	limit, offset := pageWindow(from, size)
	return s.itemRepo.Search(ctx, text, limit, offset)
}

// AddComment lets a user comment on an item only when at least one of their
// bookings of it has already ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uint, text string) (*models.Comment, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	now := s.clock.Now()
	bookings, err := s.bookingRepo.ListByBookerAndItem(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	eligible := false
	for _, b := range bookings {
		if b.End.Before(now) {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil, models.NewValidationError("No booking to comment")
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "new comment added", slog.Uint64("item_id", uint64(itemID)))
	return comment, nil
}
