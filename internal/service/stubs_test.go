package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"
	"shareit/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixedClock pins "now" so temporal rules are deterministic under test.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn     func(context.Context, *models.User) error
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	listFn       func(context.Context) ([]*models.User, error)
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context) ([]*models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "user", Email: "user@example.com"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		listFn:       func(_ context.Context) ([]*models.User, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// itemRepoStub is a stub for repository.ItemRepository.
type itemRepoStub struct {
	createFn      func(context.Context, *models.Item) error
	getByIDFn     func(context.Context, uint) (*models.Item, error)
	updateFn      func(context.Context, *models.Item) error
	listByOwnerFn func(context.Context, uint, int, int) ([]*models.Item, error)
	searchFn      func(context.Context, string, int, int) ([]*models.Item, error)
}

func (s *itemRepoStub) Create(ctx context.Context, item *models.Item) error {
	return s.createFn(ctx, item)
}
func (s *itemRepoStub) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	return s.getByIDFn(ctx, id)
}
func (s *itemRepoStub) Update(ctx context.Context, item *models.Item) error {
	return s.updateFn(ctx, item)
}
func (s *itemRepoStub) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Item, error) {
	return s.listByOwnerFn(ctx, ownerID, limit, offset)
}
func (s *itemRepoStub) Search(ctx context.Context, text string, limit, offset int) ([]*models.Item, error) {
	return s.searchFn(ctx, text, limit, offset)
}

func noopItemRepo() *itemRepoStub {
	return &itemRepoStub{
		createFn: func(_ context.Context, i *models.Item) error {
			i.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Item, error) {
			return &models.Item{ID: id, Name: "drill", Description: "cordless", Available: true, OwnerID: 2}, nil
		},
		updateFn:      func(_ context.Context, _ *models.Item) error { return nil },
		listByOwnerFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Item, error) { return nil, nil },
		searchFn:      func(_ context.Context, _ string, _, _ int) ([]*models.Item, error) { return nil, nil },
	}
}

// bookingRepoStub is a stub for repository.BookingRepository.
type bookingRepoStub struct {
	createFn              func(context.Context, *models.Booking) error
	getByIDFn             func(context.Context, uint) (*models.Booking, error)
	updateFn              func(context.Context, *models.Booking) error
	listByBookerFn        func(context.Context, uint, models.BookingFilter, time.Time, int, int) ([]*models.Booking, error)
	listByOwnerFn         func(context.Context, uint, models.BookingFilter, time.Time, int, int) ([]*models.Booking, error)
	listByBookerAndItemFn func(context.Context, uint, uint) ([]*models.Booking, error)
	lastForItemFn         func(context.Context, uint, time.Time, models.BookingStatus) (*models.BookingRef, error)
	nextForItemFn         func(context.Context, uint, time.Time, models.BookingStatus) (*models.BookingRef, error)
}

func (s *bookingRepoStub) Create(ctx context.Context, booking *models.Booking) error {
	return s.createFn(ctx, booking)
}
func (s *bookingRepoStub) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	return s.getByIDFn(ctx, id)
}
func (s *bookingRepoStub) Update(ctx context.Context, booking *models.Booking) error {
	return s.updateFn(ctx, booking)
}
func (s *bookingRepoStub) ListByBooker(ctx context.Context, bookerID uint, f models.BookingFilter, now time.Time, limit, offset int) ([]*models.Booking, error) {
	return s.listByBookerFn(ctx, bookerID, f, now, limit, offset)
}
func (s *bookingRepoStub) ListByOwner(ctx context.Context, ownerID uint, f models.BookingFilter, now time.Time, limit, offset int) ([]*models.Booking, error) {
	return s.listByOwnerFn(ctx, ownerID, f, now, limit, offset)
}
func (s *bookingRepoStub) ListByBookerAndItem(ctx context.Context, bookerID, itemID uint) ([]*models.Booking, error) {
	return s.listByBookerAndItemFn(ctx, bookerID, itemID)
}
func (s *bookingRepoStub) LastForItem(ctx context.Context, itemID uint, now time.Time, status models.BookingStatus) (*models.BookingRef, error) {
	return s.lastForItemFn(ctx, itemID, now, status)
}
func (s *bookingRepoStub) NextForItem(ctx context.Context, itemID uint, now time.Time, status models.BookingStatus) (*models.BookingRef, error) {
	return s.nextForItemFn(ctx, itemID, now, status)
}
func (s *bookingRepoStub) WithTx(_ *gorm.DB) repository.BookingRepository { return s }

func noopBookingRepo() *bookingRepoStub {
	return &bookingRepoStub{
		createFn: func(_ context.Context, b *models.Booking) error {
			b.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{ID: id, Status: models.StatusWaiting, BookerID: 1, Item: models.Item{ID: 1, OwnerID: 2}}, nil
		},
		updateFn: func(_ context.Context, _ *models.Booking) error { return nil },
		listByBookerFn: func(_ context.Context, _ uint, _ models.BookingFilter, _ time.Time, _, _ int) ([]*models.Booking, error) {
			return nil, nil
		},
		listByOwnerFn: func(_ context.Context, _ uint, _ models.BookingFilter, _ time.Time, _, _ int) ([]*models.Booking, error) {
			return nil, nil
		},
		listByBookerAndItemFn: func(_ context.Context, _, _ uint) ([]*models.Booking, error) { return nil, nil },
		lastForItemFn: func(_ context.Context, _ uint, _ time.Time, _ models.BookingStatus) (*models.BookingRef, error) {
			return nil, nil
		},
		nextForItemFn: func(_ context.Context, _ uint, _ time.Time, _ models.BookingStatus) (*models.BookingRef, error) {
			return nil, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByItemFn func(context.Context, uint) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByItem(ctx context.Context, itemID uint) ([]models.Comment, error) {
	return s.listByItemFn(ctx, itemID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		listByItemFn: func(_ context.Context, _ uint) ([]models.Comment, error) {
			return []models.Comment{}, nil
		},
	}
}

// requestRepoStub is a stub for repository.RequestRepository.
type requestRepoStub struct {
	createFn          func(context.Context, *models.ItemRequest) error
	getByIDFn         func(context.Context, uint) (*models.ItemRequest, error)
	listByRequestorFn func(context.Context, uint) ([]*models.ItemRequest, error)
	listOthersFn      func(context.Context, uint, int, int) ([]*models.ItemRequest, error)
}

func (s *requestRepoStub) Create(ctx context.Context, request *models.ItemRequest) error {
	return s.createFn(ctx, request)
}
func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.ItemRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) ListByRequestor(ctx context.Context, requestorID uint) ([]*models.ItemRequest, error) {
	return s.listByRequestorFn(ctx, requestorID)
}
func (s *requestRepoStub) ListOthers(ctx context.Context, requestorID uint, limit, offset int) ([]*models.ItemRequest, error) {
	return s.listOthersFn(ctx, requestorID, limit, offset)
}

func noopRequestRepo() *requestRepoStub {
	return &requestRepoStub{
		createFn: func(_ context.Context, r *models.ItemRequest) error {
			r.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.ItemRequest, error) {
			return &models.ItemRequest{ID: id, Description: "wanted"}, nil
		},
		listByRequestorFn: func(_ context.Context, _ uint) ([]*models.ItemRequest, error) { return nil, nil },
		listOthersFn:      func(_ context.Context, _ uint, _, _ int) ([]*models.ItemRequest, error) { return nil, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}
