package repository

import (
	"context"
	"errors"
	"time"

	"shareit/internal/models"

	"gorm.io/gorm"
)

// BookingRepository defines interface for booking operations.
// List methods receive the already-resolved BookingFilter together with the
// caller's notion of "now" so temporal buckets stay deterministic under test.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	ListByBooker(ctx context.Context, bookerID uint, f models.BookingFilter, now time.Time, limit, offset int) ([]*models.Booking, error)
	ListByOwner(ctx context.Context, ownerID uint, f models.BookingFilter, now time.Time, limit, offset int) ([]*models.Booking, error)
	ListByBookerAndItem(ctx context.Context, bookerID, itemID uint) ([]*models.Booking, error)
	LastForItem(ctx context.Context, itemID uint, now time.Time, status models.BookingStatus) (*models.BookingRef, error)
	NextForItem(ctx context.Context, itemID uint, now time.Time, status models.BookingStatus) (*models.BookingRef, error)
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) BookingRepository
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) WithTx(tx *gorm.DB) BookingRepository {
	return &bookingRepository{db: tx}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Preload("Item").Preload("Booker").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("booking", id)
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// bookingFilterScope translates a BookingFilter into store-level predicates.
func bookingFilterScope(f models.BookingFilter, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.ByStatus {
			return tx.Where("bookings.status = ?", f.Status)
		}
		switch f.Temporal {
		case models.BucketPast:
			return tx.Where("bookings.end_date < ?", now)
		case models.BucketFuture:
			return tx.Where("bookings.start_date > ?", now)
		case models.BucketCurrent:
			return tx.Where("? BETWEEN bookings.start_date AND bookings.end_date", now)
		default:
			return tx
		}
	}
}

func (r *bookingRepository) ListByBooker(
	ctx context.Context,
	bookerID uint,
	f models.BookingFilter,
	now time.Time,
	limit, offset int,
) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Where("bookings.booker_id = ?", bookerID).
		Scopes(bookingFilterScope(f, now)).
		Order("bookings.start_date desc").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByOwner(
	ctx context.Context,
	ownerID uint,
	f models.BookingFilter,
	now time.Time,
	limit, offset int,
) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").Preload("Booker").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Scopes(bookingFilterScope(f, now)).
		Order("bookings.start_date desc").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByBookerAndItem(ctx context.Context, bookerID, itemID uint) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("booker_id = ? AND item_id = ?", bookerID, itemID).
		Find(&bookings).Error
	return bookings, err
}

// LastForItem returns the most recent booking of the item started before now,
// or nil when there is none.
func (r *bookingRepository) LastForItem(ctx context.Context, itemID uint, now time.Time, status models.BookingStatus) (*models.BookingRef, error) {
	return r.adjacentForItem(ctx, itemID, status, "start_date < ?", "start_date desc", now)
}

// NextForItem returns the earliest booking of the item starting after now,
// or nil when there is none.
func (r *bookingRepository) NextForItem(ctx context.Context, itemID uint, now time.Time, status models.BookingStatus) (*models.BookingRef, error) {
	return r.adjacentForItem(ctx, itemID, status, "start_date > ?", "start_date asc", now)
}

func (r *bookingRepository) adjacentForItem(
	ctx context.Context,
	itemID uint,
	status models.BookingStatus,
	cond, order string,
	now time.Time,
) (*models.BookingRef, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ?", itemID, status).
		Where(cond, now).
		Order(order).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &models.BookingRef{ID: booking.ID, BookerID: booking.BookerID}, nil
}
