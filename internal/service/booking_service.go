package service

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/middleware"
	"shareit/internal/models"
	"shareit/internal/observability"
	"shareit/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// BookingService implements the booking lifecycle: creation with
// availability-window validation, owner approval, and the bucketed views.
type BookingService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	// db is used to wrap the read-check-write of a status change in one
	// transaction. It may be nil in unit tests; the check then runs
	// without transactional protection.
	db    *gorm.DB
	clock Clock
}

// CreateBookingInput carries a booking creation request.
type CreateBookingInput struct {
	BookerID uint
	ItemID   uint
	Start    time.Time
	End      time.Time
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	db *gorm.DB,
	clock Clock,
) *BookingService {
	if clock == nil {
		clock = SystemClock()
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		db:          db,
		clock:       clock,
	}
}

// AddBooking validates availability and the requested window, then persists
// a WAITING booking.
func (s *BookingService) AddBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if _, err := s.userRepo.GetByID(ctx, in.BookerID); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, models.NewUnavailableError("Item is not available for booking")
	}
	if item.OwnerID == in.BookerID {
		return nil, models.NewOwnerMismatchError("User is the owner of the item")
	}
	if s.invalidWindow(in.Start, in.End) {
		return nil, models.NewValidationError("Wrong booking time")
	}

	booking := &models.Booking{
		Start:    in.Start,
		End:      in.End,
		ItemID:   in.ItemID,
		BookerID: in.BookerID,
		Status:   models.StatusWaiting,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "new booking added",
		slog.Uint64("booking_id", uint64(booking.ID)),
		slog.Uint64("item_id", uint64(in.ItemID)),
	)
	return s.bookingRepo.GetByID(ctx, booking.ID)
}

// invalidWindow reports whether the requested window may not be booked:
// either bound in the past, an empty window, or an inverted one.
func (s *BookingService) invalidWindow(start, end time.Time) bool {
	now := s.clock.Now()
	return start.Before(now) || end.Before(now) || start.Equal(end) || start.After(end)
}

// SetBookingStatus is the single owner-driven transition of the state
// machine: WAITING -> APPROVED or REJECTED. A booking that is already
// APPROVED cannot be transitioned again. The read-check-write runs inside
// one transaction so concurrent approve/reject calls cannot interleave.
func (s *BookingService) SetBookingStatus(ctx context.Context, actorID, bookingID uint, approve bool) (*models.Booking, error) {
	span, ctx := observability.NewSpan(ctx, "booking.transition")
	defer span.End()
	span.AddAttributes(
		attribute.Int("booking.id", int(bookingID)),
		attribute.Bool("booking.approve", approve),
	)

	var out *models.Booking

	transition := func(repo repository.BookingRepository) error {
		booking, err := repo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.Item.OwnerID != actorID {
			return models.NewOwnerMismatchError("User is not the owner of the item")
		}
		if booking.Status == models.StatusApproved {
			return models.NewValidationError("Booking is already confirmed")
		}
		if approve {
			booking.Status = models.StatusApproved
		} else {
			booking.Status = models.StatusRejected
		}
		if err := repo.Update(ctx, booking); err != nil {
			return err
		}
		out = booking
		return nil
	}

	var err error
	if s.db != nil {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return transition(s.bookingRepo.WithTx(tx))
		})
	} else {
		err = transition(s.bookingRepo)
	}
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.String("booking.status", string(out.Status)))
	middleware.Logger.InfoContext(ctx, "booking status set",
		slog.Uint64("booking_id", uint64(bookingID)),
		slog.String("status", string(out.Status)),
	)
	return out, nil
}

// GetBookingByID returns the booking when the actor is its booker or the
// owner of the booked item, and pretends it does not exist otherwise.
func (s *BookingService) GetBookingByID(ctx context.Context, actorID, bookingID uint) (*models.Booking, error) {
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != actorID && booking.Item.OwnerID != actorID {
		return nil, models.NewNotFoundMessage("Booking is not available for viewing")
	}
	return booking, nil
}

// ListForBooker returns the booker's bookings in the given bucket, newest
// start first.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID uint, f models.BookingFilter, from, size int) ([]*models.Booking, error) {
	if _, err := s.userRepo.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}
	limit, offset := pageWindow(from, size)
	return s.bookingRepo.ListByBooker(ctx, bookerID, f, s.clock.Now(), limit, offset)
}

// ListForOwner returns bookings of all items owned by ownerID in the given
// bucket, newest start first.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID uint, f models.BookingFilter, from, size int) ([]*models.Booking, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	limit, offset := pageWindow(from, size)
	return s.bookingRepo.ListByOwner(ctx, ownerID, f, s.clock.Now(), limit, offset)
}

// pageWindow reproduces the historical from/size contract: from is reduced
// to a page index (from/size when from > 0, else page 0), so it only acts as
// a row offset when callers pass multiples of size. Preserved for wire
// compatibility with existing clients.
func pageWindow(from, size int) (limit, offset int) {
	page := 0
	if from > 0 {
		page = from / size
	}
	return size, page * size
}
