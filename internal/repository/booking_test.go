package repository

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// bookingFixture seeds one booker, one owner with an item, and one booking per
// temporal bucket plus one WAITING and one REJECTED booking.
type bookingFixture struct {
	db     *gorm.DB
	now    time.Time
	booker *models.User
	owner  *models.User
	item   *models.Item
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	db := setupTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	booker := createTestUser(t, db, "Booker", "booker@example.com")
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "drill", true)

	bookings := []models.Booking{
		{Start: now.Add(-72 * time.Hour), End: now.Add(-48 * time.Hour), ItemID: item.ID, BookerID: booker.ID, Status: models.StatusApproved},
		{Start: now.Add(-time.Hour), End: now.Add(time.Hour), ItemID: item.ID, BookerID: booker.ID, Status: models.StatusApproved},
		{Start: now.Add(48 * time.Hour), End: now.Add(72 * time.Hour), ItemID: item.ID, BookerID: booker.ID, Status: models.StatusApproved},
		{Start: now.Add(96 * time.Hour), End: now.Add(120 * time.Hour), ItemID: item.ID, BookerID: booker.ID, Status: models.StatusWaiting},
		{Start: now.Add(144 * time.Hour), End: now.Add(168 * time.Hour), ItemID: item.ID, BookerID: booker.ID, Status: models.StatusRejected},
	}
	for i := range bookings {
		require.NoError(t, db.Create(&bookings[i]).Error)
	}

	return &bookingFixture{db: db, now: now, booker: booker, owner: owner, item: item}
}

func TestBookingRepository_TemporalBuckets(t *testing.T) {
	t.Parallel()

	fx := newBookingFixture(t)
	repo := NewBookingRepository(fx.db)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter models.BookingFilter
		want   int
	}{
		{"ALL", models.BookingFilter{Temporal: models.BucketAll}, 5},
		{"PAST", models.BookingFilter{Temporal: models.BucketPast}, 1},
		{"CURRENT", models.BookingFilter{Temporal: models.BucketCurrent}, 1},
		{"FUTURE", models.BookingFilter{Temporal: models.BucketFuture}, 3},
		{"WAITING", models.BookingFilter{ByStatus: true, Status: models.StatusWaiting}, 1},
		{"APPROVED", models.BookingFilter{ByStatus: true, Status: models.StatusApproved}, 3},
		{"REJECTED", models.BookingFilter{ByStatus: true, Status: models.StatusRejected}, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bookings, err := repo.ListByBooker(ctx, fx.booker.ID, tt.filter, fx.now, 10, 0)
			require.NoError(t, err)
			assert.Len(t, bookings, tt.want)
		})
	}
}

func TestBookingRepository_CurrentBucketBoundaries(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "drill", true)

	// both edges of the window count as running
	startingNow := models.Booking{Start: now, End: now.Add(time.Hour), ItemID: item.ID, BookerID: booker.ID, Status: models.StatusApproved}
	endingNow := models.Booking{Start: now.Add(-time.Hour), End: now, ItemID: item.ID, BookerID: booker.ID, Status: models.StatusApproved}
	require.NoError(t, db.Create(&startingNow).Error)
	require.NoError(t, db.Create(&endingNow).Error)

	repo := NewBookingRepository(db)
	ctx := context.Background()

	current, err := repo.ListByBooker(ctx, booker.ID, models.BookingFilter{Temporal: models.BucketCurrent}, now, 10, 0)
	require.NoError(t, err)
	ids := make([]uint, 0, len(current))
	for _, b := range current {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []uint{startingNow.ID, endingNow.ID}, ids)

	past, err := repo.ListByBooker(ctx, booker.ID, models.BookingFilter{Temporal: models.BucketPast}, now, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, past, "a booking ending exactly now is not past")

	future, err := repo.ListByBooker(ctx, booker.ID, models.BookingFilter{Temporal: models.BucketFuture}, now, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, future, "a booking starting exactly now is not future")
}

func TestBookingRepository_ListOrdering(t *testing.T) {
	t.Parallel()

	fx := newBookingFixture(t)
	repo := NewBookingRepository(fx.db)

	bookings, err := repo.ListByBooker(context.Background(), fx.booker.ID, models.BookingFilter{}, fx.now, 10, 0)
	require.NoError(t, err)
	require.Len(t, bookings, 5)
	for i := 1; i < len(bookings); i++ {
		assert.True(t, bookings[i].Start.Before(bookings[i-1].Start), "bookings must be ordered by start descending")
	}
	assert.Equal(t, fx.item.ID, bookings[0].Item.ID, "item association must be preloaded")
	assert.Equal(t, fx.booker.ID, bookings[0].Booker.ID, "booker association must be preloaded")
}

func TestBookingRepository_ListByOwner(t *testing.T) {
	t.Parallel()

	fx := newBookingFixture(t)
	repo := NewBookingRepository(fx.db)
	ctx := context.Background()

	// the owner never booked anything themselves
	bookings, err := repo.ListByBooker(ctx, fx.owner.ID, models.BookingFilter{}, fx.now, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	// but all bookings target their item
	bookings, err = repo.ListByOwner(ctx, fx.owner.ID, models.BookingFilter{}, fx.now, 10, 0)
	require.NoError(t, err)
	assert.Len(t, bookings, 5)

	bookings, err = repo.ListByOwner(ctx, fx.booker.ID, models.BookingFilter{}, fx.now, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingRepository_Pagination(t *testing.T) {
	t.Parallel()

	fx := newBookingFixture(t)
	repo := NewBookingRepository(fx.db)
	ctx := context.Background()

	first, err := repo.ListByBooker(ctx, fx.booker.ID, models.BookingFilter{}, fx.now, 2, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := repo.ListByBooker(ctx, fx.booker.ID, models.BookingFilter{}, fx.now, 2, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.True(t, second[0].Start.Before(first[1].Start))
}

func TestBookingRepository_AdjacentForItem(t *testing.T) {
	t.Parallel()

	fx := newBookingFixture(t)
	repo := NewBookingRepository(fx.db)
	ctx := context.Background()

	last, err := repo.LastForItem(ctx, fx.item.ID, fx.now, models.StatusApproved)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, fx.booker.ID, last.BookerID)

	next, err := repo.NextForItem(ctx, fx.item.ID, fx.now, models.StatusApproved)
	require.NoError(t, err)
	require.NotNil(t, next)

	// the currently running booking started before now, so it is the last one
	var lastBooking, nextBooking models.Booking
	require.NoError(t, fx.db.First(&lastBooking, last.ID).Error)
	require.NoError(t, fx.db.First(&nextBooking, next.ID).Error)
	assert.True(t, lastBooking.Start.Before(fx.now))
	assert.True(t, nextBooking.Start.After(fx.now))

	// WAITING and REJECTED bookings are invisible to the approved adjacency
	emptyItem := createTestItem(t, fx.db, fx.owner.ID, "saw", true)
	last, err = repo.LastForItem(ctx, emptyItem.ID, fx.now, models.StatusApproved)
	require.NoError(t, err)
	assert.Nil(t, last)
	next, err = repo.NextForItem(ctx, emptyItem.ID, fx.now, models.StatusApproved)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestBookingRepository_GetByID(t *testing.T) {
	t.Parallel()

	fx := newBookingFixture(t)
	repo := NewBookingRepository(fx.db)
	ctx := context.Background()

	booking, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, fx.item.ID, booking.Item.ID)
	assert.Equal(t, fx.owner.ID, booking.Item.OwnerID)

	_, err = repo.GetByID(ctx, 999)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.Equal(t, "No booking with id 999", appErr.Message)
}

func TestBookingRepository_ListByBookerAndItem(t *testing.T) {
	t.Parallel()

	fx := newBookingFixture(t)
	repo := NewBookingRepository(fx.db)
	ctx := context.Background()

	bookings, err := repo.ListByBookerAndItem(ctx, fx.booker.ID, fx.item.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 5)

	bookings, err = repo.ListByBookerAndItem(ctx, fx.owner.ID, fx.item.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	t.Parallel()

	fx := newBookingFixture(t)
	repo := NewBookingRepository(fx.db)
	ctx := context.Background()

	booking, err := repo.GetByID(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, models.StatusWaiting, booking.Status)

	booking.Status = models.StatusApproved
	require.NoError(t, repo.Update(ctx, booking))

	reloaded, err := repo.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, reloaded.Status)
}
