package models

import "time"

// BookingStatus is the lifecycle state of a booking.
// WAITING is initial; APPROVED is terminal. REJECTED is not re-transition
// guarded, matching the historical behavior of the service.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Booking reserves an item for a time window on behalf of a booker.
type Booking struct {
	ID       uint          `gorm:"primaryKey" json:"id"`
	Start    time.Time     `gorm:"column:start_date;not null" json:"start"`
	End      time.Time     `gorm:"column:end_date;not null" json:"end"`
	ItemID   uint          `gorm:"not null;index" json:"item_id"`
	Item     Item          `gorm:"foreignKey:ItemID" json:"item"`
	BookerID uint          `gorm:"not null;index" json:"booker_id"`
	Booker   User          `gorm:"foreignKey:BookerID" json:"booker"`
	Status   BookingStatus `gorm:"type:varchar(16);not null" json:"status"`
}

// TemporalBucket selects bookings by their window relative to now.
type TemporalBucket int

const (
	BucketAll TemporalBucket = iota
	BucketCurrent
	BucketPast
	BucketFuture
)

// BookingFilter is the resolved form of the state query parameter. The raw
// token doubles as a temporal bucket selector and a literal status value, so
// it is parsed exactly once at the request boundary into this tagged form.
type BookingFilter struct {
	Temporal TemporalBucket
	Status   BookingStatus
	ByStatus bool
}

// ParseBookingFilter resolves a state token into a BookingFilter.
// Tokens are case-sensitive; an unrecognized token is a validation error
// that echoes the token back to the caller.
func ParseBookingFilter(token string) (BookingFilter, error) {
	switch token {
	case "ALL":
		return BookingFilter{Temporal: BucketAll}, nil
	case "CURRENT":
		return BookingFilter{Temporal: BucketCurrent}, nil
	case "PAST":
		return BookingFilter{Temporal: BucketPast}, nil
	case "FUTURE":
		return BookingFilter{Temporal: BucketFuture}, nil
	case "WAITING":
		return BookingFilter{ByStatus: true, Status: StatusWaiting}, nil
	case "APPROVED":
		return BookingFilter{ByStatus: true, Status: StatusApproved}, nil
	case "REJECTED":
		return BookingFilter{ByStatus: true, Status: StatusRejected}, nil
	default:
		return BookingFilter{}, NewValidationError("Unknown state: " + token)
	}
}
