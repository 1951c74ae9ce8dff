package models

// Item represents a shareable item listed by its owner.
// available=false blocks new bookings but keeps the item visible.
type Item struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Available   bool   `gorm:"not null" json:"available"`
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	// RequestID links the item to the ItemRequest it fulfills, if any.
	RequestID *uint `gorm:"index" json:"request_id,omitempty"`
}

// BookingRef is a compact reference to a booking, used when an item detail
// view reports the bookings adjacent to now.
type BookingRef struct {
	ID       uint `json:"id"`
	BookerID uint `json:"booker_id"`
}

// ItemDetails is the owner-aware detail view of an item: the item itself,
// the closest APPROVED bookings around now (owner only), and its comments.
type ItemDetails struct {
	Item
	LastBooking *BookingRef `json:"last_booking,omitempty"`
	NextBooking *BookingRef `json:"next_booking,omitempty"`
	Comments    []Comment   `json:"comments"`
}
