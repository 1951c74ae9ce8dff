package models

import "time"

// ItemRequest is a wish for an item that does not exist yet. Items created
// in response reference the request through their RequestID.
type ItemRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	RequestorID uint      `gorm:"not null;index" json:"requestor_id"`
	Created     time.Time `gorm:"not null" json:"created"`
	Items       []Item    `gorm:"foreignKey:RequestID" json:"items"`
}
