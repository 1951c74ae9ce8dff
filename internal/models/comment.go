package models

import "time"

// Comment is feedback left on an item by a user whose booking of that item
// has already ended. AuthorName is snapshotted at creation time so renaming
// a user does not rewrite past comments.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	ItemID     uint      `gorm:"not null;index" json:"item_id"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	AuthorName string    `gorm:"not null" json:"author_name"`
	Created    time.Time `gorm:"column:created_date;not null" json:"created"`
}
