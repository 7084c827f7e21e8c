package models

import "time"

const (
	ActionScan = "scan"
	ActionView = "view"
)

// One scan or view of a product by a user. ProductCode is a soft
// reference: the product row may be gone by the time the entry is read.
type HistoryEntry struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UID         string    `gorm:"index;not null" json:"uid"`
	ProductCode string    `gorm:"not null" json:"product_id"`
	Action      string    `gorm:"type:varchar(8);not null" json:"action"`
	CreatedAt   time.Time `json:"created_at"`
}
