package models

import "time"

// A product favorited by a user. The composite unique index keeps at
// most one row per (uid, product_code); toggling relies on it.
type Favorite struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UID         string    `gorm:"uniqueIndex:idx_fav_uid_code;not null" json:"uid"`
	ProductCode string    `gorm:"uniqueIndex:idx_fav_uid_code;not null" json:"product_id"`
	CreatedAt   time.Time `json:"created_at"`
}
