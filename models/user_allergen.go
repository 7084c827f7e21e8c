package models

import (
	"time"

	"gorm.io/datatypes"
)

// A user's declared allergen avoid-list. One row per user, replaced
// wholesale on every update. Names are lowercased at write time.
type UserAllergenProfile struct {
	UID       string                      `gorm:"primaryKey" json:"uid"`
	Allergens datatypes.JSONSlice[string] `json:"allergens"`
	UpdatedAt time.Time                   `json:"updated_at"`
}
