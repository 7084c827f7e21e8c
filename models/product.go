package models

import (
	"time"

	"gorm.io/datatypes"
)

// Canonical product record built from an Open Food Facts payload.
// Keyed by the upstream barcode; never generated locally, never updated
// once stored.
type Product struct {
	Code        string `gorm:"primaryKey;type:varchar(64)" json:"code"`
	Name        string `gorm:"not null" json:"name"`
	Nutriscore  string `gorm:"type:varchar(16)" json:"nutriscore"`
	Ingredients string `gorm:"type:text" json:"ingredients"`
	Categories  string `gorm:"type:text" json:"categories"`
	Brand       string `json:"brand"`
	Halal       bool   `json:"halal"`
	ImageURL    string `json:"image_url"`

	Nutriments  Nutriments         `gorm:"embedded;embeddedPrefix:nutriment_" json:"nutriments"`
	Analysis    IngredientAnalysis `gorm:"embedded" json:"analysis"`
	Processing  Processing         `gorm:"embedded" json:"processing"`
	Environment Environment        `gorm:"embedded" json:"environment"`

	CreatedAt time.Time `json:"created_at"`
}

// Per-100g nutrition facts. Zero means not reported by the upstream.
type Nutriments struct {
	EnergyKcal   float64 `json:"energy_kcal"`
	Fat          float64 `json:"fat"`
	SaturatedFat float64 `json:"saturated_fat"`
	Carbs        float64 `json:"carbs"`
	Sugars       float64 `json:"sugars"`
	Fiber        float64 `json:"fiber"`
	Proteins     float64 `json:"proteins"`
	Salt         float64 `json:"salt"`
}

type IngredientAnalysis struct {
	Vegan        string                      `gorm:"type:varchar(16)" json:"vegan"`
	Vegetarian   string                      `gorm:"type:varchar(16)" json:"vegetarian"`
	PalmOil      string                      `gorm:"type:varchar(16)" json:"palm_oil"`
	AllergenTags datatypes.JSONSlice[string] `json:"allergen_tags"`
}

type Processing struct {
	NovaGroup    int                         `json:"nova_group"`
	AdditiveTags datatypes.JSONSlice[string] `json:"additive_tags"`
}

type Environment struct {
	EcoScore        string                      `gorm:"type:varchar(16)" json:"eco_score"`
	CarbonFootprint float64                     `json:"carbon_footprint"`
	PackagingTags   datatypes.JSONSlice[string] `json:"packaging_tags"`
}
