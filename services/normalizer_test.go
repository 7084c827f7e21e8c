package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProductDefaults(t *testing.T) {
	// Every field missing must still yield a valid record.
	p := NormalizeProduct(&RawProduct{Code: "123"})

	assert.Equal(t, "123", p.Code)
	assert.Equal(t, "Not available", p.Name)
	assert.Equal(t, "N/A", p.Nutriscore)
	assert.Equal(t, "Not available", p.Ingredients)
	assert.Equal(t, "Not available", p.Categories)
	assert.Equal(t, "Not available", p.Brand)
	assert.False(t, p.Halal)
	assert.Equal(t, "N/A", p.Environment.EcoScore)
	assert.Equal(t, "unknown", p.Analysis.Vegan)
	assert.Equal(t, "unknown", p.Analysis.Vegetarian)
	assert.Equal(t, "unknown", p.Analysis.PalmOil)
	assert.Empty(t, p.Analysis.AllergenTags)
}

func TestNormalizeProductMapsFields(t *testing.T) {
	raw := &RawProduct{
		Code:            "3017620422003",
		ProductName:     "Nutella",
		NutriscoreGrade: "e",
		IngredientsText: "Sugar, palm oil, hazelnuts",
		Categories:      "Spreads",
		Brands:          "Ferrero",
		Labels:          "Gluten-free, Halal",
		ImageURL:        "https://images.example/nutella.jpg",
		Nutriments: rawNutriments{
			EnergyKcal: 539,
			Sugars:     56.3,
			Salt:       0.107,
		},
		IngredientsAnalysisTags: []string{"en:palm-oil", "en:non-vegan", "en:vegetarian-status-unknown"},
		AllergensTags:           []string{"en:nuts", "en:milk"},
		NovaGroup:               4,
		AdditivesTags:           []string{"en:e322", "en:e471"},
		EcoscoreGrade:           "d",
		PackagingTags:           []string{"en:glass-jar"},
	}

	p := NormalizeProduct(raw)

	assert.Equal(t, "Nutella", p.Name)
	assert.Equal(t, "E", p.Nutriscore)
	assert.True(t, p.Halal)
	assert.Equal(t, 539.0, p.Nutriments.EnergyKcal)
	assert.Equal(t, []string{"nuts", "milk"}, []string(p.Analysis.AllergenTags))
	assert.Equal(t, "yes", p.Analysis.PalmOil)
	assert.Equal(t, "no", p.Analysis.Vegan)
	assert.Equal(t, "unknown", p.Analysis.Vegetarian)
	assert.Equal(t, 4, p.Processing.NovaGroup)
	assert.Equal(t, []string{"e322", "e471"}, []string(p.Processing.AdditiveTags))
	assert.Equal(t, "D", p.Environment.EcoScore)
	assert.Equal(t, []string{"glass-jar"}, []string(p.Environment.PackagingTags))
}

func TestNormalizeProductHalalIsCaseSensitive(t *testing.T) {
	assert.False(t, NormalizeProduct(&RawProduct{Labels: "halal"}).Halal)
	assert.True(t, NormalizeProduct(&RawProduct{Labels: "Certified Halal"}).Halal)
}

func TestNormalizeProductPalmOilFree(t *testing.T) {
	p := NormalizeProduct(&RawProduct{
		IngredientsAnalysisTags: []string{"en:palm-oil-free", "en:vegan"},
	})
	assert.Equal(t, "no", p.Analysis.PalmOil)
	assert.Equal(t, "yes", p.Analysis.Vegan)
}
