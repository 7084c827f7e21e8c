package services

import (
	"strings"

	"gorm.io/datatypes"

	"github.com/mariemanaya/product-service/models"
)

// Sentinels stored instead of empty text; stored fields never carry an
// absent/null value.
const (
	notAvailable = "Not available"
	naShort      = "N/A"
)

// NormalizeProduct maps an upstream payload onto the canonical record.
// It is total: any combination of missing fields yields a valid product.
func NormalizeProduct(raw *RawProduct) models.Product {
	p := models.Product{
		Code:        raw.Code,
		Name:        textOr(raw.ProductName, notAvailable),
		Nutriscore:  naShort,
		Ingredients: textOr(raw.IngredientsText, notAvailable),
		Categories:  textOr(raw.Categories, notAvailable),
		Brand:       textOr(raw.Brands, notAvailable),
		ImageURL:    raw.ImageURL,
		// Upstream labels come as one comma-joined string; the halal flag
		// is a plain substring check on it.
		Halal: strings.Contains(raw.Labels, "Halal"),
	}

	if raw.NutriscoreGrade != "" {
		p.Nutriscore = strings.ToUpper(raw.NutriscoreGrade)
	}

	p.Nutriments = models.Nutriments{
		EnergyKcal:   raw.Nutriments.EnergyKcal,
		Fat:          raw.Nutriments.Fat,
		SaturatedFat: raw.Nutriments.SaturatedFat,
		Carbs:        raw.Nutriments.Carbohydrates,
		Sugars:       raw.Nutriments.Sugars,
		Fiber:        raw.Nutriments.Fiber,
		Proteins:     raw.Nutriments.Proteins,
		Salt:         raw.Nutriments.Salt,
	}

	p.Analysis = models.IngredientAnalysis{
		Vegan:        analysisStatus(raw.IngredientsAnalysisTags, "vegan"),
		Vegetarian:   analysisStatus(raw.IngredientsAnalysisTags, "vegetarian"),
		PalmOil:      analysisStatus(raw.IngredientsAnalysisTags, "palm-oil"),
		AllergenTags: stripTags(raw.AllergensTags),
	}

	p.Processing = models.Processing{
		NovaGroup:    raw.NovaGroup,
		AdditiveTags: stripTags(raw.AdditivesTags),
	}

	p.Environment = models.Environment{
		EcoScore:        strings.ToUpper(textOr(raw.EcoscoreGrade, naShort)),
		CarbonFootprint: raw.Nutriments.CarbonFootprint,
		PackagingTags:   stripTags(raw.PackagingTags),
	}

	return p
}

func textOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// stripTags drops the common "en:" namespace prefix from upstream tags.
func stripTags(tags []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.TrimPrefix(t, "en:"))
	}
	return out
}

// analysisStatus extracts the state for one ingredient-analysis facet:
// "en:vegan" -> "yes", "en:non-vegan" / "en:palm-oil-free" -> "no",
// "en:may-contain-palm-oil" -> "maybe", anything else -> "unknown".
func analysisStatus(tags []string, facet string) string {
	for _, t := range tags {
		t = strings.TrimPrefix(t, "en:")
		switch t {
		case facet:
			return "yes"
		case "non-" + facet, facet + "-free":
			return "no"
		case "maybe-" + facet, "may-contain-" + facet:
			return "maybe"
		}
	}
	return "unknown"
}
