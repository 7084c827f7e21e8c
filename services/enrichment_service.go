package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mariemanaya/product-service/models"
	"github.com/mariemanaya/product-service/repositories"
)

// Fixed phrase in front of the matched allergen names.
const allergenAlertPrefix = "Allergen alert: contains "

// AnnotatedProduct is a product plus per-user request-scoped flags. It is
// produced here and returned to the client, never written back to storage.
type AnnotatedProduct struct {
	models.Product
	IsFavorite       bool   `json:"isFavorite"`
	HasAllergenAlert bool   `json:"hasAllergenAlert"`
	AlertMessage     string `json:"alertMessage,omitempty"`
}

type favoriteSource interface {
	ListByUserAndCodes(ctx context.Context, uid string, codes []string) ([]models.Favorite, error)
}

type profileSource interface {
	FindByUID(ctx context.Context, uid string) (*models.UserAllergenProfile, error)
}

// EnrichmentService attaches favorite and allergen-alert annotations to
// resolved products for one user.
type EnrichmentService struct {
	favorites favoriteSource
	profiles  profileSource
}

func NewEnrichmentService(favorites favoriteSource, profiles profileSource) *EnrichmentService {
	return &EnrichmentService{favorites: favorites, profiles: profiles}
}

// Annotate flags each product for the given user. With no uid it does no
// store reads at all and everything comes back unflagged. Favorites are
// fetched in one IN query across all codes, the allergen profile once.
func (s *EnrichmentService) Annotate(ctx context.Context, products []models.Product, uid string) ([]AnnotatedProduct, error) {
	out := make([]AnnotatedProduct, len(products))
	for i, p := range products {
		out[i] = AnnotatedProduct{Product: p}
	}
	if uid == "" || len(out) == 0 {
		return out, nil
	}

	codes := make([]string, len(products))
	for i, p := range products {
		codes[i] = p.Code
	}
	favs, err := s.favorites.ListByUserAndCodes(ctx, uid, codes)
	if err != nil {
		return nil, err
	}
	favored := make(map[string]bool, len(favs))
	for _, f := range favs {
		favored[f.ProductCode] = true
	}

	profile, err := s.profiles.FindByUID(ctx, uid)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	avoid := make(map[string]bool)
	if profile != nil {
		for _, a := range profile.Allergens {
			avoid[strings.ToLower(a)] = true
		}
	}

	for i := range out {
		out[i].IsFavorite = favored[out[i].Code]
		if len(avoid) == 0 {
			continue
		}
		var matched []string
		for _, tag := range out[i].Analysis.AllergenTags {
			if avoid[strings.ToLower(tag)] {
				matched = append(matched, tag)
			}
		}
		if len(matched) > 0 {
			out[i].HasAllergenAlert = true
			out[i].AlertMessage = allergenAlertPrefix + strings.Join(matched, ", ")
		}
	}
	return out, nil
}
