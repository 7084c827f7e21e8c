package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"

	"github.com/mariemanaya/product-service/models"
	"github.com/mariemanaya/product-service/repositories"
)

// AllergenService manages each user's allergen avoid-list.
type AllergenService struct {
	allergens *repositories.AllergenRepository
}

func NewAllergenService(allergens *repositories.AllergenRepository) *AllergenService {
	return &AllergenService{allergens: allergens}
}

// Update replaces the profile wholesale. Names are trimmed, lowercased
// and deduplicated; order carries no meaning.
func (s *AllergenService) Update(ctx context.Context, uid string, allergens []string) (*models.UserAllergenProfile, error) {
	normalized := make(datatypes.JSONSlice[string], 0, len(allergens))
	seen := make(map[string]bool, len(allergens))
	for _, a := range allergens {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		normalized = append(normalized, a)
	}

	profile := &models.UserAllergenProfile{UID: uid, Allergens: normalized}
	if err := s.allergens.Replace(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get returns the avoid-list; a user without a profile has an empty one.
func (s *AllergenService) Get(ctx context.Context, uid string) ([]string, error) {
	profile, err := s.allergens.FindByUID(ctx, uid)
	if errors.Is(err, repositories.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile.Allergens, nil
}

// Clear drops the profile. Clearing an absent profile is fine.
func (s *AllergenService) Clear(ctx context.Context, uid string) error {
	return s.allergens.DeleteByUID(ctx, uid)
}
