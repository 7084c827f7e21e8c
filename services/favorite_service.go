package services

import (
	"context"
	"errors"
	"time"

	"github.com/mariemanaya/product-service/models"
	"github.com/mariemanaya/product-service/repositories"
)

// Toggle outcomes reported to the client.
const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

// FavoriteService toggles and lists per-user favorites.
type FavoriteService struct {
	favorites *repositories.FavoriteRepository
	products  *repositories.ProductRepository
}

func NewFavoriteService(favorites *repositories.FavoriteRepository, products *repositories.ProductRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, products: products}
}

// FavoriteSummary is what the favorites list endpoint returns: the
// favorite row joined with a few product fields.
type FavoriteSummary struct {
	ID          string    `json:"id"`
	ProductCode string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	ImageURL    string    `json:"image_url"`
	Nutriscore  string    `json:"nutriscore"`
	CreatedAt   time.Time `json:"created_at"`
}

// Toggle adds the favorite if absent and removes it if present. The
// product must exist locally. A create conflict means a concurrent
// toggle already added the row, which counts as added.
func (s *FavoriteService) Toggle(ctx context.Context, uid, code string) (string, error) {
	if _, err := s.products.FindByCode(ctx, code); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrProductNotFound
		}
		return "", err
	}

	existing, err := s.favorites.FindByUserAndCode(ctx, uid, code)
	switch {
	case err == nil:
		if derr := s.favorites.DeleteByID(ctx, existing.ID); derr != nil && !errors.Is(derr, repositories.ErrNotFound) {
			return "", derr
		}
		return ToggleRemoved, nil
	case errors.Is(err, repositories.ErrNotFound):
		f := &models.Favorite{UID: uid, ProductCode: code}
		if cerr := s.favorites.Create(ctx, f); cerr != nil {
			if errors.Is(cerr, repositories.ErrConflict) {
				return ToggleAdded, nil
			}
			return "", cerr
		}
		return ToggleAdded, nil
	default:
		return "", err
	}
}

// List returns the user's favorites joined with product details. A
// favorite whose product row is gone still shows up, as an unknown
// product.
func (s *FavoriteService) List(ctx context.Context, uid string) ([]FavoriteSummary, error) {
	favs, err := s.favorites.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(favs))
	for i, f := range favs {
		codes[i] = f.ProductCode
	}
	known, err := s.products.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]models.Product, len(known))
	for _, p := range known {
		byCode[p.Code] = p
	}

	out := make([]FavoriteSummary, len(favs))
	for i, f := range favs {
		out[i] = FavoriteSummary{
			ID:          f.ID,
			ProductCode: f.ProductCode,
			ProductName: unknownProductName,
			CreatedAt:   f.CreatedAt,
		}
		if p, ok := byCode[f.ProductCode]; ok {
			out[i].ProductName = p.Name
			out[i].ImageURL = p.ImageURL
			out[i].Nutriscore = p.Nutriscore
		}
	}
	return out, nil
}
