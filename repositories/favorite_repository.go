package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mariemanaya/product-service/models"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create inserts a favorite; the (uid, product_code) unique index turns a
// duplicate toggle race into ErrConflict.
func (r *FavoriteRepository) Create(ctx context.Context, f *models.Favorite) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *FavoriteRepository) FindByUserAndCode(ctx context.Context, uid, code string) (*models.Favorite, error) {
	var f models.Favorite
	err := r.db.WithContext(ctx).
		Where("uid = ? AND product_code = ?", uid, code).
		First(&f).Error
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *FavoriteRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Favorite{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, uid string) ([]models.Favorite, error) {
	var out []models.Favorite
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// ListByUserAndCodes fetches the user's favorites among the given codes in
// a single IN query; enrichment must not go one query per product.
func (r *FavoriteRepository) ListByUserAndCodes(ctx context.Context, uid string, codes []string) ([]models.Favorite, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var out []models.Favorite
	err := r.db.WithContext(ctx).
		Where("uid = ? AND product_code IN ?", uid, codes).
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}
