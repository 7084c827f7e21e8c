package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mariemanaya/product-service/models"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// FindByCodes returns whatever subset of the given codes exists locally.
func (r *ProductRepository) FindByCodes(ctx context.Context, codes []string) ([]models.Product, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var out []models.Product
	err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// SearchByName does a case-insensitive substring match on the product name.
// lower(...) LIKE keeps the query portable across postgres and sqlite.
func (r *ProductRepository) SearchByName(ctx context.Context, term string, limit int) ([]models.Product, error) {
	var out []models.Product
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE lower(?)", "%"+term+"%").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Create inserts a new product. A duplicate code surfaces as ErrConflict;
// the resolution pipeline treats that as a benign race and re-reads.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, translate(err)
}
