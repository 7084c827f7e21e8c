package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mariemanaya/product-service/models"
)

type AllergenRepository struct {
	db *gorm.DB
}

func NewAllergenRepository(db *gorm.DB) *AllergenRepository {
	return &AllergenRepository{db: db}
}

func (r *AllergenRepository) FindByUID(ctx context.Context, uid string) (*models.UserAllergenProfile, error) {
	var p models.UserAllergenProfile
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Replace upserts the whole profile; the avoid-list is never merged
// field-by-field.
func (r *AllergenRepository) Replace(ctx context.Context, p *models.UserAllergenProfile) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uid"}},
			UpdateAll: true,
		}).
		Create(p).Error
	return translate(err)
}

func (r *AllergenRepository) DeleteByUID(ctx context.Context, uid string) error {
	res := r.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.UserAllergenProfile{})
	return translate(res.Error)
}
