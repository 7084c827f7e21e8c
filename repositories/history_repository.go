package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mariemanaya/product-service/models"
)

// History reads are bounded to the most recent entries.
const historyLimit = 50

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, e *models.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

// ListByUser returns the user's most recent entries, newest first.
func (r *HistoryRepository) ListByUser(ctx context.Context, uid string) ([]models.HistoryEntry, error) {
	var out []models.HistoryEntry
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// DeleteByID removes one entry; deleting an absent ID is ErrNotFound,
// never a silent success.
func (r *HistoryRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.HistoryEntry{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByUser clears a user's history and reports how many rows went.
func (r *HistoryRepository) DeleteAllByUser(ctx context.Context, uid string) (int64, error) {
	res := r.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.HistoryEntry{})
	return res.RowsAffected, translate(res.Error)
}
