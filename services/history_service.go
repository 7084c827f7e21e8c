package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/mariemanaya/product-service/models"
	"github.com/mariemanaya/product-service/repositories"
)

// HistoryService records scans and views and reads them back joined with
// product details.
type HistoryService struct {
	history  *repositories.HistoryRepository
	products *repositories.ProductRepository
	resolver *ProductService
	log      *zap.Logger
}

func NewHistoryService(history *repositories.HistoryRepository, products *repositories.ProductRepository, resolver *ProductService, log *zap.Logger) *HistoryService {
	return &HistoryService{history: history, products: products, resolver: resolver, log: log}
}

// HistoryItem is a history entry joined with the product it points to.
// The join is best-effort: a missing product row yields a placeholder.
type HistoryItem struct {
	models.HistoryEntry
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url"`
}

const unknownProductName = "Unknown product"

// RecordAction logs a scan or view. The product is resolved first, so
// scanning a new barcode also caches it and an unknown code comes back
// as not found. A failed history write fails the request; it is not
// swallowed.
func (s *HistoryService) RecordAction(ctx context.Context, uid, code, action string) (*models.HistoryEntry, error) {
	if action != models.ActionScan && action != models.ActionView {
		return nil, ErrInvalidAction
	}
	if _, err := s.resolver.Resolve(ctx, code); err != nil {
		return nil, err
	}

	entry := &models.HistoryEntry{UID: uid, ProductCode: code, Action: action}
	if err := s.history.Create(ctx, entry); err != nil {
		s.log.Error("history write failed", zap.String("uid", uid), zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// List returns the user's recent history enriched with product name and
// image. Entries whose product has vanished still come back, with a
// placeholder name.
func (s *HistoryService) List(ctx context.Context, uid string) ([]HistoryItem, error) {
	entries, err := s.history.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !seen[e.ProductCode] {
			seen[e.ProductCode] = true
			codes = append(codes, e.ProductCode)
		}
	}
	known, err := s.products.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]models.Product, len(known))
	for _, p := range known {
		byCode[p.Code] = p
	}

	items := make([]HistoryItem, len(entries))
	for i, e := range entries {
		items[i] = HistoryItem{HistoryEntry: e, ProductName: unknownProductName}
		if p, ok := byCode[e.ProductCode]; ok {
			items[i].ProductName = p.Name
			items[i].ImageURL = p.ImageURL
		}
	}
	return items, nil
}

// Delete removes one entry; an unknown ID is ErrNotFound.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	return s.history.DeleteByID(ctx, id)
}

// Clear wipes the user's whole history and returns how many entries went.
func (s *HistoryService) Clear(ctx context.Context, uid string) (int64, error) {
	return s.history.DeleteAllByUser(ctx, uid)
}
