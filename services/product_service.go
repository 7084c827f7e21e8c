package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mariemanaya/product-service/models"
	"github.com/mariemanaya/product-service/repositories"
)

const (
	// Combined cap on search results returned to the caller.
	searchResultCap = 20
	// Upstream supplementing kicks in only below this many local hits.
	localHitThreshold = 10
)

// Upstream is the product database the resolution pipeline falls back to
// on a local miss.
type Upstream interface {
	LookupByCode(ctx context.Context, code string) (*RawProduct, error)
	SearchByName(ctx context.Context, term string) []RawProduct
}

// ProductService is the cache-aside resolution pipeline: local store
// first, upstream on miss, idempotent persistence of what was fetched.
type ProductService struct {
	products *repositories.ProductRepository
	upstream Upstream
	log      *zap.Logger
}

func NewProductService(products *repositories.ProductRepository, upstream Upstream, log *zap.Logger) *ProductService {
	return &ProductService{products: products, upstream: upstream, log: log}
}

// Resolve returns the product for a barcode. A cached record is served
// as-is and never refreshed. On a miss the upstream payload is
// normalized and stored; a duplicate-key conflict means another request
// won the race, so the existing row is read back instead of failing.
func (s *ProductService) Resolve(ctx context.Context, code string) (*models.Product, error) {
	p, err := s.products.FindByCode(ctx, code)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	raw, err := s.upstream.LookupByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	np := NormalizeProduct(raw)
	if np.Code == "" {
		np.Code = code
	}
	if err := s.products.Create(ctx, &np); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			s.log.Debug("concurrent resolution, reusing stored product", zap.String("code", code))
			return s.products.FindByCode(ctx, code)
		}
		return nil, err
	}
	s.log.Info("product cached from upstream", zap.String("code", np.Code))
	return &np, nil
}

// Search matches the local store by name first and, when that yields
// fewer than 10 hits, supplements from the upstream search endpoint.
// Results keep discovery order (local first, then upstream order) and
// are capped at 20; no re-ranking.
func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	results, err := s.products.SearchByName(ctx, term, searchResultCap)
	if err != nil {
		return nil, err
	}
	if len(results) >= localHitThreshold {
		return results, nil
	}

	seen := make(map[string]bool, len(results))
	for _, p := range results {
		seen[p.Code] = true
	}

	for _, raw := range s.upstream.SearchByName(ctx, term) {
		if len(results) >= searchResultCap {
			break
		}
		if raw.ProductName == "" || raw.Code == "" || seen[raw.Code] {
			continue
		}
		p, err := s.storeOrReuse(ctx, raw)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		results = append(results, *p)
		seen[p.Code] = true
	}

	if len(results) > searchResultCap {
		results = results[:searchResultCap]
	}
	return results, nil
}

// storeOrReuse persists an upstream search candidate unless it is
// already cached, tolerating the same create race as Resolve.
func (s *ProductService) storeOrReuse(ctx context.Context, raw RawProduct) (*models.Product, error) {
	p, err := s.products.FindByCode(ctx, raw.Code)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	np := NormalizeProduct(&raw)
	if err := s.products.Create(ctx, &np); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			p, err = s.products.FindByCode(ctx, raw.Code)
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, nil
			}
			return p, err
		}
		return nil, err
	}
	return &np, nil
}
