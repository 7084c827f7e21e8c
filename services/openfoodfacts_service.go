package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	searchPageSize = 10
	// Hard cap on upstream pages per search, so one request never reads
	// more than 30 upstream records.
	maxSearchPages = 3
	// Stop paginating once this many candidates have been collected.
	searchTargetResults = 20

	rateLimitBackoff = 2 * time.Second
)

// OpenFoodFactsService talks to the Open Food Facts HTTP API: a per-code
// lookup endpoint and a paginated free-text search endpoint.
type OpenFoodFactsService struct {
	baseURL   string
	userAgent string

	client       *http.Client
	searchClient *http.Client
	backoff      time.Duration
}

// NewOpenFoodFactsService builds the client. userAgent identifies this
// service to the upstream, which requires a contact-style signature on
// every call.
func NewOpenFoodFactsService(baseURL, userAgent string) *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL:      baseURL,
		userAgent:    userAgent,
		client:       &http.Client{},
		searchClient: &http.Client{Timeout: 5 * time.Second},
		backoff:      rateLimitBackoff,
	}
}

// RawProduct is the upstream payload shape. Every field is optional;
// normalization supplies defaults.
type RawProduct struct {
	Code                    string        `json:"code"`
	ProductName             string        `json:"product_name"`
	NutriscoreGrade         string        `json:"nutriscore_grade"`
	IngredientsText         string        `json:"ingredients_text"`
	Categories              string        `json:"categories"`
	Brands                  string        `json:"brands"`
	Labels                  string        `json:"labels"`
	ImageURL                string        `json:"image_url"`
	Nutriments              rawNutriments `json:"nutriments"`
	IngredientsAnalysisTags []string      `json:"ingredients_analysis_tags"`
	AllergensTags           []string      `json:"allergens_tags"`
	NovaGroup               int           `json:"nova_group"`
	AdditivesTags           []string      `json:"additives_tags"`
	EcoscoreGrade           string        `json:"ecoscore_grade"`
	PackagingTags           []string      `json:"packaging_tags"`
}

type rawNutriments struct {
	EnergyKcal      float64 `json:"energy-kcal_100g"`
	Fat             float64 `json:"fat_100g"`
	SaturatedFat    float64 `json:"saturated-fat_100g"`
	Carbohydrates   float64 `json:"carbohydrates_100g"`
	Sugars          float64 `json:"sugars_100g"`
	Fiber           float64 `json:"fiber_100g"`
	Proteins        float64 `json:"proteins_100g"`
	Salt            float64 `json:"salt_100g"`
	CarbonFootprint float64 `json:"carbon-footprint_100g"`
}

type lookupResponse struct {
	Status  int         `json:"status"`
	Product *RawProduct `json:"product"`
}

type searchResponse struct {
	Products []RawProduct `json:"products"`
}

// LookupByCode fetches a single product by barcode. A zero/absent status
// or missing product body is ErrProductNotFound; anything else that goes
// wrong is ErrUpstream.
func (s *OpenFoodFactsService) LookupByCode(ctx context.Context, code string) (*RawProduct, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json", s.baseURL, url.PathEscape(code))

	body, status, err := s.get(ctx, s.client, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if status == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: lookup returned %d", ErrUpstream, status)
	}

	var lr lookupResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("%w: bad lookup body: %v", ErrUpstream, err)
	}
	if lr.Status == 0 || lr.Product == nil {
		return nil, ErrProductNotFound
	}
	return lr.Product, nil
}

// SearchByName pages through upstream search results, 10 per page, at
// most 3 pages, stopping early once 20 candidates are in hand or a page
// comes back empty. A 429 gets one fixed-backoff retry of the same page;
// any other failure ends pagination and whatever was accumulated is
// returned as-is — partial results are valid, not an error.
func (s *OpenFoodFactsService) SearchByName(ctx context.Context, term string) []RawProduct {
	var acc []RawProduct
	for page := 1; page <= maxSearchPages; page++ {
		batch, err := s.searchPage(ctx, term, page)
		if errors.Is(err, errRateLimited) {
			time.Sleep(s.backoff)
			batch, err = s.searchPage(ctx, term, page)
		}
		if err != nil || len(batch) == 0 {
			return acc
		}
		acc = append(acc, batch...)
		if len(acc) >= searchTargetResults {
			return acc
		}
	}
	return acc
}

func (s *OpenFoodFactsService) searchPage(ctx context.Context, term string, page int) ([]RawProduct, error) {
	q := url.Values{}
	q.Set("search_terms", term)
	q.Set("search_simple", "1")
	q.Set("action", "process")
	q.Set("json", "1")
	q.Set("page_size", fmt.Sprintf("%d", searchPageSize))
	q.Set("page", fmt.Sprintf("%d", page))
	u := fmt.Sprintf("%s/cgi/search.pl?%s", s.baseURL, q.Encode())

	body, status, err := s.get(ctx, s.searchClient, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if status == http.StatusTooManyRequests {
		return nil, errRateLimited
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: search returned %d", ErrUpstream, status)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("%w: bad search body: %v", ErrUpstream, err)
	}
	return sr.Products, nil
}

func (s *OpenFoodFactsService) get(ctx context.Context, client *http.Client, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
