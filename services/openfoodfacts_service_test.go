package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *OpenFoodFactsService {
	s := NewOpenFoodFactsService(baseURL, "product-service-test/1.0 (test@example.com)")
	s.backoff = time.Millisecond
	return s
}

func fullPage(page int) []RawProduct {
	out := make([]RawProduct, searchPageSize)
	for i := range out {
		out[i] = RawProduct{
			Code:        fmt.Sprintf("%d%03d", page, i),
			ProductName: fmt.Sprintf("Item %d-%d", page, i),
		}
	}
	return out
}

func TestLookupByCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "product-service-test/1.0 (test@example.com)", r.Header.Get("User-Agent"))
		assert.Equal(t, "/api/v2/product/0000001.json", r.URL.Path)
		json.NewEncoder(w).Encode(lookupResponse{
			Status:  1,
			Product: &RawProduct{Code: "0000001", ProductName: "Test Bar", NutriscoreGrade: "b"},
		})
	}))
	defer srv.Close()

	raw, err := newTestClient(srv.URL).LookupByCode(context.Background(), "0000001")
	require.NoError(t, err)
	assert.Equal(t, "Test Bar", raw.ProductName)
}

func TestLookupByCodeZeroStatusIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(lookupResponse{Status: 0})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).LookupByCode(context.Background(), "404404")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLookupByCodeServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).LookupByCode(context.Background(), "1")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSearchStopsAtTargetResults(t *testing.T) {
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		page := r.URL.Query().Get("page")
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		var n int
		fmt.Sscanf(page, "%d", &n)
		json.NewEncoder(w).Encode(searchResponse{Products: fullPage(n)})
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).SearchByName(context.Background(), "bar")
	assert.Equal(t, 20, len(got))
	assert.Equal(t, 2, pages)
}

func TestSearchHardCapThreePages(t *testing.T) {
	// Nine unique results per page never reach the 20-candidate target,
	// so the page cap has to end the loop.
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		json.NewEncoder(w).Encode(searchResponse{Products: fullPage(pages)[:9]})
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).SearchByName(context.Background(), "bar")
	assert.Equal(t, 3, pages)
	assert.Equal(t, 27, len(got))
}

func TestSearchEmptyPageStops(t *testing.T) {
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		if pages == 1 {
			json.NewEncoder(w).Encode(searchResponse{Products: fullPage(1)[:4]})
			return
		}
		json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).SearchByName(context.Background(), "bar")
	assert.Equal(t, 2, pages)
	assert.Equal(t, 4, len(got))
}

func TestSearchRetriesRateLimitedPageOnce(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch {
		case calls == 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case r.URL.Query().Get("page") == "1":
			json.NewEncoder(w).Encode(searchResponse{Products: fullPage(1)[:3]})
		default:
			json.NewEncoder(w).Encode(searchResponse{})
		}
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).SearchByName(context.Background(), "bar")
	require.Equal(t, 3, len(got))
	// page 1 twice (429 then ok), page 2 empty body ends it
	assert.Equal(t, 3, calls)
}

func TestSearchRecurringRateLimitReturnsPartial(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("page") == "1" {
			json.NewEncoder(w).Encode(searchResponse{Products: fullPage(1)[:5]})
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).SearchByName(context.Background(), "bar")
	assert.Equal(t, 5, len(got))
	// page 1 ok, page 2 rate limited twice, then give up with partials
	assert.Equal(t, 3, calls)
}

func TestSearchUpstreamErrorReturnsPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			json.NewEncoder(w).Encode(searchResponse{Products: fullPage(1)[:7]})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).SearchByName(context.Background(), "bar")
	assert.Equal(t, 7, len(got))
}

func TestSearchMalformedBodyReturnsPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			json.NewEncoder(w).Encode(searchResponse{Products: fullPage(1)[:2]})
			return
		}
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).SearchByName(context.Background(), "bar")
	assert.Equal(t, 2, len(got))
}

func TestSearchPageClassifies429(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).searchPage(context.Background(), "bar", 1)
	assert.True(t, errors.Is(err, errRateLimited))
}
