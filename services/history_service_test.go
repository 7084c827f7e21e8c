package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mariemanaya/product-service/models"
	"github.com/mariemanaya/product-service/repositories"
)

func newHistoryService(t *testing.T, up *stubUpstream) (*HistoryService, *repositories.ProductRepository) {
	t.Helper()
	db := newTestDB(t)
	products := repositories.NewProductRepository(db)
	resolver := NewProductService(products, up, zap.NewNop())
	history := repositories.NewHistoryRepository(db)
	return NewHistoryService(history, products, resolver, zap.NewNop()), products
}

func TestRecordActionResolvesAndLogs(t *testing.T) {
	up := &stubUpstream{byCode: map[string]*RawProduct{
		"555": {Code: "555", ProductName: "Oat Bar"},
	}}
	svc, products := newHistoryService(t, up)

	entry, err := svc.RecordAction(context.Background(), "u1", "555", models.ActionScan)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, models.ActionScan, entry.Action)

	// the scan also cached the product
	_, err = products.FindByCode(context.Background(), "555")
	assert.NoError(t, err)
}

func TestRecordActionUnknownProduct(t *testing.T) {
	svc, _ := newHistoryService(t, &stubUpstream{})

	_, err := svc.RecordAction(context.Background(), "u1", "nope", models.ActionView)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRecordActionRejectsUnknownAction(t *testing.T) {
	svc, _ := newHistoryService(t, &stubUpstream{})

	_, err := svc.RecordAction(context.Background(), "u1", "555", "taste")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestListJoinsProductsAndToleratesMissing(t *testing.T) {
	up := &stubUpstream{byCode: map[string]*RawProduct{
		"111": {Code: "111", ProductName: "Known Snack", ImageURL: "https://img/111.jpg"},
	}}
	svc, _ := newHistoryService(t, up)

	_, err := svc.RecordAction(context.Background(), "u1", "111", models.ActionView)
	require.NoError(t, err)

	// an entry whose product row never existed
	require.NoError(t, svc.history.Create(context.Background(), &models.HistoryEntry{
		UID: "u1", ProductCode: "gone", Action: models.ActionScan,
	}))

	items, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	byCode := map[string]HistoryItem{}
	for _, it := range items {
		byCode[it.ProductCode] = it
	}
	assert.Equal(t, "Known Snack", byCode["111"].ProductName)
	assert.Equal(t, "https://img/111.jpg", byCode["111"].ImageURL)
	assert.Equal(t, "Unknown product", byCode["gone"].ProductName)
}

func TestDeleteMissingEntryIsNotFound(t *testing.T) {
	svc, _ := newHistoryService(t, &stubUpstream{})

	err := svc.Delete(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestClearReportsCount(t *testing.T) {
	up := &stubUpstream{byCode: map[string]*RawProduct{
		"222": {Code: "222", ProductName: "Rice Cakes"},
	}}
	svc, _ := newHistoryService(t, up)

	for i := 0; i < 3; i++ {
		_, err := svc.RecordAction(context.Background(), "u1", "222", models.ActionView)
		require.NoError(t, err)
	}
	_, err := svc.RecordAction(context.Background(), "u2", "222", models.ActionView)
	require.NoError(t, err)

	n, err := svc.Clear(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	left, err := svc.List(context.Background(), "u2")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
