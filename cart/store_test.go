package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junaidrashid-git/marketplace-client/models"
)

func product(id uint, price int64, stock int) models.Product {
	return models.Product{ID: id, Name: "product", Price: price, Stock: stock}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(NewMemory())
	require.NoError(t, err)
	return s
}

func TestAddInsertsAndIncrements(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Add(product(1, 2500000, 3), 2))
	require.NoError(t, s.Add(product(2, 100000, 10), 1))
	require.NoError(t, s.Add(product(1, 2500000, 3), 2)) // 2+2 clamped to stock 3

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ProductID, "insertion order preserved")
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, uint(2), items[1].ProductID)
}

func TestUpdateQuantityClampsAndRemoves(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(product(1, 100, 5), 1))

	require.NoError(t, s.UpdateQuantity(1, 99))
	assert.Equal(t, 5, s.Items()[0].Quantity, "clamped to stock")

	require.NoError(t, s.UpdateQuantity(1, 0))
	assert.Equal(t, 0, s.Len(), "zero quantity removes the line")

	assert.ErrorIs(t, s.UpdateQuantity(42, 1), ErrNotFound)
}

func TestAddRefusesOutOfStock(t *testing.T) {
	s := newTestStore(t)

	err := s.Add(product(1, 100, 0), 100)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 0, s.Len(), "no line created for a sold-out product")

	// An existing line is not bumped either once the product sells out.
	require.NoError(t, s.Add(product(2, 100, 3), 2))
	err = s.Add(product(2, 100, 0), 1)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 2, s.Items()[0].Quantity)

	for _, item := range s.Items() {
		assert.LessOrEqual(t, item.Quantity, item.Stock)
	}
}

func TestQuantityNeverInvalid(t *testing.T) {
	s := newTestStore(t)
	p := product(1, 100, 4)

	require.NoError(t, s.Add(p, -3))
	require.NoError(t, s.Add(p, 100))
	require.NoError(t, s.UpdateQuantity(1, 2))
	require.NoError(t, s.Add(p, 100))

	for _, item := range s.Items() {
		assert.GreaterOrEqual(t, item.Quantity, 1)
		assert.LessOrEqual(t, item.Quantity, 4)
	}
}

func TestTotal(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, int64(0), s.Total(), "empty cart totals zero")

	require.NoError(t, s.Add(product(1, 2500000, 10), 2))
	require.NoError(t, s.Add(product(2, 300000, 10), 3))
	assert.Equal(t, int64(2*2500000+3*300000), s.Total())

	require.NoError(t, s.Remove(1))
	assert.Equal(t, int64(3*300000), s.Total(), "recomputed after removal")
}

func TestClearAndPersistence(t *testing.T) {
	mem := NewMemory()
	s, err := NewStore(mem)
	require.NoError(t, err)
	require.NoError(t, s.Add(product(1, 100, 5), 2))

	// A new store over the same persistence sees the saved items.
	reloaded, err := NewStore(mem)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Len())

	require.NoError(t, s.Clear())
	reloaded, err = NewStore(mem)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Len())
}

func TestRefreshStockClampsAgainstFreshSnapshots(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(product(1, 100, 10), 8))

	// Stock dropped remotely; quantity must follow.
	require.NoError(t, s.RefreshStock([]models.Product{product(1, 100, 3)}))
	item := s.Items()[0]
	assert.Equal(t, 3, item.Stock)
	assert.Equal(t, 3, item.Quantity)

	// Sold out: stock snapshot updates, item stays for checkout to
	// report rather than silently vanishing.
	require.NoError(t, s.RefreshStock([]models.Product{product(1, 100, 0)}))
	item = s.Items()[0]
	assert.Equal(t, 0, item.Stock)
}
