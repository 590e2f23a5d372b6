package earnings

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junaidrashid-git/marketplace-client/models"
)

const sellerID uint = 10

func delivered(createdAt time.Time, items ...models.OrderItem) models.Order {
	var total int64
	for _, i := range items {
		total += i.Subtotal()
	}
	return models.Order{
		Items:       items,
		TotalAmount: total,
		Status:      models.OrderStatusDelivered,
		CreatedAt:   createdAt,
	}
}

func line(seller uint, price int64, qty int) models.OrderItem {
	return models.OrderItem{SellerID: seller, UnitPrice: price, Quantity: qty}
}

func TestCalculateCommissionSplit(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Three delivered orders with seller-subtotals 100, 200, 300.
	orders := []models.Order{
		delivered(now, line(sellerID, 100, 1)),
		delivered(now, line(sellerID, 100, 2)),
		delivered(now, line(sellerID, 300, 1)),
	}

	s := Calculate(orders, sellerID, now)
	assert.Equal(t, int64(570), s.TotalEarned)
	assert.Equal(t, int64(30), s.TotalCommission)
	assert.Equal(t, 3, s.DeliveredOrderCount)
	assert.Equal(t, int64(570), s.ThisMonthEarned)
}

func TestCalculateSkipsOtherStatusesAndSellers(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		delivered(now, line(sellerID, 1000, 1), line(99, 5000, 2)), // multi-seller order
		{Status: models.OrderStatusShipped, Items: []models.OrderItem{line(sellerID, 1000, 1)}, CreatedAt: now},
		{Status: models.OrderStatusCancelled, Items: []models.OrderItem{line(sellerID, 1000, 1)}, CreatedAt: now},
		delivered(now, line(99, 1000, 1)), // delivered, but nothing of ours
	}

	s := Calculate(orders, sellerID, now)
	assert.Equal(t, int64(950), s.TotalEarned, "only our line of the multi-seller order counts")
	assert.Equal(t, 1, s.DeliveredOrderCount)
}

func TestCalculateMonthBoundary(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		// first instant of the month, then one minute into last month
		delivered(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), line(sellerID, 1000, 1)),
		delivered(time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC), line(sellerID, 1000, 1)),
	}

	s := Calculate(orders, sellerID, now)
	assert.Equal(t, int64(1900), s.TotalEarned)
	assert.Equal(t, int64(950), s.ThisMonthEarned)
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil, sellerID, time.Now())
	assert.Zero(t, s.TotalEarned)
	assert.Zero(t, s.TotalCommission)
	assert.Zero(t, s.DeliveredOrderCount)
}

func TestWriteReport(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{delivered(now, line(sellerID, 100000, 2))}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, orders, sellerID, now))
	assert.NotZero(t, buf.Len())
}
