// Package earnings derives a seller's realized revenue from
// delivered orders. Amounts are minor units throughout.
package earnings

import (
	"time"

	"github.com/junaidrashid-git/marketplace-client/models"
)

// CommissionPercent is the platform's fixed cut of every sale.
const CommissionPercent = 5

type Summary struct {
	TotalEarned         int64 `json:"total_earned"`
	ThisMonthEarned     int64 `json:"this_month_earned"`
	DeliveredOrderCount int   `json:"delivered_order_count"`
	// TotalCommission is derived from the net figure as
	// totalEarned * r / (1 - r), not summed per order. The two agree
	// only while the commission rate is constant across all orders.
	TotalCommission int64 `json:"total_commission"`
}

// SellerSubtotal sums the seller's own lines of a (possibly
// multi-seller) order.
func SellerSubtotal(order models.Order, sellerID uint) int64 {
	var subtotal int64
	for _, item := range order.Items {
		if item.SellerID == sellerID {
			subtotal += item.Subtotal()
		}
	}
	return subtotal
}

// Calculate folds the seller's full order list into a Summary. Only
// DELIVERED orders count; "this month" is the calendar month of now
// in now's location.
func Calculate(orders []models.Order, sellerID uint, now time.Time) Summary {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var s Summary
	for _, order := range orders {
		if order.Status != models.OrderStatusDelivered {
			continue
		}
		subtotal := SellerSubtotal(order, sellerID)
		if subtotal == 0 {
			continue
		}

		earning := subtotal * (100 - CommissionPercent) / 100
		s.TotalEarned += earning
		s.DeliveredOrderCount++
		if !order.CreatedAt.Before(monthStart) {
			s.ThisMonthEarned += earning
		}
	}

	s.TotalCommission = s.TotalEarned * CommissionPercent / (100 - CommissionPercent)
	return s
}
