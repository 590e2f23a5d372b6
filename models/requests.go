package models

import "time"

// StockRequest is a buyer's pre-order against an out-of-stock
// product. Only the owning seller transitions it.
type StockRequest struct {
	ID        uint          `json:"id"`
	ProductID uint          `json:"product_id"`
	BuyerID   uint          `json:"buyer_id"`
	Quantity  int           `json:"quantity"`
	Status    RequestStatus `json:"status"`
	// Opaque YYYY-MM-DD date, set on approval.
	ExpectedCompletionDate string    `json:"expected_completion_date,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// RefundRequest is created by an order's buyer; approval credits the
// buyer's wallet on the remote side. Amount never exceeds the order
// total.
type RefundRequest struct {
	ID        uint          `json:"id"`
	OrderID   uint          `json:"order_id"`
	BuyerID   uint          `json:"buyer_id"`
	Amount    int64         `json:"amount"` // minor units
	Reason    string        `json:"reason,omitempty"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
