package models

import "time"

type Order struct {
	ID              uint        `json:"id"`
	BuyerID         uint        `json:"buyer_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	Phone           string      `json:"phone"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem freezes the unit price at purchase time. Later product
// price changes never alter historical orders.
type OrderItem struct {
	ID        uint   `json:"id"`
	OrderID   uint   `json:"order_id"`
	ProductID uint   `json:"product_id"`
	SellerID  uint   `json:"seller_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

func (i OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}
