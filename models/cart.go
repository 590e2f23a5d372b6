package models

import "time"

// CartItem is the only entity this client owns. One row per product,
// keyed by ProductID; Position preserves insertion order across
// reloads.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProductID uint      `gorm:"uniqueIndex" json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"` // minor units
	Quantity  int       `json:"quantity"`
	Stock     int       `json:"stock"` // last known stock at add time
	ImageURL  string    `json:"image_url"`
	Position  int       `gorm:"index" json:"position"`
	AddedAt   time.Time `json:"added_at"`
}

// Subtotal is UnitPrice * Quantity for one line.
func (i CartItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}
