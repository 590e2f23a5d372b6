package models

import "time"

// Product is a read-only snapshot of remote state. All prices are in
// minor currency units.
type Product struct {
	ID              uint          `json:"id"`
	SellerID        uint          `json:"seller_id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Price           int64         `json:"price"`
	OriginalPrice   int64         `json:"original_price,omitempty"`
	DiscountPercent int           `json:"discount_percent,omitempty"`
	Stock           int           `json:"stock"`
	ImageURL        string        `json:"image_url"`
	Status          ProductStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
