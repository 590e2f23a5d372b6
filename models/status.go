package models

type Role string
type OrderStatus string
type ProductStatus string
type RequestStatus string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"

	// Order statuses (forward chain plus cancellation)
	OrderStatusPending   OrderStatus = "PENDING"   // Order placed, awaiting seller confirmation
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // Confirmed by seller
	OrderStatusShipped   OrderStatus = "SHIPPED"   // Out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // Buyer received the items
	OrderStatusCancelled OrderStatus = "CANCELLED" // Cancelled before delivery

	// Product moderation statuses
	ProductStatusPending  ProductStatus = "PENDING"  // Awaiting admin review, not publicly listed
	ProductStatusApproved ProductStatus = "APPROVED" // Publicly listable
	ProductStatusRejected ProductStatus = "REJECTED" // Declined by admin

	// Stock and refund request statuses
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Terminal returns true when no further transition is legal for an order.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s ProductStatus) Terminal() bool {
	return s != ProductStatusPending
}

func (s RequestStatus) Terminal() bool {
	return s != RequestStatusPending
}
