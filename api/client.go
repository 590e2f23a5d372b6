// Package api defines the contract this client holds against the
// remote marketplace service. The service is the final authority on
// every money- or stock-affecting mutation; callers re-fetch
// dependent views after a transition instead of patching local state.
package api

import (
	"context"

	"github.com/junaidrashid-git/marketplace-client/models"
)

// OrderItemInput is one cart line in a purchase request.
type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderInput struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress string           `json:"shipping_address"`
	Phone           string           `json:"phone,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

// PurchaseResult carries the business outcome of a wallet purchase.
// A structurally successful response can still report Success=false
// (e.g. the balance changed concurrently); in that case no money
// moved and no order exists.
type PurchaseResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *models.Order `json:"order,omitempty"`
}

type ProductFilter struct {
	SellerID uint
	Status   models.ProductStatus
	Search   string
}

// API is the full set of remote operations the client core consumes.
type API interface {
	// Queries
	Products(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	MyWallet(ctx context.Context) (*models.Wallet, error)
	MyOrders(ctx context.Context) ([]models.Order, error)
	SellerOrders(ctx context.Context) ([]models.Order, error)
	MyStockRequests(ctx context.Context) ([]models.StockRequest, error)
	SellerStockRequests(ctx context.Context) ([]models.StockRequest, error)
	MyRefundRequests(ctx context.Context) ([]models.RefundRequest, error)
	SellerRefundRequests(ctx context.Context) ([]models.RefundRequest, error)

	// Checkout. PurchaseWithWallet is atomic on the remote side:
	// either it debits the wallet, decrements stock for every item
	// and creates the order, or it changes nothing.
	PurchaseWithWallet(ctx context.Context, input CreateOrderInput) (*PurchaseResult, error)
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)

	// Workflow transitions
	CreateStockRequest(ctx context.Context, productID uint, quantity int) (*models.StockRequest, error)
	ApproveStockRequest(ctx context.Context, id uint, expectedCompletionDate string) (*models.StockRequest, error)
	RejectStockRequest(ctx context.Context, id uint) (*models.StockRequest, error)
	CreateRefundRequest(ctx context.Context, orderID uint, amount int64, reason string) (*models.RefundRequest, error)
	ApproveRefundRequest(ctx context.Context, id uint) (*models.RefundRequest, error)
	RejectRefundRequest(ctx context.Context, id uint) (*models.RefundRequest, error)
	UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	ApproveProduct(ctx context.Context, id uint) (*models.Product, error)
	RejectProduct(ctx context.Context, id uint) (*models.Product, error)
}
