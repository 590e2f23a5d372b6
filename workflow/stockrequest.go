package workflow

import (
	"context"

	"github.com/junaidrashid-git/marketplace-client/api"
	"github.com/junaidrashid-git/marketplace-client/models"
)

// StockRequests covers pre-orders: a buyer files one against an
// out-of-stock product, the owning seller answers with an expected
// restock date or a rejection.
type StockRequests struct {
	API   api.API
	Role  models.Role
	Guard *InFlight
}

func NewStockRequests(a api.API, role models.Role) *StockRequests {
	return &StockRequests{API: a, Role: role, Guard: NewInFlight()}
}

// Create files a pre-order request. Only a zero-stock product
// qualifies; a product with stock is simply added to the cart.
func (s *StockRequests) Create(ctx context.Context, product models.Product, quantity int) (*models.StockRequest, error) {
	if product.Stock > 0 {
		return nil, ErrNotInStock
	}
	if quantity < 1 {
		quantity = 1
	}
	if !s.Guard.Begin("stock-request-create", product.ID) {
		return nil, ErrInFlight
	}
	defer s.Guard.End("stock-request-create", product.ID)

	return s.API.CreateStockRequest(ctx, product.ID, quantity)
}

// Approve requires the seller to commit to an expected completion
// date; the buyer sees it as the restock estimate.
func (s *StockRequests) Approve(ctx context.Context, request models.StockRequest, expectedCompletionDate string) (*models.StockRequest, error) {
	if expectedCompletionDate == "" {
		return nil, ErrMissingDate
	}
	if err := s.check(request); err != nil {
		return nil, err
	}
	if !s.Guard.Begin("stock-request", request.ID) {
		return nil, ErrInFlight
	}
	defer s.Guard.End("stock-request", request.ID)

	return s.API.ApproveStockRequest(ctx, request.ID, expectedCompletionDate)
}

func (s *StockRequests) Reject(ctx context.Context, request models.StockRequest) (*models.StockRequest, error) {
	if err := s.check(request); err != nil {
		return nil, err
	}
	if !s.Guard.Begin("stock-request", request.ID) {
		return nil, ErrInFlight
	}
	defer s.Guard.End("stock-request", request.ID)

	return s.API.RejectStockRequest(ctx, request.ID)
}

func (s *StockRequests) check(request models.StockRequest) error {
	if request.Status != models.RequestStatusPending {
		return ErrNotPending
	}
	if len(StockRequestTransitions(s.Role, request.Status)) == 0 {
		return ErrNotAllowed
	}
	return nil
}
