package workflow

import (
	"context"

	"github.com/junaidrashid-git/marketplace-client/api"
	"github.com/junaidrashid-git/marketplace-client/models"
)

// Fulfillment walks an order through PENDING -> CONFIRMED -> SHIPPED
// -> DELIVERED, with CANCELLED reachable from any non-terminal state.
type Fulfillment struct {
	API   api.API
	Role  models.Role
	Guard *InFlight
}

func NewFulfillment(a api.API, role models.Role) *Fulfillment {
	return &Fulfillment{API: a, Role: role, Guard: NewInFlight()}
}

// Advance moves the order to its single legal next forward state.
func (f *Fulfillment) Advance(ctx context.Context, order models.Order) (*models.Order, error) {
	next, ok := NextForwardState(order.Status)
	if !ok {
		return nil, ErrTerminal
	}
	return f.update(ctx, order, next)
}

// Cancel is offered alongside every forward step until the order is
// delivered or already cancelled.
func (f *Fulfillment) Cancel(ctx context.Context, order models.Order) (*models.Order, error) {
	return f.update(ctx, order, models.OrderStatusCancelled)
}

func (f *Fulfillment) update(ctx context.Context, order models.Order, to models.OrderStatus) (*models.Order, error) {
	if err := orderTransitionAllowed(f.Role, order.Status, to); err != nil {
		return nil, err
	}
	if !f.Guard.Begin("order", order.ID) {
		return nil, ErrInFlight
	}
	defer f.Guard.End("order", order.ID)

	return f.API.UpdateOrderStatus(ctx, order.ID, to)
}
