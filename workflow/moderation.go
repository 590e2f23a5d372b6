package workflow

import (
	"context"

	"github.com/junaidrashid-git/marketplace-client/api"
	"github.com/junaidrashid-git/marketplace-client/models"
)

// Moderation gates product listings: sellers create products in
// PENDING, an admin approves or rejects them.
type Moderation struct {
	API   api.API
	Role  models.Role
	Guard *InFlight
}

func NewModeration(a api.API, role models.Role) *Moderation {
	return &Moderation{API: a, Role: role, Guard: NewInFlight()}
}

// Pending lists products awaiting review.
func (m *Moderation) Pending(ctx context.Context) ([]models.Product, error) {
	return m.API.Products(ctx, api.ProductFilter{Status: models.ProductStatusPending})
}

func (m *Moderation) Approve(ctx context.Context, product models.Product) (*models.Product, error) {
	return m.transition(ctx, product, models.ProductStatusApproved)
}

func (m *Moderation) Reject(ctx context.Context, product models.Product) (*models.Product, error) {
	return m.transition(ctx, product, models.ProductStatusRejected)
}

func (m *Moderation) transition(ctx context.Context, product models.Product, to models.ProductStatus) (*models.Product, error) {
	if product.Status != models.ProductStatusPending {
		return nil, ErrNotPending
	}
	if len(ModerationTransitions(m.Role, product.Status)) == 0 {
		return nil, ErrNotAllowed
	}
	if !m.Guard.Begin("product", product.ID) {
		return nil, ErrInFlight
	}
	defer m.Guard.End("product", product.ID)

	if to == models.ProductStatusApproved {
		return m.API.ApproveProduct(ctx, product.ID)
	}
	return m.API.RejectProduct(ctx, product.ID)
}
