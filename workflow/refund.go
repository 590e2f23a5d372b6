package workflow

import (
	"context"

	"github.com/junaidrashid-git/marketplace-client/api"
	"github.com/junaidrashid-git/marketplace-client/models"
)

// Refunds: the buyer of an order files a request, the seller of its
// items decides it. Approval credits the buyer's wallet on the remote
// side, exactly once.
type Refunds struct {
	API   api.API
	Role  models.Role
	Guard *InFlight
}

func NewRefunds(a api.API, role models.Role) *Refunds {
	return &Refunds{API: a, Role: role, Guard: NewInFlight()}
}

// Create validates locally before anything is sent: the order must
// not be cancelled, the amount must fit inside the order total, and
// the buyer must not already have a pending request for the same
// order. The last check is a lookup over the buyer's own refund list;
// server-side uniqueness is not assumed.
func (r *Refunds) Create(ctx context.Context, order models.Order, amount int64, reason string, existing []models.RefundRequest) (*models.RefundRequest, error) {
	if order.Status == models.OrderStatusCancelled {
		return nil, ErrOrderInvalid
	}
	if amount <= 0 || amount > order.TotalAmount {
		return nil, ErrAmountRange
	}
	for _, req := range existing {
		if req.OrderID == order.ID && req.Status == models.RequestStatusPending {
			return nil, ErrDuplicate
		}
	}
	if !r.Guard.Begin("refund-create", order.ID) {
		return nil, ErrInFlight
	}
	defer r.Guard.End("refund-create", order.ID)

	return r.API.CreateRefundRequest(ctx, order.ID, amount, reason)
}

func (r *Refunds) Approve(ctx context.Context, request models.RefundRequest) (*models.RefundRequest, error) {
	return r.transition(ctx, request, models.RequestStatusApproved)
}

func (r *Refunds) Reject(ctx context.Context, request models.RefundRequest) (*models.RefundRequest, error) {
	return r.transition(ctx, request, models.RequestStatusRejected)
}

func (r *Refunds) transition(ctx context.Context, request models.RefundRequest, to models.RequestStatus) (*models.RefundRequest, error) {
	if request.Status != models.RequestStatusPending {
		return nil, ErrNotPending
	}
	if len(RefundTransitions(r.Role, request.Status)) == 0 {
		return nil, ErrNotAllowed
	}
	if !r.Guard.Begin("refund", request.ID) {
		return nil, ErrInFlight
	}
	defer r.Guard.End("refund", request.ID)

	if to == models.RequestStatusApproved {
		return r.API.ApproveRefundRequest(ctx, request.ID)
	}
	return r.API.RejectRefundRequest(ctx, request.ID)
}
