// Package workflow implements the four approval state machines:
// product moderation, stock pre-order requests, refund requests and
// order fulfillment. PENDING is the sole non-terminal state for the
// first three; fulfillment is an ordered chain. Only the counterparty
// role may transition an entity, and every transition call is guarded
// against duplicate submission per item.
package workflow

import (
	"errors"
	"fmt"

	"github.com/junaidrashid-git/marketplace-client/models"
)

var (
	ErrNotPending   = errors.New("workflow: only a pending item can be transitioned")
	ErrNotAllowed   = errors.New("workflow: role is not allowed to transition this item")
	ErrInFlight     = errors.New("workflow: a request for this item is already in progress")
	ErrTerminal     = errors.New("workflow: order is in a terminal state")
	ErrMissingDate  = errors.New("workflow: expected completion date is required to approve")
	ErrNotInStock   = errors.New("workflow: product still has stock; pre-order not needed")
	ErrAmountRange  = errors.New("workflow: refund amount must be positive and not exceed the order total")
	ErrDuplicate    = errors.New("workflow: a pending refund request already exists for this order")
	ErrOrderInvalid = errors.New("workflow: refunds cannot target a cancelled order")
)

// ModerationTransitions lists the product statuses the given role may
// move a product to. Only an admin acts on a pending product.
func ModerationTransitions(role models.Role, status models.ProductStatus) []models.ProductStatus {
	if role != models.RoleAdmin || status != models.ProductStatusPending {
		return nil
	}
	return []models.ProductStatus{models.ProductStatusApproved, models.ProductStatusRejected}
}

// StockRequestTransitions: the owning seller decides a pending
// pre-order request.
func StockRequestTransitions(role models.Role, status models.RequestStatus) []models.RequestStatus {
	if role != models.RoleSeller || status != models.RequestStatusPending {
		return nil
	}
	return []models.RequestStatus{models.RequestStatusApproved, models.RequestStatusRejected}
}

// RefundTransitions: the seller of the order's items decides a
// pending refund request.
func RefundTransitions(role models.Role, status models.RequestStatus) []models.RequestStatus {
	if role != models.RoleSeller || status != models.RequestStatusPending {
		return nil
	}
	return []models.RequestStatus{models.RequestStatusApproved, models.RequestStatusRejected}
}

var forward = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusPending:   models.OrderStatusConfirmed,
	models.OrderStatusConfirmed: models.OrderStatusShipped,
	models.OrderStatusShipped:   models.OrderStatusDelivered,
}

// NextForwardState returns the single legal next stage of the
// fulfillment chain. No stage may be skipped.
func NextForwardState(status models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := forward[status]
	return next, ok
}

// OrderTransitions lists every status the role may move an order to:
// the next forward stage, plus CANCELLED while non-terminal.
func OrderTransitions(role models.Role, status models.OrderStatus) []models.OrderStatus {
	if role != models.RoleSeller || status.Terminal() {
		return nil
	}
	var out []models.OrderStatus
	if next, ok := forward[status]; ok {
		out = append(out, next)
	}
	return append(out, models.OrderStatusCancelled)
}

func orderTransitionAllowed(role models.Role, from, to models.OrderStatus) error {
	if from.Terminal() {
		return ErrTerminal
	}
	for _, legal := range OrderTransitions(role, from) {
		if legal == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrNotAllowed, from, to)
}
