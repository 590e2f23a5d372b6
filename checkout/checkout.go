// Package checkout validates the cart and shipping input, issues
// exactly one purchase request down one of two payment paths, and
// reconciles local state only after the service confirms.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/junaidrashid-git/marketplace-client/api"
	"github.com/junaidrashid-git/marketplace-client/cart"
	"github.com/junaidrashid-git/marketplace-client/models"
)

type PaymentMethod string

const (
	PaymentWallet       PaymentMethod = "wallet"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
)

// Validation failures are caught before any request is sent.
var (
	ErrEmptyCart           = errors.New("checkout: cart is empty")
	ErrMissingAddress      = errors.New("checkout: shipping address is required")
	ErrMissingPhone        = errors.New("checkout: phone number is required")
	ErrInsufficientBalance = errors.New("checkout: wallet balance is below the cart total")
	ErrPurchaseInFlight    = errors.New("checkout: a purchase is already in progress")
)

// ErrWalletRefresh marks a purchase that settled but whose follow-up
// balance fetch failed. The Result carries the created order; only
// Result.Wallet is missing.
var ErrWalletRefresh = errors.New("checkout: purchase settled but wallet re-fetch failed")

// BusinessError is a rejection reported by a structurally successful
// response. No money moved and no order exists.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return "checkout rejected: " + e.Message
}

type Input struct {
	Method          PaymentMethod
	ShippingAddress string
	Phone           string
	Notes           string
	// WalletBalance is the last fetched balance, consulted for the
	// wallet path only. It is never mutated locally.
	WalletBalance int64
}

// Result reports the created order and, for the wallet path, the
// re-fetched authoritative wallet.
type Result struct {
	Order  *models.Order
	Wallet *models.Wallet
}

type Orchestrator struct {
	API  api.API
	Cart *cart.Store

	mu         sync.Mutex
	purchasing bool
}

func New(a api.API, c *cart.Store) *Orchestrator {
	return &Orchestrator{API: a, Cart: c}
}

// Purchasing reports whether a purchase request is outstanding.
func (o *Orchestrator) Purchasing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.purchasing
}

// Purchase runs the full checkout. Validation short-circuits on the
// first violation; the in-flight guard is released on every path so a
// failure never leaves checkout stuck.
//
// Stock is validated against each line's last known snapshot, so the
// caller should run Cart.RefreshStock with fresh products when the
// checkout view activates; the service re-checks stock and balance
// atomically either way.
//
// An error wrapping ErrWalletRefresh is returned alongside a non-nil
// Result: the order was created and the cart cleared, only the wallet
// snapshot could not be refreshed.
func (o *Orchestrator) Purchase(ctx context.Context, input Input) (*Result, error) {
	if err := o.validate(input); err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.purchasing {
		o.mu.Unlock()
		return nil, ErrPurchaseInFlight
	}
	o.purchasing = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.purchasing = false
		o.mu.Unlock()
	}()

	items := make([]api.OrderItemInput, 0, o.Cart.Len())
	for _, item := range o.Cart.Items() {
		items = append(items, api.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	orderInput := api.CreateOrderInput{
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		Phone:           input.Phone,
		Notes:           input.Notes,
	}

	if input.Method == PaymentWallet {
		return o.purchaseWithWallet(ctx, orderInput)
	}
	return o.createPendingOrder(ctx, orderInput)
}

func (o *Orchestrator) validate(input Input) error {
	items := o.Cart.Items()
	if len(items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range items {
		if item.Stock <= 0 {
			return fmt.Errorf("checkout: %q is out of stock", item.Name)
		}
	}
	if input.ShippingAddress == "" {
		return ErrMissingAddress
	}
	if input.Phone == "" {
		return ErrMissingPhone
	}
	if input.Method == PaymentWallet && o.Cart.Total() > input.WalletBalance {
		return ErrInsufficientBalance
	}
	return nil
}

// purchaseWithWallet settles instantly against the buyer's balance.
// The response's own success flag decides the outcome; only an
// explicit success clears the cart and re-fetches the wallet.
func (o *Orchestrator) purchaseWithWallet(ctx context.Context, input api.CreateOrderInput) (*Result, error) {
	result, err := o.API.PurchaseWithWallet(ctx, input)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &BusinessError{Message: result.Message}
	}

	if err := o.Cart.Clear(); err != nil {
		return nil, err
	}
	wallet, err := o.API.MyWallet(ctx)
	if err != nil {
		// The order exists and the cart is cleared; only the balance
		// snapshot is stale.
		return &Result{Order: result.Order}, fmt.Errorf("%w: %v", ErrWalletRefresh, err)
	}
	return &Result{Order: result.Order, Wallet: wallet}, nil
}

// createPendingOrder issues a plain order awaiting an out-of-band
// bank transfer and admin confirmation. There is no business flag to
// check, so the cart clears on structural success.
func (o *Orchestrator) createPendingOrder(ctx context.Context, input api.CreateOrderInput) (*Result, error) {
	order, err := o.API.CreateOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := o.Cart.Clear(); err != nil {
		return nil, err
	}
	return &Result{Order: order}, nil
}
