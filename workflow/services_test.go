package workflow

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junaidrashid-git/marketplace-client/api"
	"github.com/junaidrashid-git/marketplace-client/apitest"
	"github.com/junaidrashid-git/marketplace-client/models"
)

func newRemote(t *testing.T) (*apitest.Server, api.API) {
	t.Helper()
	remote := apitest.NewServer()
	ts := httptest.NewServer(remote.Engine)
	t.Cleanup(ts.Close)
	return remote, api.NewHTTP(ts.URL, "")
}

func TestModerationApproveReject(t *testing.T) {
	remote, client := newRemote(t)
	ctx := context.Background()
	m := NewModeration(client, models.RoleAdmin)

	pending := remote.AddProduct(models.Product{Name: "scarf", Price: 100, Status: models.ProductStatusPending})
	listed, err := m.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	approved, err := m.Approve(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusApproved, approved.Status)

	// Terminal now: a second decision refuses locally.
	_, err = m.Approve(ctx, *approved)
	assert.ErrorIs(t, err, ErrNotPending)
	_, err = m.Reject(ctx, *approved)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestModerationRoleGate(t *testing.T) {
	_, client := newRemote(t)
	m := NewModeration(client, models.RoleSeller)

	_, err := m.Approve(context.Background(), models.Product{ID: 1, Status: models.ProductStatusPending})
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestStockRequestLifecycle(t *testing.T) {
	remote, client := newRemote(t)
	ctx := context.Background()

	buyer := NewStockRequests(client, models.RoleBuyer)
	seller := NewStockRequests(client, models.RoleSeller)

	soldOut := remote.AddProduct(models.Product{Name: "kettle", Price: 100, Stock: 0})
	inStock := remote.AddProduct(models.Product{Name: "plate", Price: 100, Stock: 5})

	_, err := buyer.Create(ctx, inStock, 1)
	assert.ErrorIs(t, err, ErrNotInStock)

	req, err := buyer.Create(ctx, soldOut, 3)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, req.Status)

	// Approval without a date refuses before any request is sent.
	_, err = seller.Approve(ctx, *req, "")
	assert.ErrorIs(t, err, ErrMissingDate)

	approved, err := seller.Approve(ctx, *req, "2026-10-01")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, approved.Status)
	assert.Equal(t, "2026-10-01", approved.ExpectedCompletionDate)

	_, err = seller.Reject(ctx, *approved)
	assert.ErrorIs(t, err, ErrNotPending)

	// Buyers never transition requests.
	other, err := buyer.Create(ctx, soldOut, 1)
	require.NoError(t, err)
	_, err = buyer.Reject(ctx, *other)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestRefundCreateGuards(t *testing.T) {
	remote, client := newRemote(t)
	ctx := context.Background()
	refunds := NewRefunds(client, models.RoleBuyer)

	order := remote.AddOrder(models.Order{
		ID:          7,
		BuyerID:     remote.BuyerID,
		TotalAmount: 500000,
		Status:      models.OrderStatusDelivered,
	})

	// Boundary: exactly the order total is allowed.
	req, err := refunds.Create(ctx, order, 500000, "arrived broken", nil)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, req.Status)

	// One minor unit over is rejected locally, never sent.
	_, err = refunds.Create(ctx, order, 500001, "", nil)
	assert.ErrorIs(t, err, ErrAmountRange)
	_, err = refunds.Create(ctx, order, 0, "", nil)
	assert.ErrorIs(t, err, ErrAmountRange)

	// A second request while one is PENDING against order #7 is
	// refused by the local lookup.
	mine, err := client.MyRefundRequests(ctx)
	require.NoError(t, err)
	_, err = refunds.Create(ctx, order, 100, "", mine)
	assert.ErrorIs(t, err, ErrDuplicate)

	cancelled := remote.AddOrder(models.Order{TotalAmount: 100, Status: models.OrderStatusCancelled})
	_, err = refunds.Create(ctx, cancelled, 100, "", nil)
	assert.ErrorIs(t, err, ErrOrderInvalid)
}

func TestRefundApprovalCreditsWalletOnce(t *testing.T) {
	remote, client := newRemote(t)
	ctx := context.Background()

	buyer := NewRefunds(client, models.RoleBuyer)
	seller := NewRefunds(client, models.RoleSeller)
	remote.SetBalance(remote.BuyerID, 1000)

	order := remote.AddOrder(models.Order{
		BuyerID:     remote.BuyerID,
		TotalAmount: 300,
		Status:      models.OrderStatusDelivered,
	})
	req, err := buyer.Create(ctx, order, 300, "", nil)
	require.NoError(t, err)

	approved, err := seller.Approve(ctx, *req)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, approved.Status)
	assert.Equal(t, int64(1300), remote.Wallets[remote.BuyerID].Balance)

	// Terminal: a repeat decision refuses locally, balance untouched.
	_, err = seller.Approve(ctx, *approved)
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Equal(t, int64(1300), remote.Wallets[remote.BuyerID].Balance)
}

func TestFulfillmentChain(t *testing.T) {
	remote, client := newRemote(t)
	ctx := context.Background()
	f := NewFulfillment(client, models.RoleSeller)

	order := remote.AddOrder(models.Order{TotalAmount: 100, Status: models.OrderStatusPending})

	for _, want := range []models.OrderStatus{
		models.OrderStatusConfirmed,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		next, err := f.Advance(ctx, order)
		require.NoError(t, err)
		assert.Equal(t, want, next.Status)
		order = *next
	}

	_, err := f.Advance(ctx, order)
	assert.ErrorIs(t, err, ErrTerminal)
	_, err = f.Cancel(ctx, order)
	assert.ErrorIs(t, err, ErrTerminal)
}

func TestFulfillmentCancelFromNonTerminal(t *testing.T) {
	remote, client := newRemote(t)
	ctx := context.Background()
	f := NewFulfillment(client, models.RoleSeller)

	order := remote.AddOrder(models.Order{TotalAmount: 100, Status: models.OrderStatusShipped})
	cancelled, err := f.Cancel(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	_, err = f.Cancel(ctx, *cancelled)
	assert.ErrorIs(t, err, ErrTerminal)
}

func TestConfirmerQueuesAndExecutes(t *testing.T) {
	var executed []Command
	c := NewConfirmer(func(ctx context.Context, cmd Command) error {
		executed = append(executed, cmd)
		return nil
	})

	assert.ErrorIs(t, c.Confirm(context.Background()), ErrNothingPending)

	c.Request(Command{Kind: CommandApproveRefund, Payload: uint(3)})
	c.Request(Command{Kind: CommandRejectRefund, Payload: uint(4)})
	require.NotNil(t, c.Pending())
	assert.Equal(t, CommandRejectRefund, c.Pending().Kind, "latest request wins")

	require.NoError(t, c.Confirm(context.Background()))
	require.Len(t, executed, 1)
	assert.Equal(t, uint(4), executed[0].Payload)
	assert.Nil(t, c.Pending())

	c.Request(Command{Kind: CommandApproveProduct, Payload: uint(9)})
	c.Cancel()
	assert.Nil(t, c.Pending())
	assert.ErrorIs(t, c.Confirm(context.Background()), ErrNothingPending)
}
