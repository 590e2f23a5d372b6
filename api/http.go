package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/junaidrashid-git/marketplace-client/models"
)

// HTTP talks JSON/REST to the marketplace service.
type HTTP struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTP(baseURL, token string) *HTTP {
	return &HTTP{baseURL: baseURL, token: token, client: &http.Client{}}
}

// errorBody is the service's uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

func (h *HTTP) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", h.token)
	}
	if method != http.MethodGet {
		// One key per request; the service may use it to drop
		// accidental resubmissions of the same mutation.
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach marketplace API: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var e errorBody
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return fmt.Errorf("marketplace API error (%d): %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("marketplace API error (%d): %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse marketplace response: %w", err)
	}
	return nil
}

// -------- Queries --------

func (h *HTTP) Products(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := url.Values{}
	if filter.SellerID != 0 {
		q.Set("seller_id", strconv.FormatUint(uint64(filter.SellerID), 10))
	}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var products []models.Product
	if err := h.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (h *HTTP) MyWallet(ctx context.Context) (*models.Wallet, error) {
	var w models.Wallet
	if err := h.do(ctx, http.MethodGet, "/user/wallet", nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (h *HTTP) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := h.do(ctx, http.MethodGet, "/user/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (h *HTTP) SellerOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := h.do(ctx, http.MethodGet, "/seller/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (h *HTTP) MyStockRequests(ctx context.Context) ([]models.StockRequest, error) {
	var reqs []models.StockRequest
	if err := h.do(ctx, http.MethodGet, "/user/stock-requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (h *HTTP) SellerStockRequests(ctx context.Context) ([]models.StockRequest, error) {
	var reqs []models.StockRequest
	if err := h.do(ctx, http.MethodGet, "/seller/stock-requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (h *HTTP) MyRefundRequests(ctx context.Context) ([]models.RefundRequest, error) {
	var reqs []models.RefundRequest
	if err := h.do(ctx, http.MethodGet, "/user/refund-requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (h *HTTP) SellerRefundRequests(ctx context.Context) ([]models.RefundRequest, error) {
	var reqs []models.RefundRequest
	if err := h.do(ctx, http.MethodGet, "/seller/refund-requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// -------- Checkout --------

func (h *HTTP) PurchaseWithWallet(ctx context.Context, input CreateOrderInput) (*PurchaseResult, error) {
	var result PurchaseResult
	if err := h.do(ctx, http.MethodPost, "/user/orders/wallet", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (h *HTTP) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	var order models.Order
	if err := h.do(ctx, http.MethodPost, "/user/orders", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Workflow transitions --------

func (h *HTTP) CreateStockRequest(ctx context.Context, productID uint, quantity int) (*models.StockRequest, error) {
	body := map[string]any{"product_id": productID, "quantity": quantity}
	var req models.StockRequest
	if err := h.do(ctx, http.MethodPost, "/user/stock-requests", body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *HTTP) ApproveStockRequest(ctx context.Context, id uint, expectedCompletionDate string) (*models.StockRequest, error) {
	body := map[string]any{"expected_completion_date": expectedCompletionDate}
	var req models.StockRequest
	if err := h.do(ctx, http.MethodPut, fmt.Sprintf("/seller/stock-requests/%d/approve", id), body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *HTTP) RejectStockRequest(ctx context.Context, id uint) (*models.StockRequest, error) {
	var req models.StockRequest
	if err := h.do(ctx, http.MethodPut, fmt.Sprintf("/seller/stock-requests/%d/reject", id), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *HTTP) CreateRefundRequest(ctx context.Context, orderID uint, amount int64, reason string) (*models.RefundRequest, error) {
	body := map[string]any{"order_id": orderID, "amount": amount}
	if reason != "" {
		body["reason"] = reason
	}
	var req models.RefundRequest
	if err := h.do(ctx, http.MethodPost, "/user/refund-requests", body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *HTTP) ApproveRefundRequest(ctx context.Context, id uint) (*models.RefundRequest, error) {
	var req models.RefundRequest
	if err := h.do(ctx, http.MethodPut, fmt.Sprintf("/seller/refund-requests/%d/approve", id), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *HTTP) RejectRefundRequest(ctx context.Context, id uint) (*models.RefundRequest, error) {
	var req models.RefundRequest
	if err := h.do(ctx, http.MethodPut, fmt.Sprintf("/seller/refund-requests/%d/reject", id), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *HTTP) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	body := map[string]any{"status": status}
	var order models.Order
	if err := h.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (h *HTTP) ApproveProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := h.do(ctx, http.MethodPut, fmt.Sprintf("/admin/products/%d/approve", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (h *HTTP) RejectProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := h.do(ctx, http.MethodPut, fmt.Sprintf("/admin/products/%d/reject", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
