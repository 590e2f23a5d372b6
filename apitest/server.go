// Package apitest runs an in-memory marketplace service implementing
// the same contract the real remote service exposes. Client and
// orchestrator tests point api.NewHTTP at an httptest server built
// from this engine.
package apitest

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/marketplace-client/models"
)

type Server struct {
	Engine *gin.Engine

	mu sync.Mutex
	// The authenticated buyer for /user routes. Tests set up wallets
	// and orders against this ID.
	BuyerID        uint
	Products       map[uint]*models.Product
	Wallets        map[uint]*models.Wallet
	Orders         map[uint]*models.Order
	StockRequests  map[uint]*models.StockRequest
	RefundRequests map[uint]*models.RefundRequest
	nextID         uint
}

func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		BuyerID:        1,
		Products:       make(map[uint]*models.Product),
		Wallets:        make(map[uint]*models.Wallet),
		Orders:         make(map[uint]*models.Order),
		StockRequests:  make(map[uint]*models.StockRequest),
		RefundRequests: make(map[uint]*models.RefundRequest),
		nextID:         100,
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
	}))

	r.GET("/products", s.listProducts)
	r.GET("/user/wallet", s.getWallet)
	r.GET("/user/orders", s.listOrders)
	r.GET("/seller/orders", s.listOrders)
	r.GET("/user/stock-requests", s.listStockRequests)
	r.GET("/seller/stock-requests", s.listStockRequests)
	r.GET("/user/refund-requests", s.listRefundRequests)
	r.GET("/seller/refund-requests", s.listRefundRequests)

	r.POST("/user/orders/wallet", s.purchaseWithWallet)
	r.POST("/user/orders", s.createOrder)
	r.POST("/user/stock-requests", s.createStockRequest)
	r.PUT("/seller/stock-requests/:id/approve", s.approveStockRequest)
	r.PUT("/seller/stock-requests/:id/reject", s.rejectStockRequest)
	r.POST("/user/refund-requests", s.createRefundRequest)
	r.PUT("/seller/refund-requests/:id/approve", s.approveRefundRequest)
	r.PUT("/seller/refund-requests/:id/reject", s.rejectRefundRequest)
	r.PUT("/orders/:id/status", s.updateOrderStatus)
	r.PUT("/admin/products/:id/approve", s.approveProduct)
	r.PUT("/admin/products/:id/reject", s.rejectProduct)

	s.Engine = r
	return s
}

// AddProduct seeds a product and returns it.
func (s *Server) AddProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	if p.Status == "" {
		p.Status = models.ProductStatusApproved
	}
	s.Products[p.ID] = &p
	return p
}

// SetBalance seeds the buyer's wallet.
func (s *Server) SetBalance(userID uint, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Wallets[userID] = &models.Wallet{ID: userID, UserID: userID, Balance: balance}
}

// AddOrder seeds an order and returns it.
func (s *Server) AddOrder(o models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		o.ID = s.id()
	}
	s.Orders[o.ID] = &o
	return o
}

func (s *Server) id() uint {
	s.nextID++
	return s.nextID
}

// -------- Queries --------

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := c.Query("status")
	out := []models.Product{}
	for _, p := range s.Products {
		if status != "" && string(p.Status) != status {
			continue
		}
		out = append(out, *p)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getWallet(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.Wallets[s.BuyerID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.Orders {
		out = append(out, *o)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listStockRequests(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.StockRequest{}
	for _, r := range s.StockRequests {
		out = append(out, *r)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listRefundRequests(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.RefundRequest{}
	for _, r := range s.RefundRequests {
		out = append(out, *r)
	}
	c.JSON(http.StatusOK, out)
}

// -------- Checkout --------

type orderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type createOrderInput struct {
	Items           []orderItemInput `json:"items" binding:"required"`
	ShippingAddress string           `json:"shipping_address" binding:"required"`
	Phone           string           `json:"phone"`
	Notes           string           `json:"notes"`
}

// buildOrder prices the requested items at current product prices and
// verifies stock. Caller holds the lock.
func (s *Server) buildOrder(input createOrderInput) (*models.Order, string) {
	if len(input.Items) == 0 {
		return nil, "order has no items"
	}

	var total int64
	var items []models.OrderItem
	for _, in := range input.Items {
		p, ok := s.Products[in.ProductID]
		if !ok {
			return nil, "product does not exist"
		}
		if p.Stock < in.Quantity {
			return nil, "insufficient stock for product: " + p.Name
		}
		total += p.Price * int64(in.Quantity)
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			SellerID:  p.SellerID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  in.Quantity,
		})
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              s.id(),
		BuyerID:         s.BuyerID,
		Items:           items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		Phone:           input.Phone,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range order.Items {
		order.Items[i].ID = s.id()
		order.Items[i].OrderID = order.ID
	}
	return order, ""
}

// purchaseWithWallet is atomic: it debits the wallet, decrements
// stock for every item and stores the order, or changes nothing and
// reports success=false.
func (s *Server) purchaseWithWallet(c *gin.Context) {
	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, msg := s.buildOrder(input)
	if msg != "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": msg})
		return
	}

	wallet, ok := s.Wallets[s.BuyerID]
	if !ok || wallet.Balance < order.TotalAmount {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "insufficient wallet balance"})
		return
	}

	wallet.Balance -= order.TotalAmount
	for _, item := range order.Items {
		s.Products[item.ProductID].Stock -= item.Quantity
	}
	s.Orders[order.ID] = order

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "order created", "order": order})
}

func (s *Server) createOrder(c *gin.Context) {
	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, msg := s.buildOrder(input)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	for _, item := range order.Items {
		s.Products[item.ProductID].Stock -= item.Quantity
	}
	s.Orders[order.ID] = order

	c.JSON(http.StatusCreated, order)
}

// -------- Stock requests --------

func (s *Server) createStockRequest(c *gin.Context) {
	var input struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.Products[input.ProductID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product does not exist"})
		return
	}
	if p.Stock > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product is in stock"})
		return
	}

	now := time.Now().UTC()
	req := &models.StockRequest{
		ID:        s.id(),
		ProductID: p.ID,
		BuyerID:   s.BuyerID,
		Quantity:  input.Quantity,
		Status:    models.RequestStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.StockRequests[req.ID] = req
	c.JSON(http.StatusCreated, req)
}

func (s *Server) approveStockRequest(c *gin.Context) {
	var input struct {
		ExpectedCompletionDate string `json:"expected_completion_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected_completion_date is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.StockRequests[param(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock request not found"})
		return
	}
	if req.Status != models.RequestStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock request already decided"})
		return
	}
	req.Status = models.RequestStatusApproved
	req.ExpectedCompletionDate = input.ExpectedCompletionDate
	req.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, req)
}

func (s *Server) rejectStockRequest(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.StockRequests[param(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock request not found"})
		return
	}
	if req.Status != models.RequestStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock request already decided"})
		return
	}
	req.Status = models.RequestStatusRejected
	req.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, req)
}

// -------- Refund requests --------

func (s *Server) createRefundRequest(c *gin.Context) {
	var input struct {
		OrderID uint   `json:"order_id" binding:"required"`
		Amount  int64  `json:"amount" binding:"required,min=1"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.Orders[input.OrderID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if order.Status == models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot refund a cancelled order"})
		return
	}
	if input.Amount > order.TotalAmount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refund amount exceeds order total"})
		return
	}

	now := time.Now().UTC()
	req := &models.RefundRequest{
		ID:        s.id(),
		OrderID:   order.ID,
		BuyerID:   order.BuyerID,
		Amount:    input.Amount,
		Reason:    input.Reason,
		Status:    models.RequestStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.RefundRequests[req.ID] = req
	c.JSON(http.StatusCreated, req)
}

// approveRefundRequest credits the buyer's wallet exactly once; the
// pending check makes a second approval impossible.
func (s *Server) approveRefundRequest(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.RefundRequests[param(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "refund request not found"})
		return
	}
	if req.Status != models.RequestStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refund request already decided"})
		return
	}
	req.Status = models.RequestStatusApproved
	req.UpdatedAt = time.Now().UTC()
	if wallet, ok := s.Wallets[req.BuyerID]; ok {
		wallet.Balance += req.Amount
	}
	c.JSON(http.StatusOK, req)
}

func (s *Server) rejectRefundRequest(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.RefundRequests[param(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "refund request not found"})
		return
	}
	if req.Status != models.RequestStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refund request already decided"})
		return
	}
	req.Status = models.RequestStatusRejected
	req.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, req)
}

// -------- Order fulfillment --------

var nextForward = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusPending:   models.OrderStatusConfirmed,
	models.OrderStatusConfirmed: models.OrderStatusShipped,
	models.OrderStatusShipped:   models.OrderStatusDelivered,
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var input struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.Orders[param(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if order.Status.Terminal() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order is in a terminal state"})
		return
	}
	if input.Status != models.OrderStatusCancelled && nextForward[order.Status] != input.Status {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status transition"})
		return
	}
	order.Status = input.Status
	order.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, order)
}

// -------- Product moderation --------

func (s *Server) approveProduct(c *gin.Context) {
	s.moderateProduct(c, models.ProductStatusApproved)
}

func (s *Server) rejectProduct(c *gin.Context) {
	s.moderateProduct(c, models.ProductStatusRejected)
}

func (s *Server) moderateProduct(c *gin.Context, to models.ProductStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.Products[param(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if p.Status != models.ProductStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product already moderated"})
		return
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, p)
}

func param(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id)
}
