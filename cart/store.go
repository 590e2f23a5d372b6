// Package cart holds the client-local shopping cart: an ordered
// collection of line items keyed by product ID, persisted outside
// process memory so it survives a restart. It is the single source of
// truth for pre-checkout state; everything money- or stock-affecting
// beyond it belongs to the remote service.
package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/junaidrashid-git/marketplace-client/models"
)

var (
	ErrNotFound   = errors.New("cart: item not found")
	ErrOutOfStock = errors.New("cart: product is out of stock")
)

// Persistence stores the full item list. Implementations: Memory,
// Gorm, Redis.
type Persistence interface {
	Load() ([]models.CartItem, error)
	Save(items []models.CartItem) error
}

// Store keeps items in insertion order and never holds a quantity
// below 1 or above the last known stock for the product.
type Store struct {
	mu    sync.Mutex
	p     Persistence
	items []models.CartItem
}

func NewStore(p Persistence) (*Store, error) {
	items, err := p.Load()
	if err != nil {
		return nil, err
	}
	return &Store{p: p, items: items}, nil
}

// Add inserts a product at the end of the cart, or bumps the quantity
// of an existing line. Quantity is clamped to the product's current
// known stock; a sold-out product is refused outright (the pre-order
// flow covers it instead).
func (s *Store) Add(product models.Product, quantity int) error {
	if product.Stock <= 0 {
		return ErrOutOfStock
	}
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ProductID == product.ID {
			s.items[i].Quantity = clamp(item.Quantity+quantity, product.Stock)
			s.items[i].Stock = product.Stock
			return s.p.Save(s.items)
		}
	}

	s.items = append(s.items, models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  clamp(quantity, product.Stock),
		Stock:     product.Stock,
		ImageURL:  product.ImageURL,
		Position:  len(s.items),
		AddedAt:   time.Now().UTC(),
	})
	return s.p.Save(s.items)
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the
// line; anything else is clamped to [1, stock].
func (s *Store) UpdateQuantity(productID uint, quantity int) error {
	if quantity <= 0 {
		return s.Remove(productID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ProductID == productID {
			s.items[i].Quantity = clamp(quantity, item.Stock)
			return s.p.Save(s.items)
		}
	}
	return ErrNotFound
}

func (s *Store) Remove(productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			for j := range s.items {
				s.items[j].Position = j
			}
			return s.p.Save(s.items)
		}
	}
	return ErrNotFound
}

// Clear empties the cart. The checkout orchestrator calls this only
// after an order is durably created.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.p.Save(nil)
}

// Items returns the lines in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Total is recomputed on every read, never cached.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// RefreshStock re-validates quantities against fresh product
// snapshots before a purchase is submitted. Quantities above the new
// stock are clamped down; items are never removed here.
func (s *Store) RefreshStock(products []models.Product) error {
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i, item := range s.items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		if item.Stock != p.Stock {
			s.items[i].Stock = p.Stock
			changed = true
		}
		if p.Stock > 0 && item.Quantity > p.Stock {
			s.items[i].Quantity = p.Stock
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.p.Save(s.items)
}

func clamp(quantity, stock int) int {
	if stock > 0 && quantity > stock {
		quantity = stock
	}
	if quantity < 1 {
		quantity = 1
	}
	return quantity
}
