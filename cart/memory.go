package cart

import "github.com/junaidrashid-git/marketplace-client/models"

// Memory keeps items in process memory only. Used by tests and as a
// fallback when no persistence backend is configured.
type Memory struct {
	items []models.CartItem
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load() ([]models.CartItem, error) {
	out := make([]models.CartItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory) Save(items []models.CartItem) error {
	m.items = make([]models.CartItem, len(items))
	copy(m.items, items)
	return nil
}
