package models

// Wallet is a read-only snapshot. The balance is never recomputed
// locally; it is re-fetched after every money-moving mutation.
type Wallet struct {
	ID      uint  `json:"id"`
	UserID  uint  `json:"user_id"`
	Balance int64 `json:"balance"` // minor units
}
