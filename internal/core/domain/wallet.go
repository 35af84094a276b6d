package domain

import (
	"time"

	"jetwallet/pkg/money"
)

// Wallet is a named balance bucket under one client profile.
// Its balance only ever grows, and only through a funding transaction.
type Wallet struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Balance   money.Money `json:"balance"`
	CreatedAt time.Time   `json:"created_at"`
}
