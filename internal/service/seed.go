package service

import (
	"time"

	"jetwallet/internal/core/domain"
	"jetwallet/pkg/money"

	"github.com/google/uuid"
)

// Seed controls the default state written when no usable snapshot exists.
type Seed struct {
	WalletName string
	Currency   string
	Fixtures   bool
}

func (s Seed) withDefaults() Seed {
	if s.WalletName == "" {
		s.WalletName = "Primary Wallet"
	}
	if s.Currency == "" {
		s.Currency = money.USD
	}
	return s
}

// defaultSnapshot builds the seeded state: exactly one zero-balance wallet
// and, optionally, the demo charter transaction history.
func defaultSnapshot(seed Seed, now time.Time) domain.Snapshot {
	wallet := domain.Wallet{
		ID:        uuid.New().String(),
		Name:      seed.WalletName,
		Balance:   money.Zero(seed.Currency),
		CreatedAt: now,
	}

	snap := domain.Snapshot{Wallets: []domain.Wallet{wallet}}
	if seed.Fixtures {
		snap.Transactions = fixtureTransactions(wallet.ID, seed.Currency)
	}
	return snap
}

// fixtureTransactions is the charter payment history shown on a fresh
// dashboard profile.
func fixtureTransactions(walletID, currency string) []domain.Transaction {
	fixtures := []struct {
		id, bookingID string
		units         int64
		method, date  string
		status        domain.TransactionStatus
		description   string
	}{
		{"TXN-2024-001", "TO-001", 4500000, "American Express", "2024-07-15", domain.StatusPaid, "JFK → LAX - Gulfstream G650"},
		{"TXN-2024-002", "TO-002", 7200000, "Wire Transfer", "2024-07-20", domain.StatusPending, "LAX → LHR - Bombardier Global 7500"},
		{"TXN-2024-003", "TO-098", 4200000, "Chase Sapphire", "2024-06-15", domain.StatusPaid, "JFK → LAX - Gulfstream G650"},
		{"TXN-2024-004", "TO-097", 2850000, "Bank Transfer", "2024-06-08", domain.StatusPaid, "MIA → TEB - Falcon 7X"},
		{"TXN-2024-005", "TO-096", 1800000, "Platinum Card", "2024-05-28", domain.StatusFailed, "LAX → SFO - Citation X+"},
	}

	txns := make([]domain.Transaction, 0, len(fixtures))
	for _, f := range fixtures {
		createdAt, _ := time.Parse("2006-01-02", f.date)
		txns = append(txns, domain.Transaction{
			ID:          f.id,
			WalletID:    walletID,
			BookingID:   f.bookingID,
			Amount:      money.New(f.units, currency),
			Method:      f.method,
			Date:        f.date,
			Status:      f.status,
			Description: f.description,
			CreatedAt:   createdAt,
		})
	}
	return txns
}
