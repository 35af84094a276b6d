package ports

import (
	"context"

	"jetwallet/internal/core/domain"
	"jetwallet/pkg/money"
)

// CardDetails carries raw funding card input. It is never persisted;
// only the derived last four digits and holder name survive in a SavedCard.
type CardDetails struct {
	Number string
	Holder string
	Expiry string
	CVV    string
}

// FundRequest is the input to LedgerService.FundWallet.
type FundRequest struct {
	WalletIndex int
	Amount      money.Money
	Card        CardDetails
	SaveCard    bool
}

// TransactionFilter narrows a transaction listing. Zero-valued fields
// match everything; all supplied predicates must hold.
type TransactionFilter struct {
	Search string                   // case-insensitive substring over id, booking id, description
	Status domain.TransactionStatus // exact match
	Method string                   // exact match
	Date   string                   // exact match, YYYY-MM-DD
}

// StatusCounts tallies a filtered transaction view by settlement state.
type StatusCounts struct {
	Paid    int
	Pending int
	Failed  int
}

// LedgerService is the single authority over the wallet, transaction and
// saved-card collections of one client profile. Every mutation persists
// the updated collections before returning; on persistence failure the
// in-memory state is left unchanged.
type LedgerService interface {
	// Load rehydrates state from the snapshot store, seeding the default
	// state when nothing usable is persisted.
	Load(ctx context.Context) error

	Wallets(ctx context.Context) ([]domain.Wallet, int)
	CreateWallet(ctx context.Context, name string) (*domain.Wallet, error)
	SelectWallet(ctx context.Context, index int) error
	FundWallet(ctx context.Context, req FundRequest) (*domain.Transaction, error)
	RemoveWallet(ctx context.Context, index int) error

	SavedCards(ctx context.Context) []domain.SavedCard
	RemoveSavedCard(ctx context.Context, id string) error

	// ListTransactions returns a fresh, restartable view of the wallet's
	// transactions, newest first.
	ListTransactions(ctx context.Context, walletID string, f TransactionFilter) []domain.Transaction
	// TotalPaid recomputes the sum of matching Paid transactions.
	TotalPaid(ctx context.Context, walletID string, f TransactionFilter) money.Money
	StatusCounts(ctx context.Context, walletID string, f TransactionFilter) StatusCounts
}
