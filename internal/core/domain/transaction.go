package domain

import (
	"time"

	"jetwallet/pkg/money"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "Paid"
	StatusPending TransactionStatus = "Pending"
	StatusFailed  TransactionStatus = "Failed"
)

// Valid reports whether s is one of the known settlement states.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusFailed:
		return true
	}
	return false
}

// FundingBookingID tags transactions created by wallet funding rather
// than a charter booking.
const FundingBookingID = "WALLET"

// Transaction is an immutable record of value movement associated with a
// wallet. Removing a wallet does not remove its transactions; they stay
// retrievable by the old wallet ID.
type Transaction struct {
	ID          string            `json:"id"`
	WalletID    string            `json:"wallet_id"`
	BookingID   string            `json:"booking_id"`
	Amount      money.Money       `json:"amount"`
	Method      string            `json:"method"`
	Date        string            `json:"date"` // YYYY-MM-DD
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
}

// IsFunding reports whether the transaction came from a wallet funding action.
func (t *Transaction) IsFunding() bool {
	return t.BookingID == FundingBookingID
}
