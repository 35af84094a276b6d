package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"jetwallet/pkg/money"
)

// SchemaVersion is the current snapshot envelope version. Bump when the
// persisted layout changes and add a migration branch in the decoder.
const SchemaVersion = 1

// Snapshot entry keys in the backing key-value store.
const (
	SnapshotKeyWallets      = "wallets"
	SnapshotKeySavedCards   = "saved_cards"
	SnapshotKeyTransactions = "transactions"
)

// Snapshot is the full persisted state of one client profile's ledger.
type Snapshot struct {
	Wallets      []Wallet
	ActiveIndex  int
	Transactions []Transaction
	SavedCards   []SavedCard
}

type walletsEnvelope struct {
	SchemaVersion int      `json:"schema_version"`
	ActiveIndex   int      `json:"active_index"`
	Wallets       []Wallet `json:"wallets"`
}

type savedCardsEnvelope struct {
	SchemaVersion int         `json:"schema_version"`
	SavedCards    []SavedCard `json:"saved_cards"`
}

type transactionsEnvelope struct {
	SchemaVersion int           `json:"schema_version"`
	Transactions  []Transaction `json:"transactions"`
}

// EncodeWallets serializes the wallet collection and active selection.
func EncodeWallets(wallets []Wallet, activeIndex int) ([]byte, error) {
	return json.Marshal(walletsEnvelope{
		SchemaVersion: SchemaVersion,
		ActiveIndex:   activeIndex,
		Wallets:       wallets,
	})
}

// DecodeWallets deserializes a wallets entry. Pre-versioning entries (a bare
// JSON array with numeric balances, as written by the original dashboard)
// are migrated in place.
func DecodeWallets(data []byte) ([]Wallet, int, error) {
	if isLegacyArray(data) {
		wallets, err := decodeLegacyWallets(data)
		return wallets, 0, err
	}

	var env walletsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, 0, fmt.Errorf("decode wallets entry: %w", err)
	}
	if env.SchemaVersion != SchemaVersion {
		return nil, 0, fmt.Errorf("unsupported wallets schema version %d", env.SchemaVersion)
	}
	return env.Wallets, env.ActiveIndex, nil
}

// EncodeSavedCards serializes the saved-card collection.
func EncodeSavedCards(cards []SavedCard) ([]byte, error) {
	return json.Marshal(savedCardsEnvelope{
		SchemaVersion: SchemaVersion,
		SavedCards:    cards,
	})
}

// DecodeSavedCards deserializes a saved-cards entry. Legacy entries were
// already masked, so they decode directly.
func DecodeSavedCards(data []byte) ([]SavedCard, error) {
	if isLegacyArray(data) {
		var cards []SavedCard
		if err := json.Unmarshal(data, &cards); err != nil {
			return nil, fmt.Errorf("decode legacy saved cards: %w", err)
		}
		return cards, nil
	}

	var env savedCardsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode saved cards entry: %w", err)
	}
	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported saved cards schema version %d", env.SchemaVersion)
	}
	return env.SavedCards, nil
}

// EncodeTransactions serializes the transaction log.
func EncodeTransactions(txns []Transaction) ([]byte, error) {
	return json.Marshal(transactionsEnvelope{
		SchemaVersion: SchemaVersion,
		Transactions:  txns,
	})
}

// DecodeTransactions deserializes a transactions entry. Legacy entries
// stored amounts as display strings ("$1,200"); those are parsed back into
// minor units, tolerating currency symbols and thousands separators.
func DecodeTransactions(data []byte) ([]Transaction, error) {
	if isLegacyArray(data) {
		return decodeLegacyTransactions(data)
	}

	var env transactionsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode transactions entry: %w", err)
	}
	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported transactions schema version %d", env.SchemaVersion)
	}
	return env.Transactions, nil
}

// isLegacyArray reports whether a stored entry predates the versioned
// envelope: the original dashboard wrote bare JSON arrays.
func isLegacyArray(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

type legacyWallet struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	Currency  string  `json:"currency"`
	CreatedAt string  `json:"createdAt"`
}

func decodeLegacyWallets(data []byte) ([]Wallet, error) {
	var raw []legacyWallet
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode legacy wallets: %w", err)
	}

	wallets := make([]Wallet, 0, len(raw))
	for _, lw := range raw {
		currency := lw.Currency
		if currency == "" {
			currency = money.USD
		}
		createdAt, _ := time.Parse(time.RFC3339, lw.CreatedAt)
		wallets = append(wallets, Wallet{
			ID:        lw.ID,
			Name:      lw.Name,
			Balance:   money.FromFloat(lw.Balance, currency),
			CreatedAt: createdAt,
		})
	}
	return wallets, nil
}

type legacyTransaction struct {
	ID          string `json:"id"`
	WalletID    string `json:"walletId"`
	BookingID   string `json:"bookingId"`
	Amount      string `json:"amount"`
	Method      string `json:"method"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

func decodeLegacyTransactions(data []byte) ([]Transaction, error) {
	var raw []legacyTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode legacy transactions: %w", err)
	}

	txns := make([]Transaction, 0, len(raw))
	for _, lt := range raw {
		amount, err := money.Parse(lt.Amount, money.USD)
		if err != nil {
			return nil, fmt.Errorf("legacy transaction %s: %w", lt.ID, err)
		}
		status := TransactionStatus(lt.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("legacy transaction %s: unknown status %q", lt.ID, lt.Status)
		}
		// Legacy entries carry only a calendar date.
		createdAt, _ := time.Parse("2006-01-02", lt.Date)
		txns = append(txns, Transaction{
			ID:          lt.ID,
			WalletID:    lt.WalletID,
			BookingID:   lt.BookingID,
			Amount:      amount,
			Method:      lt.Method,
			Date:        lt.Date,
			Status:      status,
			Description: lt.Description,
			CreatedAt:   createdAt,
		})
	}
	return txns, nil
}
