package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"jetwallet/internal/core/domain"
	"jetwallet/internal/core/ports"
	"jetwallet/pkg/apperror"
	"jetwallet/pkg/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	fundingMethod      = "Card Payment"
	fundingDescription = "Wallet Funding"
)

// LedgerServiceImpl implements ports.LedgerService. It is the single owner
// of the in-memory ledger state; the snapshot store is a mirror, not a
// second owner. Each operation mutates a copy, persists it, and only then
// swaps it in, so a failed write leaves the observable state untouched.
type LedgerServiceImpl struct {
	store ports.SnapshotStore
	seed  Seed
	log   zerolog.Logger
	now   func() time.Time

	mu    sync.Mutex
	state domain.Snapshot
	seq   uint64 // disambiguates transaction ids minted in the same millisecond
}

// NewLedgerService creates a ledger service backed by the given snapshot store.
func NewLedgerService(store ports.SnapshotStore, seed Seed, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		store: store,
		seed:  seed.withDefaults(),
		log:   log,
		now:   time.Now,
	}
}

// Load rehydrates state from the snapshot store. An absent or unreadable
// wallets entry falls back to the seeded default; unreadable transaction or
// card entries degrade to empty collections so a corrupt secondary entry
// cannot take the ledger down.
func (s *LedgerServiceImpl) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, seeded := s.readSnapshot(ctx)
	normalize(&next)
	s.state = next

	if seeded {
		// Best-effort write of the seeded default; an offline store is
		// not fatal here and will be retried on the next mutation.
		if err := s.persist(ctx, next); err != nil {
			s.log.Warn().Err(err).Msg("could not persist seeded snapshot")
		}
	}

	s.log.Info().
		Int("wallets", len(next.Wallets)).
		Int("transactions", len(next.Transactions)).
		Int("saved_cards", len(next.SavedCards)).
		Bool("seeded", seeded).
		Msg("ledger state loaded")
	return nil
}

// readSnapshot assembles a snapshot from the three store entries, reporting
// whether the seeded default was used.
func (s *LedgerServiceImpl) readSnapshot(ctx context.Context) (domain.Snapshot, bool) {
	data, err := s.store.Get(ctx, domain.SnapshotKeyWallets)
	if err != nil {
		s.log.Warn().Err(err).Msg("wallets entry unreadable, seeding default state")
		return defaultSnapshot(s.seed, s.now().UTC()), true
	}
	if data == nil {
		return defaultSnapshot(s.seed, s.now().UTC()), true
	}

	wallets, active, err := domain.DecodeWallets(data)
	if err != nil || len(wallets) == 0 {
		s.log.Warn().Err(err).Msg("wallets entry malformed, seeding default state")
		return defaultSnapshot(s.seed, s.now().UTC()), true
	}

	snap := domain.Snapshot{Wallets: wallets, ActiveIndex: active}

	if data, err := s.store.Get(ctx, domain.SnapshotKeyTransactions); err == nil && data != nil {
		txns, err := domain.DecodeTransactions(data)
		if err != nil {
			s.log.Warn().Err(err).Msg("transactions entry malformed, starting with empty log")
		} else {
			snap.Transactions = txns
		}
	}

	if data, err := s.store.Get(ctx, domain.SnapshotKeySavedCards); err == nil && data != nil {
		cards, err := domain.DecodeSavedCards(data)
		if err != nil {
			s.log.Warn().Err(err).Msg("saved cards entry malformed, starting with empty collection")
		} else {
			snap.SavedCards = cards
		}
	}

	return snap, false
}

// normalize clamps the active selection and applies the canonical
// newest-first transaction ordering.
func normalize(snap *domain.Snapshot) {
	if snap.ActiveIndex < 0 || snap.ActiveIndex >= len(snap.Wallets) {
		snap.ActiveIndex = len(snap.Wallets) - 1
	}
	sort.SliceStable(snap.Transactions, func(i, j int) bool {
		return snap.Transactions[i].CreatedAt.After(snap.Transactions[j].CreatedAt)
	})
}

// Wallets returns a copy of the wallet collection and the active index.
func (s *LedgerServiceImpl) Wallets(ctx context.Context) ([]domain.Wallet, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets := make([]domain.Wallet, len(s.state.Wallets))
	copy(wallets, s.state.Wallets)
	return wallets, s.state.ActiveIndex
}

// CreateWallet appends a zero-balance wallet and selects it.
func (s *LedgerServiceImpl) CreateWallet(ctx context.Context, name string) (*domain.Wallet, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperror.ErrEmptyWalletName()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wallet := domain.Wallet{
		ID:        uuid.New().String(),
		Name:      trimmed,
		Balance:   money.Zero(s.seed.Currency),
		CreatedAt: s.now().UTC(),
	}

	next := s.cloneState()
	next.Wallets = append(next.Wallets, wallet)
	next.ActiveIndex = len(next.Wallets) - 1

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.state = next

	s.log.Info().Str("wallet_id", wallet.ID).Str("name", wallet.Name).Msg("wallet created")
	return &wallet, nil
}

// SelectWallet changes the active wallet selection.
func (s *LedgerServiceImpl) SelectWallet(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Wallets) {
		return apperror.ErrWalletNotFound()
	}

	next := s.cloneState()
	next.ActiveIndex = index

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// FundWallet increases a wallet's balance by a simulated card charge and
// appends the corresponding Paid transaction. The raw card details are used
// only to derive the masked SavedCard when requested.
func (s *LedgerServiceImpl) FundWallet(ctx context.Context, req ports.FundRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	digits := cardDigits(req.Card.Number)
	if len(digits) < 4 ||
		strings.TrimSpace(req.Card.Holder) == "" ||
		strings.TrimSpace(req.Card.Expiry) == "" ||
		strings.TrimSpace(req.Card.CVV) == "" {
		return nil, apperror.ErrIncompleteCardDetails()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.WalletIndex < 0 || req.WalletIndex >= len(s.state.Wallets) {
		return nil, apperror.ErrWalletNotFound()
	}

	next := s.cloneState()
	wallet := &next.Wallets[req.WalletIndex]

	amount := req.Amount
	if amount.Currency == "" {
		amount.Currency = wallet.Balance.Currency
	}
	newBalance, err := wallet.Balance.Add(amount)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	wallet.Balance = newBalance

	now := s.now().UTC()
	s.seq++
	txn := domain.Transaction{
		ID:          fmt.Sprintf("TXN-%d-%03d", now.UnixMilli(), s.seq),
		WalletID:    wallet.ID,
		BookingID:   domain.FundingBookingID,
		Amount:      amount,
		Method:      fundingMethod,
		Date:        now.Format("2006-01-02"),
		Status:      domain.StatusPaid,
		Description: fundingDescription,
		CreatedAt:   now,
	}
	next.Transactions = append([]domain.Transaction{txn}, next.Transactions...)

	if req.SaveCard {
		next.SavedCards = append(next.SavedCards, domain.SavedCard{
			ID:        uuid.New().String(),
			LastFour:  digits[len(digits)-4:],
			Holder:    strings.TrimSpace(req.Card.Holder),
			CreatedAt: now,
		})
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.state = next

	s.log.Info().
		Str("tx_id", txn.ID).
		Str("wallet_id", wallet.ID).
		Int64("amount", amount.Units).
		Bool("card_saved", req.SaveCard).
		Msg("wallet funded")
	return &txn, nil
}

// RemoveWallet deletes the wallet at the given position. The collection
// must always contain at least one wallet, and the removed wallet's
// transactions stay in the log.
func (s *LedgerServiceImpl) RemoveWallet(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Wallets) {
		return apperror.ErrWalletNotFound()
	}
	if len(s.state.Wallets) == 1 {
		return apperror.ErrLastWallet()
	}

	next := s.cloneState()
	removed := next.Wallets[index]
	next.Wallets = append(next.Wallets[:index], next.Wallets[index+1:]...)
	if next.ActiveIndex >= len(next.Wallets) {
		next.ActiveIndex = len(next.Wallets) - 1
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state = next

	s.log.Info().Str("wallet_id", removed.ID).Str("name", removed.Name).Msg("wallet removed")
	return nil
}

// SavedCards returns a copy of the saved-card collection.
func (s *LedgerServiceImpl) SavedCards(ctx context.Context) []domain.SavedCard {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make([]domain.SavedCard, len(s.state.SavedCards))
	copy(cards, s.state.SavedCards)
	return cards
}

// RemoveSavedCard deletes a saved card by id.
func (s *LedgerServiceImpl) RemoveSavedCard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.state.SavedCards {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperror.ErrCardNotFound()
	}

	next := s.cloneState()
	next.SavedCards = append(next.SavedCards[:idx], next.SavedCards[idx+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state = next

	s.log.Info().Str("card_id", id).Msg("saved card removed")
	return nil
}

// ListTransactions returns the wallet's matching transactions, newest
// first. The result is a fresh slice; callers can iterate it repeatedly.
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, walletID string, f ports.TransactionFilter) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, 0)
	for _, t := range s.state.Transactions {
		if t.WalletID == walletID && matches(&t, f) {
			out = append(out, t)
		}
	}
	return out
}

// TotalPaid recomputes the sum of matching Paid amounts. Nothing is cached.
func (s *LedgerServiceImpl) TotalPaid(ctx context.Context, walletID string, f ports.TransactionFilter) money.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := money.Zero(s.seed.Currency)
	for _, t := range s.state.Transactions {
		if t.WalletID == walletID && t.Status == domain.StatusPaid && matches(&t, f) {
			total.Units += t.Amount.Units
		}
	}
	return total
}

// StatusCounts tallies the filtered view by settlement state.
func (s *LedgerServiceImpl) StatusCounts(ctx context.Context, walletID string, f ports.TransactionFilter) ports.StatusCounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts ports.StatusCounts
	for _, t := range s.state.Transactions {
		if t.WalletID != walletID || !matches(&t, f) {
			continue
		}
		switch t.Status {
		case domain.StatusPaid:
			counts.Paid++
		case domain.StatusPending:
			counts.Pending++
		case domain.StatusFailed:
			counts.Failed++
		}
	}
	return counts
}

// matches applies every supplied filter predicate.
func matches(t *domain.Transaction, f ports.TransactionFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.ID), q) &&
			!strings.Contains(strings.ToLower(t.BookingID), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Method != "" && t.Method != f.Method {
		return false
	}
	if f.Date != "" && t.Date != f.Date {
		return false
	}
	return true
}

// cloneState copies the snapshot so mutations never touch the committed
// state before persistence succeeds.
func (s *LedgerServiceImpl) cloneState() domain.Snapshot {
	next := domain.Snapshot{
		ActiveIndex:  s.state.ActiveIndex,
		Wallets:      make([]domain.Wallet, len(s.state.Wallets)),
		Transactions: make([]domain.Transaction, len(s.state.Transactions)),
		SavedCards:   make([]domain.SavedCard, len(s.state.SavedCards)),
	}
	copy(next.Wallets, s.state.Wallets)
	copy(next.Transactions, s.state.Transactions)
	copy(next.SavedCards, s.state.SavedCards)
	return next
}

// persist writes all three entries. Caller holds the lock.
func (s *LedgerServiceImpl) persist(ctx context.Context, snap domain.Snapshot) error {
	walletsData, err := domain.EncodeWallets(snap.Wallets, snap.ActiveIndex)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encode wallets: %w", err))
	}
	txnsData, err := domain.EncodeTransactions(snap.Transactions)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encode transactions: %w", err))
	}
	cardsData, err := domain.EncodeSavedCards(snap.SavedCards)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encode saved cards: %w", err))
	}

	if err := s.store.Set(ctx, domain.SnapshotKeyWallets, walletsData); err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("write wallets: %w", err))
	}
	if err := s.store.Set(ctx, domain.SnapshotKeyTransactions, txnsData); err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("write transactions: %w", err))
	}
	if err := s.store.Set(ctx, domain.SnapshotKeySavedCards, cardsData); err != nil {
		return apperror.ErrStorageFailure(fmt.Errorf("write saved cards: %w", err))
	}
	return nil
}

// cardDigits strips spacing and separators from a card number.
func cardDigits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
