package dto

// CreateWalletRequest is the request body for wallet creation.
type CreateWalletRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// SelectWalletRequest is the request body for switching the active wallet.
type SelectWalletRequest struct {
	Index *int `json:"index" binding:"required"`
}

// CardRequest carries funding card input. Only the derived last four
// digits and holder name are ever stored.
type CardRequest struct {
	Number string `json:"number" binding:"required,max=23"`
	Holder string `json:"holder" binding:"required,max=100"`
	Expiry string `json:"expiry" binding:"required,card_expiry"`
	CVV    string `json:"cvv" binding:"required,min=3,max=4"`
}

// FundWalletRequest is the request body for funding a wallet. Amount is a
// decimal string, optionally with a currency symbol and thousands
// separators ("1200", "1200.50", "$1,200").
type FundWalletRequest struct {
	Amount   string      `json:"amount" binding:"required,max=30"`
	Card     CardRequest `json:"card" binding:"required"`
	SaveCard bool        `json:"save_card"`
}

// WalletResponse is one wallet in API responses.
type WalletResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
}

// WalletListResponse wraps the wallet collection and the active selection.
type WalletListResponse struct {
	Wallets     []WalletResponse `json:"wallets"`
	ActiveIndex int              `json:"active_index"`
}

// SavedCardResponse is one saved card in API responses.
type SavedCardResponse struct {
	ID        string `json:"id"`
	LastFour  string `json:"last_four"`
	Holder    string `json:"holder"`
	CreatedAt string `json:"created_at"`
}

// TransactionResponse is one ledger transaction in API responses.
type TransactionResponse struct {
	ID          string `json:"id"`
	BookingID   string `json:"booking_id"`
	Amount      string `json:"amount"`
	Method      string `json:"method"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// TransactionSummary aggregates the filtered transaction view.
type TransactionSummary struct {
	TotalPaid string `json:"total_paid"`
	Paid      int    `json:"paid"`
	Pending   int    `json:"pending"`
	Failed    int    `json:"failed"`
}

// TransactionListResponse wraps the filtered transaction list and its
// summary figures.
type TransactionListResponse struct {
	Items   []TransactionResponse `json:"items"`
	Summary TransactionSummary    `json:"summary"`
}
