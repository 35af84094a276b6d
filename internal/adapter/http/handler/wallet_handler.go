package handler

import (
	"strconv"

	"jetwallet/internal/adapter/http/dto"
	"jetwallet/internal/core/domain"
	"jetwallet/internal/core/ports"
	"jetwallet/pkg/apperror"
	"jetwallet/pkg/money"
	"jetwallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet collection endpoints.
type WalletHandler struct {
	ledger ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	wallets, active := h.ledger.Wallets(c.Request.Context())
	response.OK(c, toWalletListResponse(wallets, active))
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.ledger.CreateWallet(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(wallet))
}

// SelectActive handles PUT /api/v1/wallets/active.
func (h *WalletHandler) SelectActive(c *gin.Context) {
	var req dto.SelectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.ledger.SelectWallet(c.Request.Context(), *req.Index); err != nil {
		response.Error(c, err)
		return
	}

	wallets, active := h.ledger.Wallets(c.Request.Context())
	response.OK(c, toWalletListResponse(wallets, active))
}

// Remove handles DELETE /api/v1/wallets/:index.
func (h *WalletHandler) Remove(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, apperror.Validation("wallet index must be an integer"))
		return
	}

	if err := h.ledger.RemoveWallet(c.Request.Context(), index); err != nil {
		response.Error(c, err)
		return
	}

	wallets, active := h.ledger.Wallets(c.Request.Context())
	response.OK(c, toWalletListResponse(wallets, active))
}

// Fund handles POST /api/v1/wallets/:index/fund.
func (h *WalletHandler) Fund(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, apperror.Validation("wallet index must be an integer"))
		return
	}

	var req dto.FundWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	// Currency is left blank so the ledger applies the wallet's own.
	amount, err := money.Parse(req.Amount, "")
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	txn, err := h.ledger.FundWallet(c.Request.Context(), ports.FundRequest{
		WalletIndex: index,
		Amount:      amount,
		Card: ports.CardDetails{
			Number: req.Card.Number,
			Holder: req.Card.Holder,
			Expiry: req.Card.Expiry,
			CVV:    req.Card.CVV,
		},
		SaveCard: req.SaveCard,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// toWalletResponse converts domain.Wallet to DTO.
func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		ID:        w.ID,
		Name:      w.Name,
		Balance:   w.Balance.Format(),
		Currency:  w.Balance.Currency,
		CreatedAt: w.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toWalletListResponse(wallets []domain.Wallet, active int) dto.WalletListResponse {
	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletResponse(&wallets[i]))
	}
	return dto.WalletListResponse{Wallets: items, ActiveIndex: active}
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(t *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          t.ID,
		BookingID:   t.BookingID,
		Amount:      t.Amount.Format(),
		Method:      t.Method,
		Date:        t.Date,
		Status:      string(t.Status),
		Description: t.Description,
	}
}
