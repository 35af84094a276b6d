package handler

import (
	"jetwallet/internal/adapter/http/dto"
	"jetwallet/internal/core/domain"
	"jetwallet/internal/core/ports"
	"jetwallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles ledger transaction endpoints.
type TransactionHandler struct {
	ledger ports.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger ports.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// List handles GET /api/v1/transactions. Without a wallet_id query the
// active wallet's ledger is returned. Summary figures are recomputed from
// the same filtered view as the items.
func (h *TransactionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	walletID := c.Query("wallet_id")
	if walletID == "" {
		wallets, active := h.ledger.Wallets(ctx)
		if active >= 0 && active < len(wallets) {
			walletID = wallets[active].ID
		}
	}

	filter := ports.TransactionFilter{
		Search: c.Query("search"),
		Status: domain.TransactionStatus(c.Query("status")),
		Method: c.Query("method"),
		Date:   c.Query("date"),
	}

	txns := h.ledger.ListTransactions(ctx, walletID, filter)
	totalPaid := h.ledger.TotalPaid(ctx, walletID, filter)
	counts := h.ledger.StatusCounts(ctx, walletID, filter)

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}

	response.OK(c, dto.TransactionListResponse{
		Items: items,
		Summary: dto.TransactionSummary{
			TotalPaid: totalPaid.Format(),
			Paid:      counts.Paid,
			Pending:   counts.Pending,
			Failed:    counts.Failed,
		},
	})
}
