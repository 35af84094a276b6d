package handler

import (
	"jetwallet/internal/adapter/http/dto"
	"jetwallet/internal/core/domain"
	"jetwallet/internal/core/ports"
	"jetwallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// CardHandler handles saved card endpoints.
type CardHandler struct {
	ledger ports.LedgerService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(ledger ports.LedgerService) *CardHandler {
	return &CardHandler{ledger: ledger}
}

// List handles GET /api/v1/cards.
func (h *CardHandler) List(c *gin.Context) {
	cards := h.ledger.SavedCards(c.Request.Context())
	response.OK(c, toCardResponses(cards))
}

// Remove handles DELETE /api/v1/cards/:id.
func (h *CardHandler) Remove(c *gin.Context) {
	if err := h.ledger.RemoveSavedCard(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toCardResponses(h.ledger.SavedCards(c.Request.Context())))
}

func toCardResponses(cards []domain.SavedCard) []dto.SavedCardResponse {
	items := make([]dto.SavedCardResponse, 0, len(cards))
	for _, card := range cards {
		items = append(items, dto.SavedCardResponse{
			ID:        card.ID,
			LastFour:  card.LastFour,
			Holder:    card.Holder,
			CreatedAt: card.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return items
}
