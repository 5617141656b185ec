package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborbank/banking/internal/middleware"
	"github.com/harborbank/banking/internal/models"
)

// CurrencyQuerier defines the read-side operations used by CurrencyHandler.
type CurrencyQuerier interface {
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}

type CurrencyHandler struct {
	queries CurrencyQuerier
}

type ListCurrenciesResponse struct {
	Currencies []models.Currency `json:"currencies"`
}

func NewCurrencyHandler(queries CurrencyQuerier) *CurrencyHandler {
	return &CurrencyHandler{queries: queries}
}

func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.queries.ListCurrencies(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list currencies")
		return
	}
	if currencies == nil {
		currencies = []models.Currency{}
	}

	c.JSON(http.StatusOK, ListCurrenciesResponse{Currencies: currencies})
}
