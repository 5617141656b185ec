package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/cqrs"
	"github.com/harborbank/banking/internal/middleware"
	"github.com/harborbank/banking/internal/models"
)

// BillCommander defines the write-side operations used by BillHandler.
type BillCommander interface {
	CreateBill(ctx context.Context, cmd cqrs.CreateBillCommand) (*models.BillView, error)
}

// BillQuerier defines the read-side operations used by BillHandler.
type BillQuerier interface {
	ListBills(ctx context.Context, q cqrs.ListBillsQuery) ([]models.BillView, error)
	GetBill(ctx context.Context, q cqrs.GetBillQuery) (*models.BillView, error)
}

type BillHandler struct {
	commands BillCommander
	queries  BillQuerier
}

type CreateBillRequest struct {
	Currency string `json:"currency" validate:"required,uuid4"`
}

type ListBillsResponse struct {
	Bills []models.BillView `json:"bills"`
}

func NewBillHandler(commands BillCommander, queries BillQuerier) *BillHandler {
	return &BillHandler{commands: commands, queries: queries}
}

func (h *BillHandler) CreateBill(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.CreateBill(c.Request.Context(), cqrs.CreateBillCommand{
		UserID:       userID,
		CurrencyUUID: req.Currency,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrCurrencyNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Currency not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *BillHandler) GetBill(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetBill(c.Request.Context(), cqrs.GetBillQuery{
		UUID:   c.Param("uuid"),
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrBillNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Bill not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get bill")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *BillHandler) ListBills(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	views, err := h.queries.ListBills(c.Request.Context(), cqrs.ListBillsQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list bills")
		return
	}
	if views == nil {
		views = []models.BillView{}
	}

	c.JSON(http.StatusOK, ListBillsResponse{Bills: views})
}
