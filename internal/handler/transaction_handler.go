package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/cqrs"
	"github.com/harborbank/banking/internal/middleware"
	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
	"github.com/harborbank/banking/internal/utils"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error)
	ConfirmTransaction(ctx context.Context, cmd cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	GetPendingTransaction(ctx context.Context, q cqrs.GetPendingTransactionQuery) (*models.TransactionView, error)
	ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) (*models.TransactionPage, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
}

type CreateTransactionRequest struct {
	SenderAccountBill    string          `json:"senderAccountBill" validate:"required,uuid4"`
	RecipientAccountBill string          `json:"recipientAccountBill" validate:"required,uuid4"`
	AmountMoney          decimal.Decimal `json:"amountMoney"`
	TransferTitle        string          `json:"transferTitle" validate:"required,max=64"`
}

type ConfirmTransactionRequest struct {
	AuthorizationKey string `json:"authorizationKey" validate:"required"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.commands.CreateTransaction(c.Request.Context(), cqrs.CreateTransactionCommand{
		UserID:            userID,
		SenderBillUUID:    req.SenderAccountBill,
		RecipientBillUUID: req.RecipientAccountBill,
		AmountMoney:       req.AmountMoney,
		TransferTitle:     req.TransferTitle,
	})
	if err != nil {
		respondTransactionError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) ConfirmTransaction(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req ConfirmTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}
	// A malformed key can never name a pending transaction; skip the lookup.
	if !utils.ValidateAuthorizationKey(req.AuthorizationKey) {
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	transfer, err := h.commands.ConfirmTransaction(c.Request.Context(), cqrs.ConfirmTransactionCommand{
		UserID:           userID,
		AuthorizationKey: req.AuthorizationKey,
	})
	if err != nil {
		respondTransactionError(c, err, "Failed to confirm transaction")
		return
	}

	// The key is single-use and has just been consumed.
	transfer.AuthorizationKey = ""
	c.JSON(http.StatusOK, transfer.Transaction)
}

func (h *TransactionHandler) GetPendingTransaction(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetPendingTransaction(c.Request.Context(), cqrs.GetPendingTransactionQuery{
		UUID:   c.Param("uuid"),
		UserID: userID,
	})
	if err != nil {
		respondTransactionError(c, err, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))

	result, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{
		UserID:  userID,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		respondTransactionError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondTransactionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrBillNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Bill not found")
	case errors.Is(err, apperr.ErrTransactionNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, apperr.ErrSelfTransfer):
		middleware.RespondWithError(c, http.StatusBadRequest, "Cannot transfer to the same bill")
	case errors.Is(err, apperr.ErrAmountNotEnough):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Amount of money is not enough")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
