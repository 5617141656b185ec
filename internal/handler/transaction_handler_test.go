package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/cqrs"
	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
)

// ---- mock implementations ----

type mockTransactionCommander struct {
	createFn  func(cqrs.CreateTransactionCommand) (*models.Transaction, error)
	confirmFn func(cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error)
}

func (m *mockTransactionCommander) CreateTransaction(_ context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionCommander) ConfirmTransaction(_ context.Context, cmd cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error) {
	if m.confirmFn != nil {
		return m.confirmFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockTransactionQuerier struct {
	getFn  func(cqrs.GetPendingTransactionQuery) (*models.TransactionView, error)
	listFn func(cqrs.ListTransactionsQuery) (*models.TransactionPage, error)
}

func (m *mockTransactionQuerier) GetPendingTransaction(_ context.Context, q cqrs.GetPendingTransactionQuery) (*models.TransactionView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionQuerier) ListTransactions(_ context.Context, q cqrs.ListTransactionsQuery) (*models.TransactionPage, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func fakeAuthTx(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	}
}

func newTxTestRouter(cmds TransactionCommander, qrys TransactionQuerier, authUserID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(fakeAuthTx(authUserID))
	h := NewTransactionHandler(cmds, qrys)
	v1 := r.Group("/v1/transactions")
	v1.POST("", h.CreateTransaction)
	v1.GET("", h.ListTransactions)
	v1.GET("/:uuid", h.GetPendingTransaction)
	v1.PATCH("/confirm", h.ConfirmTransaction)
	return r
}

func txDoRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

const (
	senderBillUUID    = "0b26c4f3-41b1-4dcd-8e26-8b2f4e2cf151"
	recipientBillUUID = "6f9f29f0-6d2b-4f5c-8f63-2b6f38d9a7e4"
)

var txTestTransaction = &models.Transaction{
	UUID:             "6a1f7f5b-883e-45a5-972d-1d9b0f2a6a01",
	AmountMoney:      decimal.New(50, 0),
	TransferTitle:    "Rent",
	AuthorizationKey: "aX91c",
	CreatedAt:        time.Now(),
	UpdatedAt:        time.Now(),
}

var txTestView = &models.TransactionView{
	UUID:          txTestTransaction.UUID,
	AmountMoney:   txTestTransaction.AmountMoney,
	TransferTitle: "Rent",
	CreatedAt:     time.Now(),
	UpdatedAt:     time.Now(),
}

func txTransferBody() map[string]interface{} {
	return map[string]interface{}{
		"senderAccountBill":    senderBillUUID,
		"recipientAccountBill": recipientBillUUID,
		"amountMoney":          50.0,
		"transferTitle":        "Rent",
	}
}

// ---- tests ----

func TestCreateTransaction(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(cqrs.CreateTransactionCommand) (*models.Transaction, error)
		expectedStatus int
	}{
		{
			name: "success - create pending transfer",
			body: txTransferBody(),
			createFn: func(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
				return txTestTransaction, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "not found - sender bill does not exist",
			body: txTransferBody(),
			createFn: func(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
				return nil, apperr.ErrBillNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "bad request - transfer to the same bill",
			body: txTransferBody(),
			createFn: func(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
				return nil, apperr.ErrSelfTransfer
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unprocessable entity - amount exceeds balance",
			body: txTransferBody(),
			createFn: func(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
				return nil, apperr.ErrAmountNotEnough
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "internal error - persistence failure",
			body: txTransferBody(),
			createFn: func(cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
				return nil, fmt.Errorf("%w: connection reset", apperr.ErrCreateFailed)
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "bad request - missing required fields",
			body:           map[string]interface{}{},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - sender bill is not a uuid",
			body: map[string]interface{}{
				"senderAccountBill":    "not-a-uuid",
				"recipientAccountBill": recipientBillUUID,
				"amountMoney":          50.0,
				"transferTitle":        "Rent",
			},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockTransactionCommander{createFn: tt.createFn}
			router := newTxTestRouter(cmds, &mockTransactionQuerier{}, "usr-001")
			w := txDoRequest(router, http.MethodPost, "/v1/transactions", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestConfirmTransaction(t *testing.T) {
	confirmed := &repository.ConfirmedTransfer{Transaction: *txTestTransaction}
	confirmed.AuthorizationStatus = true

	tests := []struct {
		name           string
		body           interface{}
		confirmFn      func(cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error)
		expectedStatus int
	}{
		{
			name: "success - confirm with valid key",
			body: map[string]interface{}{"authorizationKey": "aX91c"},
			confirmFn: func(cmd cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error) {
				return confirmed, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - no pending transaction for key",
			body: map[string]interface{}{"authorizationKey": "zzzzz"},
			confirmFn: func(cmd cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error) {
				return nil, apperr.ErrTransactionNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "not found - already confirmed key",
			body: map[string]interface{}{"authorizationKey": "aX91c"},
			confirmFn: func(cmd cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error) {
				return nil, apperr.ErrTransactionNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "unprocessable entity - computed balance too low",
			body: map[string]interface{}{"authorizationKey": "aX91c"},
			confirmFn: func(cmd cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error) {
				return nil, apperr.ErrAmountNotEnough
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "bad request - missing authorization key",
			body:           map[string]interface{}{},
			confirmFn:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not found - malformed key is rejected before lookup",
			body: map[string]interface{}{"authorizationKey": "a key that is far too long!"},
			// confirmFn left nil: reaching the commander would yield a 500.
			confirmFn:      nil,
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &mockTransactionCommander{confirmFn: tt.confirmFn}
			router := newTxTestRouter(cmds, &mockTransactionQuerier{}, "usr-001")
			w := txDoRequest(router, http.MethodPatch, "/v1/transactions/confirm", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestConfirmTransaction_DoesNotEchoAuthorizationKey(t *testing.T) {
	cmds := &mockTransactionCommander{
		confirmFn: func(cmd cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error) {
			confirmed := &repository.ConfirmedTransfer{Transaction: *txTestTransaction}
			confirmed.AuthorizationStatus = true
			return confirmed, nil
		},
	}
	router := newTxTestRouter(cmds, &mockTransactionQuerier{}, "usr-001")
	w := txDoRequest(router, http.MethodPatch, "/v1/transactions/confirm", map[string]interface{}{"authorizationKey": "aX91c"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected %d got %d; body: %s", http.StatusOK, w.Code, w.Body.String())
	}

	// The key is consumed by confirmation and must never appear again.
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if _, ok := resp["authorizationKey"]; ok {
		t.Errorf("expected authorizationKey to be absent, body: %s", w.Body.String())
	}
	if status, _ := resp["authorizationStatus"].(bool); !status {
		t.Errorf("expected authorizationStatus true, body: %s", w.Body.String())
	}
}

func TestGetPendingTransaction(t *testing.T) {
	tests := []struct {
		name           string
		uuid           string
		getFn          func(cqrs.GetPendingTransactionQuery) (*models.TransactionView, error)
		expectedStatus int
	}{
		{
			name: "success - sender fetches own pending transaction",
			uuid: txTestTransaction.UUID,
			getFn: func(q cqrs.GetPendingTransactionQuery) (*models.TransactionView, error) {
				return txTestView, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - pending transaction of another user",
			uuid: txTestTransaction.UUID,
			getFn: func(q cqrs.GetPendingTransactionQuery) (*models.TransactionView, error) {
				return nil, apperr.ErrTransactionNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "not found - transaction does not exist",
			uuid: "b3b7b2f8-70cf-48c3-9b3a-000000000000",
			getFn: func(q cqrs.GetPendingTransactionQuery) (*models.TransactionView, error) {
				return nil, apperr.ErrTransactionNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockTransactionCommander{}, &mockTransactionQuerier{getFn: tt.getFn}, "usr-001")
			w := txDoRequest(router, http.MethodGet, "/v1/transactions/"+tt.uuid, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListTransactions(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		listFn         func(cqrs.ListTransactionsQuery) (*models.TransactionPage, error)
		expectedStatus int
		expectedPage   int
	}{
		{
			name: "success - first page by default",
			url:  "/v1/transactions",
			listFn: func(q cqrs.ListTransactionsQuery) (*models.TransactionPage, error) {
				return &models.TransactionPage{
					Transactions: []models.TransactionView{*txTestView},
					Meta:         models.NewPageMeta(q.Page, q.Take(), 1),
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedPage:   1,
		},
		{
			name: "success - explicit page and size",
			url:  "/v1/transactions?page=3&perPage=5",
			listFn: func(q cqrs.ListTransactionsQuery) (*models.TransactionPage, error) {
				if q.Page != 3 || q.PerPage != 5 {
					return nil, fmt.Errorf("unexpected page options: %d/%d", q.Page, q.PerPage)
				}
				return &models.TransactionPage{Meta: models.NewPageMeta(q.Page, q.Take(), 0)}, nil
			},
			expectedStatus: http.StatusOK,
			expectedPage:   3,
		},
		{
			name: "internal error - storage failure",
			url:  "/v1/transactions",
			listFn: func(q cqrs.ListTransactionsQuery) (*models.TransactionPage, error) {
				return nil, fmt.Errorf("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockTransactionCommander{}, &mockTransactionQuerier{listFn: tt.listFn}, "usr-001")
			w := txDoRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var page models.TransactionPage
				if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
					t.Fatalf("[%s] invalid response body: %v", tt.name, err)
				}
				if page.Meta.Page != tt.expectedPage {
					t.Errorf("[%s] expected page %d got %d", tt.name, tt.expectedPage, page.Meta.Page)
				}
			}
		})
	}
}
