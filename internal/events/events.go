package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	BillCreated = "bill.created"

	TransactionCreated   = "transaction.created"
	TransactionConfirmed = "transaction.confirmed"
)

// Stream names
const (
	BillEventsStream        = "bill.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type BillCreatedEvent struct {
	BillUUID      string `json:"billUuid"`
	AccountNumber string `json:"accountNumber"`
	UserID        string `json:"userId"`
	CurrencyUUID  string `json:"currencyUuid"`
}

type TransactionCreatedEvent struct {
	TransactionUUID   string          `json:"transactionUuid"`
	SenderBillUUID    string          `json:"senderBillUuid"`
	RecipientBillUUID string          `json:"recipientBillUuid"`
	UserID            string          `json:"userId"`
	AmountMoney       decimal.Decimal `json:"amountMoney"`
	TransferTitle     string          `json:"transferTitle"`
}

// TransactionConfirmedEvent announces that a pending transaction became
// confirmed. The snapshot refresher consumes it to update both bills'
// denormalised balances.
type TransactionConfirmedEvent struct {
	TransactionUUID   string          `json:"transactionUuid"`
	SenderBillUUID    string          `json:"senderBillUuid"`
	RecipientBillUUID string          `json:"recipientBillUuid"`
	AmountMoney       decimal.Decimal `json:"amountMoney"`
}
