package cqrs

import "github.com/shopspring/decimal"

type CreateBillCommand struct {
	UserID       string
	CurrencyUUID string
}

type CreateTransactionCommand struct {
	UserID            string
	SenderBillUUID    string
	RecipientBillUUID string
	AmountMoney       decimal.Decimal
	TransferTitle     string
}

type ConfirmTransactionCommand struct {
	UserID           string
	AuthorizationKey string
}
