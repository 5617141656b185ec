package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyView is the read-optimised projection of a currency.
type CurrencyView struct {
	UUID                string          `json:"uuid"`
	Name                string          `json:"name"`
	Base                bool            `json:"base"`
	CurrentExchangeRate decimal.Decimal `json:"currentExchangeRate"`
}

// BillView is the read-optimised projection of a bill, enriched with its
// currency. UserID is populated for ownership checks but never serialised.
type BillView struct {
	UUID          string          `json:"uuid"`
	AccountNumber string          `json:"accountNumber"`
	UserID        string          `json:"-"`
	AmountMoney   decimal.Decimal `json:"amountMoney"`
	Currency      CurrencyView    `json:"currency"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// BillPartyView identifies one side of a transfer: the bill together with the
// user who owns it and the currency it is denominated in.
type BillPartyView struct {
	UUID          string       `json:"uuid"`
	AccountNumber string       `json:"accountNumber"`
	User          UserView     `json:"user"`
	Currency      CurrencyView `json:"currency"`
}

// UserView never exposes credentials.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TransactionView is the read-optimised projection of a confirmed transaction,
// enriched with both counterparties.
type TransactionView struct {
	UUID          string          `json:"uuid"`
	AmountMoney   decimal.Decimal `json:"amountMoney"`
	TransferTitle string          `json:"transferTitle"`
	Sender        BillPartyView   `json:"senderAccountBill"`
	Recipient     BillPartyView   `json:"recipientAccountBill"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// PageMeta carries pagination bookkeeping alongside a page of results.
type PageMeta struct {
	Page      int `json:"page"`
	PerPage   int `json:"perPage"`
	ItemCount int `json:"itemCount"`
	PageCount int `json:"pageCount"`
}

// TransactionPage is one page of a user's confirmed transactions.
type TransactionPage struct {
	Transactions []TransactionView `json:"transactions"`
	Meta         PageMeta          `json:"meta"`
}

func NewPageMeta(page, perPage, itemCount int) PageMeta {
	pageCount := 0
	if perPage > 0 {
		pageCount = (itemCount + perPage - 1) / perPage
	}
	return PageMeta{Page: page, PerPage: perPage, ItemCount: itemCount, PageCount: pageCount}
}
