package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdTimestamp"`
	UpdatedAt time.Time `json:"updatedTimestamp"`
}

// Currency is a reference row. Exactly one currency carries Base = true; every
// other currency's CurrentExchangeRate is expressed relative to that one.
type Currency struct {
	ID                  int64           `json:"-"`
	UUID                string          `json:"uuid"`
	Name                string          `json:"name"`
	Base                bool            `json:"base"`
	CurrentExchangeRate decimal.Decimal `json:"currentExchangeRate"`
	CreatedAt           time.Time       `json:"createdTimestamp"`
	UpdatedAt           time.Time       `json:"updatedTimestamp"`
}

// Bill is a user's monetary account in a single currency. AmountMoney is a
// denormalised snapshot kept for display; the authoritative balance is always
// computed from confirmed transactions.
type Bill struct {
	ID            int64           `json:"-"`
	UUID          string          `json:"uuid"`
	AccountNumber string          `json:"accountNumber"`
	UserID        string          `json:"-"`
	CurrencyID    int64           `json:"-"`
	AmountMoney   decimal.Decimal `json:"amountMoney"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// Transaction is one transfer attempt between two bills. It is created
// pending (AuthorizationStatus false) and flipped to confirmed exactly once
// by presenting its AuthorizationKey.
type Transaction struct {
	ID                  int64           `json:"-"`
	UUID                string          `json:"uuid"`
	SenderBillID        int64           `json:"-"`
	RecipientBillID     int64           `json:"-"`
	AmountMoney         decimal.Decimal `json:"amountMoney"`
	TransferTitle       string          `json:"transferTitle"`
	AuthorizationKey    string          `json:"authorizationKey,omitempty"`
	AuthorizationStatus bool            `json:"authorizationStatus"`
	CreatedAt           time.Time       `json:"createdTimestamp"`
	UpdatedAt           time.Time       `json:"updatedTimestamp"`
}

type Language struct {
	ID   int64  `json:"-"`
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type MessageKey struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
}
