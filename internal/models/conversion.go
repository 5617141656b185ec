package models

import "github.com/shopspring/decimal"

// ConversionFactor returns the multiplier that converts an amount denominated
// in the sender's currency into the target bill's currency:
//   - same currency: 1
//   - target is the base currency: sender's exchange rate
//   - otherwise: sender's exchange rate times the target's exchange rate
func ConversionFactor(sender, target Currency) decimal.Decimal {
	if sender.ID == target.ID {
		return decimal.NewFromInt(1)
	}
	if target.Base {
		return sender.CurrentExchangeRate
	}
	return sender.CurrentExchangeRate.Mul(target.CurrentExchangeRate)
}

// SignedContribution returns what a confirmed transaction adds to billID's
// balance, converted into the bill's currency and truncated to 2 decimal
// places: positive when the bill is the recipient, negative when it is the
// sender, zero when the transaction does not touch the bill at all.
func SignedContribution(billID int64, t Transaction, senderCurrency, billCurrency Currency) decimal.Decimal {
	switch billID {
	case t.RecipientBillID:
		return t.AmountMoney.Mul(ConversionFactor(senderCurrency, billCurrency)).Truncate(2)
	case t.SenderBillID:
		return t.AmountMoney.Neg().Truncate(2)
	default:
		return decimal.Zero
	}
}
