// Package apperr defines the domain errors of the transfer workflow. All of
// them are user-facing and recoverable by retrying with different input.
package apperr

import "errors"

var (
	// ErrBillNotFound indicates a referenced bill does not exist or is not
	// visible to the requesting user.
	ErrBillNotFound = errors.New("bill not found")

	// ErrCurrencyNotFound indicates a referenced currency does not exist.
	ErrCurrencyNotFound = errors.New("currency not found")

	// ErrSelfTransfer indicates the sender and recipient bill are the same.
	ErrSelfTransfer = errors.New("transfer to the same bill is not allowed")

	// ErrAmountNotEnough covers both a non-positive amount and an amount
	// exceeding the available balance, at creation and at confirmation.
	ErrAmountNotEnough = errors.New("amount of money is not enough")

	// ErrTransactionNotFound indicates no pending transaction matches the
	// given key or uuid for the requesting user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCreateFailed wraps the underlying storage error when persisting a
	// transaction fails.
	ErrCreateFailed = errors.New("transaction creation failed")
)
