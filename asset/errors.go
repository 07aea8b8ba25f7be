package asset

import "errors"

var (
	// ErrNonPositiveAmount indicates a transfer of zero or negative value.
	ErrNonPositiveAmount = errors.New("asset: transfer amount must be positive")

	// ErrInsufficientFunds indicates the source balance cannot cover the
	// transfer.
	ErrInsufficientFunds = errors.New("asset: insufficient funds")
)
