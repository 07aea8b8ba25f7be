package encval

import "errors"

var (
	// ErrNilValue indicates a nil integer was supplied.
	ErrNilValue = errors.New("encval: nil value")

	// ErrValueOutOfRange indicates the integer is negative or exceeds the
	// 256-bit word bound.
	ErrValueOutOfRange = errors.New("encval: value out of range")

	// ErrArithmeticOverflow indicates an operation left the representable
	// range. Wraparound is never silent.
	ErrArithmeticOverflow = errors.New("encval: arithmetic overflow")

	// ErrDivideByZero indicates division by a zero value.
	ErrDivideByZero = errors.New("encval: divide by zero")

	// ErrNotOwner indicates a disclosing read by a capability that does
	// not cover the value's owner.
	ErrNotOwner = errors.New("encval: caller is not the owner")

	// ErrInvalidSealedData indicates sealed bytes are malformed or were
	// tampered with.
	ErrInvalidSealedData = errors.New("encval: invalid sealed data")

	// ErrInvalidKey indicates a sealing key of the wrong length.
	ErrInvalidKey = errors.New("encval: invalid sealing key")

	// ErrEmptyPassphrase indicates an empty operator passphrase.
	ErrEmptyPassphrase = errors.New("encval: passphrase must not be empty")
)
