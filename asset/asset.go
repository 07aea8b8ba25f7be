// Package asset holds the value-transport boundary. The pool only needs
// transferFrom semantics to move value in on contribution and out on
// claim; minting, yield and balance shielding belong to the external
// asset and are not modeled here. Amounts cross the boundary in opaque
// form, so the rail learns nothing the pool does not.
package asset

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/identity"
)

// Transferer moves value between principals.
type Transferer interface {
	// TransferFrom moves amount from one principal to another. It either
	// completes fully or returns an error with no movement.
	TransferFrom(from, to identity.Principal, amount *encval.Value) error
}

// Bank is an in-memory Transferer with opaque balances. It stands in for
// the external privacy-preserving asset in tests and local runs.
type Bank struct {
	mu       sync.Mutex
	balances map[identity.Principal]*encval.Value
}

// Compile-time interface check.
var _ Transferer = (*Bank)(nil)

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{balances: make(map[identity.Principal]*encval.Value)}
}

// Mint credits amount to a principal out of thin air (test setup).
func (b *Bank) Mint(p identity.Principal, amount *big.Int) error {
	v, err := encval.New(p, amount)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.balances[p]
	if !ok {
		b.balances[p] = v
		return nil
	}
	sum, err := cur.Add(v)
	if err != nil {
		return err
	}
	b.balances[p] = sum
	return nil
}

// Balance discloses a principal's balance to the principal themself.
func (b *Bank) Balance(cap identity.Capability) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.balances[cap.Principal()]
	if !ok {
		return big.NewInt(0), nil
	}
	return cur.Reveal(cap)
}

// TransferFrom moves amount between principals without learning it.
func (b *Bank) TransferFrom(from, to identity.Principal, amount *encval.Value) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrNonPositiveAmount
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	src, ok := b.balances[from]
	if !ok || src.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s", ErrInsufficientFunds, from.Hex())
	}
	// Same entry on both sides: the transfer is a funded no-op. Falling
	// through would apply the credit over the debit and mint funds.
	if from == to {
		return nil
	}
	newSrc, err := src.Sub(amount.Rebind(from))
	if err != nil {
		return err
	}
	dst, ok := b.balances[to]
	if !ok {
		dst = encval.Zero(to)
	}
	newDst, err := dst.Add(amount.Rebind(to))
	if err != nil {
		return err
	}
	b.balances[from] = newSrc
	b.balances[to] = newDst
	return nil
}
