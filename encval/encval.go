// Package encval implements the confidential value primitive the pool
// ledger is built on.
//
// A Value is an opaque non-negative integer bound to an owner principal.
// Arithmetic (add, sub, mul, truncating div) and predicates (sign,
// comparison) operate on the opaque form and are available to any holder
// of the value; disclosing the concrete integer requires a Capability for
// the owner. This mirrors the contract of the encrypted-integer primitive
// in the environment the accounting model comes from: the ledger can
// branch on conditions and combine values without ever learning them.
//
// Values are bounded to the 256-bit word width of that environment.
// Addition and multiplication that would exceed the bound, or subtraction
// that would go negative, fail with ErrArithmeticOverflow rather than
// wrapping.
package encval

import (
	"fmt"
	"math/big"

	"github.com/mutualpool/libmutualpool-go/identity"
)

// maxWord is the largest representable value, 2^256 - 1.
var maxWord = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Value is an opaque owned integer.
type Value struct {
	owner identity.Principal
	n     *big.Int
}

// New wraps n as a value owned by owner. n must be in [0, 2^256).
func New(owner identity.Principal, n *big.Int) (*Value, error) {
	if n == nil {
		return nil, ErrNilValue
	}
	if n.Sign() < 0 || n.Cmp(maxWord) > 0 {
		return nil, fmt.Errorf("%w: %s out of range", ErrValueOutOfRange, n)
	}
	return &Value{owner: owner, n: new(big.Int).Set(n)}, nil
}

// NewUint64 wraps u as a value owned by owner.
func NewUint64(owner identity.Principal, u uint64) *Value {
	return &Value{owner: owner, n: new(big.Int).SetUint64(u)}
}

// Zero returns a zero value owned by owner.
func Zero(owner identity.Principal) *Value {
	return &Value{owner: owner, n: new(big.Int)}
}

// Owner returns the principal that may disclose this value.
func (v *Value) Owner() identity.Principal {
	return v.owner
}

// Rebind returns a copy of the value owned by newOwner. Used when a
// computed amount is credited to a different member's balance.
func (v *Value) Rebind(newOwner identity.Principal) *Value {
	return &Value{owner: newOwner, n: new(big.Int).Set(v.n)}
}

// Clone returns an independent copy with the same owner.
func (v *Value) Clone() *Value {
	return &Value{owner: v.owner, n: new(big.Int).Set(v.n)}
}

// Add returns v + o owned by v's owner.
func (v *Value) Add(o *Value) (*Value, error) {
	sum := new(big.Int).Add(v.n, o.n)
	if sum.Cmp(maxWord) > 0 {
		return nil, fmt.Errorf("%w: addition", ErrArithmeticOverflow)
	}
	return &Value{owner: v.owner, n: sum}, nil
}

// Sub returns v - o owned by v's owner. Fails if the result would be
// negative.
func (v *Value) Sub(o *Value) (*Value, error) {
	if v.n.Cmp(o.n) < 0 {
		return nil, fmt.Errorf("%w: subtraction", ErrArithmeticOverflow)
	}
	return &Value{owner: v.owner, n: new(big.Int).Sub(v.n, o.n)}, nil
}

// Mul returns v * o owned by v's owner.
func (v *Value) Mul(o *Value) (*Value, error) {
	prod := new(big.Int).Mul(v.n, o.n)
	if prod.Cmp(maxWord) > 0 {
		return nil, fmt.Errorf("%w: multiplication", ErrArithmeticOverflow)
	}
	return &Value{owner: v.owner, n: prod}, nil
}

// Div returns v / o owned by v's owner, truncating toward zero.
func (v *Value) Div(o *Value) (*Value, error) {
	if o.n.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	return &Value{owner: v.owner, n: new(big.Int).Quo(v.n, o.n)}, nil
}

// Cmp compares v and o without disclosure: -1 if v < o, 0 if equal,
// +1 if v > o.
func (v *Value) Cmp(o *Value) int {
	return v.n.Cmp(o.n)
}

// Sign reports the sign of the value without disclosure: 0 for zero,
// +1 otherwise (values are never negative).
func (v *Value) Sign() int {
	return v.n.Sign()
}

// IsZero reports whether the value is zero without disclosure.
func (v *Value) IsZero() bool {
	return v.n.Sign() == 0
}

// Reveal discloses the concrete integer. The capability must cover the
// value's owner.
func (v *Value) Reveal(cap identity.Capability) (*big.Int, error) {
	if !cap.Covers(v.owner) {
		return nil, ErrNotOwner
	}
	return new(big.Int).Set(v.n), nil
}

// Flag is an opaque owned boolean.
type Flag struct {
	owner identity.Principal
	set   bool
}

// NewFlag wraps b as a flag owned by owner.
func NewFlag(owner identity.Principal, b bool) *Flag {
	return &Flag{owner: owner, set: b}
}

// Owner returns the principal that may disclose this flag.
func (f *Flag) Owner() identity.Principal {
	return f.owner
}

// IsSet reports the flag state as a predicate, without disclosure of
// anything beyond the branch taken (the same observation any conditional
// on the opaque form yields).
func (f *Flag) IsSet() bool {
	return f.set
}

// Reveal discloses the flag to its owner.
func (f *Flag) Reveal(cap identity.Capability) (bool, error) {
	if !cap.Covers(f.owner) {
		return false, ErrNotOwner
	}
	return f.set, nil
}
