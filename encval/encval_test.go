package encval

import (
	"math/big"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutualpool/libmutualpool-go/identity"
)

// newOwner mints a fresh principal with its capability.
func newOwner(t *testing.T) (identity.Principal, identity.Capability) {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	cap, err := identity.NewCapability(priv)
	require.NoError(t, err)
	return cap.Principal(), cap
}

func TestNew_Bounds(t *testing.T) {
	owner, _ := newOwner(t)

	_, err := New(owner, big.NewInt(-1))
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = New(owner, nil)
	assert.ErrorIs(t, err, ErrNilValue)

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = New(owner, tooBig)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	maxOK := new(big.Int).Sub(tooBig, big.NewInt(1))
	_, err = New(owner, maxOK)
	assert.NoError(t, err)
}

func TestArithmetic(t *testing.T) {
	owner, cap := newOwner(t)
	a := NewUint64(owner, 100)
	b := NewUint64(owner, 30)

	sum, err := a.Add(b)
	require.NoError(t, err)
	n, err := sum.Reveal(cap)
	require.NoError(t, err)
	assert.Equal(t, int64(130), n.Int64())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	n, err = diff.Reveal(cap)
	require.NoError(t, err)
	assert.Equal(t, int64(70), n.Int64())

	prod, err := a.Mul(b)
	require.NoError(t, err)
	n, err = prod.Reveal(cap)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), n.Int64())

	// Division truncates toward zero.
	quo, err := a.Div(b)
	require.NoError(t, err)
	n, err = quo.Reveal(cap)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Int64())
}

func TestArithmetic_Overflow(t *testing.T) {
	owner, _ := newOwner(t)
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	big1, err := New(owner, max)
	require.NoError(t, err)
	one := NewUint64(owner, 1)

	_, err = big1.Add(one)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	_, err = big1.Mul(NewUint64(owner, 2))
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	// Underflow: subtraction below zero is an error, not wraparound.
	_, err = one.Sub(NewUint64(owner, 2))
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestDiv_ByZero(t *testing.T) {
	owner, _ := newOwner(t)
	_, err := NewUint64(owner, 10).Div(Zero(owner))
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestReveal_OwnerOnly(t *testing.T) {
	owner, ownerCap := newOwner(t)
	_, strangerCap := newOwner(t)

	v := NewUint64(owner, 42)

	n, err := v.Reveal(ownerCap)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n.Int64())

	_, err = v.Reveal(strangerCap)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestRebind(t *testing.T) {
	owner, _ := newOwner(t)
	other, otherCap := newOwner(t)

	v := NewUint64(owner, 7).Rebind(other)
	assert.Equal(t, other, v.Owner())

	n, err := v.Reveal(otherCap)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n.Int64())
}

func TestPredicates(t *testing.T) {
	owner, _ := newOwner(t)
	a := NewUint64(owner, 5)
	b := NewUint64(owner, 9)

	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(NewUint64(owner, 5)))
	assert.True(t, Zero(owner).IsZero())
	assert.False(t, a.IsZero())
	assert.Equal(t, 1, a.Sign())
}

func TestFlag(t *testing.T) {
	owner, ownerCap := newOwner(t)
	_, strangerCap := newOwner(t)

	f := NewFlag(owner, true)
	assert.True(t, f.IsSet())

	b, err := f.Reveal(ownerCap)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = f.Reveal(strangerCap)
	assert.ErrorIs(t, err, ErrNotOwner)
}
