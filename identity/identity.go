// Package identity defines member principals and caller capabilities for
// the mutual pool.
//
// A Principal is the stable identity a member is known by: the Hash160 of
// their compressed secp256k1 public key. A Capability is the proof that a
// caller controls a principal; it is minted from the corresponding private
// key and passed explicitly into every entry point that discloses
// member-owned state. There is no ambient "current caller" anywhere in the
// library.
package identity

import (
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// PrincipalSize is the byte length of a principal (Hash160 output).
const PrincipalSize = 20

// Principal identifies a pool participant.
type Principal [PrincipalSize]byte

// PrincipalFromPublicKey derives the principal for a public key.
func PrincipalFromPublicKey(pub *ec.PublicKey) (Principal, error) {
	if pub == nil {
		return Principal{}, ErrNilPublicKey
	}
	var p Principal
	copy(p[:], bsvhash.Hash160(pub.Compressed()))
	return p, nil
}

// Hex returns the lowercase hex rendering of the principal.
func (p Principal) Hex() string {
	return hex.EncodeToString(p[:])
}

// IsZero reports whether the principal is the zero value.
func (p Principal) IsZero() bool {
	return p == Principal{}
}

// ParsePrincipal decodes a hex-encoded principal.
func ParsePrincipal(s string) (Principal, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidPrincipal, err)
	}
	if len(raw) != PrincipalSize {
		return Principal{}, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrInvalidPrincipal, PrincipalSize, len(raw))
	}
	var p Principal
	copy(p[:], raw)
	return p, nil
}

// Capability proves control of a principal. It is minted from the private
// key whose public key hashes to that principal, so holding a Capability
// is equivalent to holding the key.
type Capability struct {
	principal Principal
}

// NewCapability mints a capability from a private key.
func NewCapability(priv *ec.PrivateKey) (Capability, error) {
	if priv == nil {
		return Capability{}, ErrNilPrivateKey
	}
	p, err := PrincipalFromPublicKey(priv.PubKey())
	if err != nil {
		return Capability{}, err
	}
	return Capability{principal: p}, nil
}

// Principal returns the principal this capability speaks for.
func (c Capability) Principal() Principal {
	return c.principal
}

// Covers reports whether the capability speaks for p.
func (c Capability) Covers(p Principal) bool {
	return c.principal == p
}
