package encval

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/mutualpool/libmutualpool-go/identity"
)

const (
	// MasterKeyLen is the length of the pool master sealing key.
	MasterKeyLen = 32

	// SaltLen is the length of the Argon2id salt.
	SaltLen = 16

	// Argon2id parameters for master key derivation.
	argon2Time        = 3
	argon2Memory      = 64 * 1024 // 64 MB
	argon2Parallelism = 4

	// hkdfSealInfo is the info string for per-owner sealing keys.
	hkdfSealInfo = "mutualpool-value-sealing"

	flagClear = 0x00
	flagSet   = 0x01
)

// GenerateSalt returns a fresh random Argon2id salt.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("encval: generate salt: %w", err)
	}
	return salt, nil
}

// DeriveMasterKey derives the pool master sealing key from an operator
// passphrase with Argon2id. The same (passphrase, salt) pair always
// yields the same key, so the salt must be persisted alongside the store.
func DeriveMasterKey(passphrase string, salt []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if len(salt) != SaltLen {
		return nil, fmt.Errorf("%w: salt must be %d bytes", ErrInvalidKey, SaltLen)
	}
	return argon2.IDKey([]byte(passphrase), salt, argon2Time, argon2Memory,
		argon2Parallelism, MasterKeyLen), nil
}

// Sealer encrypts values at rest. Each owner gets a distinct key derived
// from the master key via HKDF-SHA256 with the owner principal as salt,
// so sealed blobs for different members never share key material.
type Sealer struct {
	master []byte
}

// NewSealer creates a sealer from a master key.
func NewSealer(master []byte) (*Sealer, error) {
	if len(master) != MasterKeyLen {
		return nil, fmt.Errorf("%w: master key must be %d bytes", ErrInvalidKey, MasterKeyLen)
	}
	s := &Sealer{master: make([]byte, MasterKeyLen)}
	copy(s.master, master)
	return s, nil
}

// ownerKey derives the XChaCha20-Poly1305 key for an owner.
func (s *Sealer) ownerKey(owner identity.Principal) ([]byte, error) {
	r := hkdf.New(sha256.New, s.master, owner[:], []byte(hkdfSealInfo))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("encval: derive owner key: %w", err)
	}
	return key, nil
}

// seal encrypts plaintext under the owner's derived key.
// Output format: nonce(24B) || XChaCha20-Poly1305(plaintext, aad=owner).
func (s *Sealer) seal(owner identity.Principal, plaintext []byte) ([]byte, error) {
	key, err := s.ownerKey(owner)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("encval: create cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("encval: generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, owner[:]), nil
}

// open decrypts a sealed blob under the owner's derived key.
func (s *Sealer) open(owner identity.Principal, data []byte) ([]byte, error) {
	key, err := s.ownerKey(owner)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("encval: create cipher: %w", err)
	}
	if len(data) < aead.NonceSize() {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidSealedData, len(data))
	}
	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, owner[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSealedData, err)
	}
	return plaintext, nil
}

// Seal encrypts a value for persistence.
func (s *Sealer) Seal(v *Value) ([]byte, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	return s.seal(v.owner, v.n.Bytes())
}

// Open reconstructs a sealed value for the given owner.
func (s *Sealer) Open(owner identity.Principal, data []byte) (*Value, error) {
	plaintext, err := s.open(owner, data)
	if err != nil {
		return nil, err
	}
	return &Value{owner: owner, n: new(big.Int).SetBytes(plaintext)}, nil
}

// SealFlag encrypts a flag for persistence.
func (s *Sealer) SealFlag(f *Flag) ([]byte, error) {
	if f == nil {
		return nil, ErrNilValue
	}
	b := []byte{flagClear}
	if f.set {
		b[0] = flagSet
	}
	return s.seal(f.owner, b)
}

// OpenFlag reconstructs a sealed flag for the given owner.
func (s *Sealer) OpenFlag(owner identity.Principal, data []byte) (*Flag, error) {
	plaintext, err := s.open(owner, data)
	if err != nil {
		return nil, err
	}
	if len(plaintext) != 1 || (plaintext[0] != flagClear && plaintext[0] != flagSet) {
		return nil, fmt.Errorf("%w: bad flag encoding", ErrInvalidSealedData)
	}
	return &Flag{owner: owner, set: plaintext[0] == flagSet}, nil
}
