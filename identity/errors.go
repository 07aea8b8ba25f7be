package identity

import "errors"

var (
	// ErrNilPublicKey indicates a nil public key was supplied.
	ErrNilPublicKey = errors.New("identity: nil public key")

	// ErrNilPrivateKey indicates a nil private key was supplied.
	ErrNilPrivateKey = errors.New("identity: nil private key")

	// ErrInvalidPrincipal indicates a malformed principal encoding.
	ErrInvalidPrincipal = errors.New("identity: invalid principal")
)
