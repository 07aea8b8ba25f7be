package poolstore

import "errors"

var (
	// ErrNilRecord indicates a nil record was supplied.
	ErrNilRecord = errors.New("poolstore: nil record")

	// ErrStateNotFound indicates no pool state has been stored yet.
	ErrStateNotFound = errors.New("poolstore: pool state not found")

	// ErrNoSealer indicates the bolt store was opened without a sealer.
	ErrNoSealer = errors.New("poolstore: sealer required")
)
