package pool

import "errors"

var (
	// ErrPoolPaused indicates a state-mutating call while the pool is
	// paused.
	ErrPoolPaused = errors.New("pool: pool is paused")

	// ErrNotAdmin indicates an administrative call without the admin
	// capability.
	ErrNotAdmin = errors.New("pool: caller is not the admin")

	// ErrNoAdmin indicates a missing admin principal.
	ErrNoAdmin = errors.New("pool: admin principal required")

	// ErrNoTransport indicates a missing transport asset.
	ErrNoTransport = errors.New("pool: transport asset required")
)
