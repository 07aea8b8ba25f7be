// Package governance holds the narrow boundary the pool shares with the
// voting subsystem. The ledger pushes a voting power on join and a zero
// on leave; nothing else crosses this boundary.
package governance

import (
	"sync"

	"github.com/mutualpool/libmutualpool-go/identity"
)

// PowerSetter receives voting power updates from the membership ledger.
type PowerSetter interface {
	// SetVotingPower records the voting power for a member. A power of
	// zero clears the member's vote.
	SetVotingPower(member identity.Principal, power int64)
}

// Registry is an in-memory PowerSetter that retains the latest power per
// member. It stands in for the external voting subsystem.
type Registry struct {
	mu     sync.RWMutex
	powers map[identity.Principal]int64
}

// Compile-time interface check.
var _ PowerSetter = (*Registry)(nil)

// NewRegistry creates an empty voting power registry.
func NewRegistry() *Registry {
	return &Registry{powers: make(map[identity.Principal]int64)}
}

// SetVotingPower records the voting power for a member.
func (r *Registry) SetVotingPower(member identity.Principal, power int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if power == 0 {
		delete(r.powers, member)
		return
	}
	r.powers[member] = power
}

// VotingPower returns the recorded power for a member, zero if none.
func (r *Registry) VotingPower(member identity.Principal) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.powers[member]
}

// NopSetter discards all voting power updates, for pools that run
// without a governance subsystem.
type NopSetter struct{}

// Compile-time interface check.
var _ PowerSetter = NopSetter{}

// SetVotingPower discards the update.
func (NopSetter) SetVotingPower(identity.Principal, int64) {}
