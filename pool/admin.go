package pool

import "github.com/mutualpool/libmutualpool-go/identity"

// Pause stops all state-mutating operations. Circuit breaker only; no
// accounting state is touched.
func (p *Pool) Pause(adminCap identity.Capability) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !adminCap.Covers(p.admin) {
		return ErrNotAdmin
	}
	p.paused = true
	return nil
}

// Unpause resumes state-mutating operations.
func (p *Pool) Unpause(adminCap identity.Capability) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !adminCap.Covers(p.admin) {
		return ErrNotAdmin
	}
	p.paused = false
	return nil
}

// Paused reports whether the pool is paused.
func (p *Pool) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// ChangeAdmin hands the admin role to a new principal.
func (p *Pool) ChangeAdmin(adminCap identity.Capability, newAdmin identity.Principal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !adminCap.Covers(p.admin) {
		return ErrNotAdmin
	}
	if newAdmin.IsZero() {
		return ErrNoAdmin
	}
	p.admin = newAdmin
	return nil
}
