// Package pool composes the membership ledger, contribution processor
// and distribution engine into one pool instance.
//
// A pool is a single-writer state machine: one mutex spans every
// operation, so calls from different members serialize in arrival order
// and no operation ever observes another mid-flight. Each operation
// validates across all components before the first effect lands,
// matching the all-or-nothing transaction semantics of the environment
// the accounting model comes from.
package pool

import (
	"math/big"
	"sync"
	"time"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/jonboulle/clockwork"

	"github.com/mutualpool/libmutualpool-go/asset"
	"github.com/mutualpool/libmutualpool-go/config"
	"github.com/mutualpool/libmutualpool-go/contribution"
	"github.com/mutualpool/libmutualpool-go/distribution"
	"github.com/mutualpool/libmutualpool-go/governance"
	"github.com/mutualpool/libmutualpool-go/identity"
	"github.com/mutualpool/libmutualpool-go/membership"
)

// Options configures a new pool instance.
type Options struct {
	Params     config.Params
	Admin      identity.Principal     // required; holds pause/unpause/change-admin
	Transport  asset.Transferer       // required; the value rail
	Governance governance.PowerSetter // nil = no voting subsystem
	Clock      clockwork.Clock        // nil = wall clock
	Principal  identity.Principal     // zero = freshly generated
}

// Pool is one mutual pool instance.
type Pool struct {
	mu sync.Mutex

	clock     clockwork.Clock
	params    config.Params
	principal identity.Principal
	admin     identity.Principal
	paused    bool
	createdAt time.Time

	ledger    *membership.Ledger
	engine    *distribution.Engine
	processor *contribution.Processor
}

// New creates a pool. The join window, when configured, opens at
// creation time.
func New(opts Options) (*Pool, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	if opts.Admin.IsZero() {
		return nil, ErrNoAdmin
	}
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	gov := opts.Governance
	if gov == nil {
		gov = governance.NopSetter{}
	}

	principal := opts.Principal
	if principal.IsZero() {
		priv, err := ec.NewPrivateKey()
		if err != nil {
			return nil, err
		}
		principal, err = identity.PrincipalFromPublicKey(priv.PubKey())
		if err != nil {
			return nil, err
		}
	}

	createdAt := clock.Now()
	p := &Pool{
		clock:     clock,
		params:    opts.Params,
		principal: principal,
		admin:     opts.Admin,
		createdAt: createdAt,
	}
	if err := p.build(gov, opts.Transport); err != nil {
		return nil, err
	}
	return p, nil
}

// build wires the engine, processor and ledger for the pool's current
// principal, params and creation time.
func (p *Pool) build(gov governance.PowerSetter, transport asset.Transferer) error {
	engine, err := distribution.NewEngine(p.params, p.principal)
	if err != nil {
		return err
	}
	processor, err := contribution.NewProcessor(p.params)
	if err != nil {
		return err
	}
	ledger, err := membership.NewLedger(p.params, p.principal, p.createdAt,
		engine, processor, gov, transport)
	if err != nil {
		return err
	}
	p.engine = engine
	p.processor = processor
	p.ledger = ledger
	return nil
}

// Principal returns the pool's own principal (the transport destination
// for contributions).
func (p *Pool) Principal() identity.Principal {
	return p.principal
}

// guardMutation is the common prologue of every state-mutating operation.
// The caller must hold the lock.
func (p *Pool) guardMutation() error {
	if p.paused {
		return ErrPoolPaused
	}
	return nil
}

// Join enrolls the caller with a commitment percentage.
func (p *Pool) Join(cap identity.Capability, percentage int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.guardMutation(); err != nil {
		return err
	}
	return p.ledger.Join(cap, percentage, p.clock.Now())
}

// UpdateCommitment replaces the caller's commitment percentage, subject
// to the commitment lock period.
func (p *Pool) UpdateCommitment(cap identity.Capability, percentage int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.guardMutation(); err != nil {
		return err
	}
	return p.ledger.UpdateCommitment(cap, percentage, p.clock.Now())
}

// ContributeExit reports a windfall and distributes the resulting
// contribution.
func (p *Pool) ContributeExit(cap identity.Capability, exitValue *big.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.guardMutation(); err != nil {
		return err
	}
	return p.ledger.ContributeExit(cap, exitValue, p.clock.Now())
}

// Leave deactivates the caller.
func (p *Pool) Leave(cap identity.Capability) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.guardMutation(); err != nil {
		return err
	}
	return p.ledger.Leave(cap, p.clock.Now())
}

// ClaimDividends pays out part of the caller's pending balance.
func (p *Pool) ClaimDividends(cap identity.Capability, amount *big.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.guardMutation(); err != nil {
		return err
	}
	return p.ledger.ClaimDividends(cap, amount)
}
