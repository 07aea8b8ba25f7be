package pool

import (
	"github.com/jonboulle/clockwork"

	"github.com/mutualpool/libmutualpool-go/governance"
	"github.com/mutualpool/libmutualpool-go/poolstore"
)

// Save writes the full pool state to the store. The per-member and
// aggregate fields round-trip exactly; a pool loaded from the same store
// continues where this one stopped.
func (p *Pool) Save(st poolstore.Store) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := &poolstore.PoolState{
		Principal:        p.principal,
		Admin:            p.admin,
		Paused:           p.paused,
		CreatedAt:        p.createdAt,
		TotalCommitment:  p.engine.TotalCommitment(),
		TotalDistributed: p.engine.TotalDistributed(),
	}
	if err := st.PutPoolState(state); err != nil {
		return err
	}
	for _, rec := range p.ledger.Members() {
		if err := st.PutMember(rec); err != nil {
			return err
		}
	}
	for _, acct := range p.engine.Accounts() {
		if err := st.PutAccount(acct); err != nil {
			return err
		}
	}
	for _, rec := range p.processor.Records() {
		if err := st.PutContribution(rec); err != nil {
			return err
		}
	}
	return nil
}

// Load reconstructs a pool from the store. The principal, admin, pause
// flag and creation time come from the stored state; params, clock,
// governance and transport come from the options since they are wiring,
// not state.
func Load(st poolstore.Store, opts Options) (*Pool, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}

	state, err := st.GetPoolState()
	if err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	gov := opts.Governance
	if gov == nil {
		gov = governance.NopSetter{}
	}

	p := &Pool{
		clock:     clock,
		params:    opts.Params,
		principal: state.Principal,
		admin:     state.Admin,
		paused:    state.Paused,
		createdAt: state.CreatedAt,
	}
	if err := p.build(gov, opts.Transport); err != nil {
		return nil, err
	}

	p.engine.RestoreAggregates(state.TotalCommitment, state.TotalDistributed)

	members, err := st.ListMembers()
	if err != nil {
		return nil, err
	}
	for _, rec := range members {
		p.ledger.Restore(rec)
	}

	accounts, err := st.ListAccounts()
	if err != nil {
		return nil, err
	}
	for _, acct := range accounts {
		p.engine.RestoreAccount(acct)
	}

	contributions, err := st.ListContributions()
	if err != nil {
		return nil, err
	}
	for _, rec := range contributions {
		p.processor.Restore(rec)
	}

	return p, nil
}
