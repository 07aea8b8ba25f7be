// Package membership implements the ledger that tracks pool members and
// orchestrates the contribution flow.
//
// The ledger exclusively owns membership and commitment state. It is the
// only caller of the contribution processor and the distribution engine,
// and every member-facing operation enters through it with an explicit
// caller capability. Operations validate across all three components
// before the first effect lands, so a failure anywhere leaves the pool
// untouched.
package membership

import (
	"fmt"
	"math/big"
	"time"

	"github.com/mutualpool/libmutualpool-go/asset"
	"github.com/mutualpool/libmutualpool-go/config"
	"github.com/mutualpool/libmutualpool-go/contribution"
	"github.com/mutualpool/libmutualpool-go/distribution"
	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/governance"
	"github.com/mutualpool/libmutualpool-go/identity"
)

// member is the ledger's record for one participant. Historical totals
// survive leave; only the active flag flips.
type member struct {
	commitment       *encval.Value
	active           *encval.Flag
	joinTime         time.Time
	totalContributed *encval.Value
	lastContribution time.Time
}

// Ledger tracks members and routes contributions through the processor
// and the distribution engine.
type Ledger struct {
	params         config.Params
	poolPrincipal  identity.Principal
	joinWindowEnds time.Time // zero in the windowless variant

	members     map[identity.Principal]*member
	memberCount int

	engine    *distribution.Engine
	processor *contribution.Processor
	gov       governance.PowerSetter
	transport asset.Transferer

	hundred *encval.Value
	maxExit *encval.Value
}

// NewLedger creates the ledger for one pool instance. createdAt anchors
// the join window when the windowed variant is configured.
func NewLedger(params config.Params, poolPrincipal identity.Principal, createdAt time.Time,
	engine *distribution.Engine, processor *contribution.Processor,
	gov governance.PowerSetter, transport asset.Transferer) (*Ledger, error) {

	if engine == nil || processor == nil || gov == nil || transport == nil {
		return nil, ErrNilCollaborator
	}
	maxExit, err := encval.New(poolPrincipal, params.MaxExitValue)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		params:        params,
		poolPrincipal: poolPrincipal,
		members:       make(map[identity.Principal]*member),
		engine:        engine,
		processor:     processor,
		gov:           gov,
		transport:     transport,
		hundred:       encval.NewUint64(poolPrincipal, 100),
		maxExit:       maxExit,
	}
	if params.JoinWindow > 0 {
		l.joinWindowEnds = createdAt.Add(params.JoinWindow)
	}
	return l, nil
}

// Join enrolls the caller with a commitment percentage in
// [CommitmentMin, CommitmentMax]. A former member may re-enroll; the
// engine's commitment lock still applies to rapid re-registration.
func (l *Ledger) Join(cap identity.Capability, percentage int64, now time.Time) error {
	caller := cap.Principal()

	if percentage < config.CommitmentMin || percentage > config.CommitmentMax {
		return fmt.Errorf("%w: %d", ErrInvalidCommitment, percentage)
	}
	if m, ok := l.members[caller]; ok && m.active.IsSet() {
		return ErrAlreadyMember
	}
	if !l.joinWindowEnds.IsZero() && now.After(l.joinWindowEnds) {
		return ErrJoinWindowExpired
	}

	commitment := encval.NewUint64(caller, uint64(percentage))
	if err := l.engine.RegisterCommitment(caller, commitment, now); err != nil {
		return err
	}

	m, rejoining := l.members[caller]
	if !rejoining {
		m = &member{totalContributed: encval.Zero(caller)}
		l.members[caller] = m
	}
	m.commitment = commitment
	m.active = encval.NewFlag(caller, true)
	m.joinTime = now
	l.memberCount++

	l.gov.SetVotingPower(caller, percentage)
	return nil
}

// UpdateCommitment replaces the caller's commitment percentage. The
// engine rejects changes inside the commitment lock period, which is
// what keeps an imminent distribution from being gamed.
func (l *Ledger) UpdateCommitment(cap identity.Capability, percentage int64, now time.Time) error {
	caller := cap.Principal()

	if percentage < config.CommitmentMin || percentage > config.CommitmentMax {
		return fmt.Errorf("%w: %d", ErrInvalidCommitment, percentage)
	}
	m, ok := l.members[caller]
	if !ok || !m.active.IsSet() {
		return ErrNotMember
	}

	commitment := encval.NewUint64(caller, uint64(percentage))
	if err := l.engine.RegisterCommitment(caller, commitment, now); err != nil {
		return err
	}

	m.commitment = commitment
	l.gov.SetVotingPower(caller, percentage)
	return nil
}

// ContributeExit reports a windfall. The contribution is
// exitValue * commitment / 100, computed on opaque values with integer
// truncation, moved into the pool over the transport asset, recorded by
// the processor, and distributed by the engine, or none of it happens.
func (l *Ledger) ContributeExit(cap identity.Capability, exitValue *big.Int, now time.Time) error {
	caller := cap.Principal()

	m, ok := l.members[caller]
	if !ok || !m.active.IsSet() {
		return ErrNotMember
	}
	if exitValue == nil || exitValue.Sign() <= 0 {
		return ErrNonPositiveExitValue
	}
	exit, err := encval.New(caller, exitValue)
	if err != nil {
		return err
	}
	if exit.Cmp(l.maxExit) > 0 {
		return ErrExitValueTooLarge
	}
	if !l.joinWindowEnds.IsZero() && !now.After(l.joinWindowEnds) {
		return ErrJoinWindowStillOpen
	}
	if !m.lastContribution.IsZero() && now.Sub(m.lastContribution) < l.params.MinContributionInterval {
		return ErrContributionTooFrequent
	}

	// contribution = exitValue * commitment / 100, truncating.
	weighted, err := exit.Mul(m.commitment)
	if err != nil {
		return err
	}
	contrib, err := weighted.Div(l.hundred)
	if err != nil {
		return err
	}
	if contrib.IsZero() {
		return ErrContributionTooSmall
	}

	newTotal, err := m.totalContributed.Add(contrib)
	if err != nil {
		return err
	}
	if err := l.processor.CheckProcess(caller, contrib, now); err != nil {
		return err
	}
	if err := l.engine.CheckDistribute(caller, contrib, l.memberCount, now); err != nil {
		return err
	}

	// All checks passed; the transfer is the last fallible step before
	// the effects land.
	if err := l.transport.TransferFrom(caller, l.poolPrincipal, contrib); err != nil {
		return err
	}
	if err := l.processor.Process(caller, contrib, now); err != nil {
		return err
	}
	if _, err := l.engine.Distribute(caller, contrib, l.memberCount, now); err != nil {
		return err
	}

	m.totalContributed = newTotal
	m.lastContribution = now
	return nil
}

// Leave deactivates the caller. Members must have contributed and served
// the minimum membership period, measured from their join time, or from
// the join window's end in the windowed variant. Historical totals and
// accrued dividends are retained.
func (l *Ledger) Leave(cap identity.Capability, now time.Time) error {
	caller := cap.Principal()

	m, ok := l.members[caller]
	if !ok || !m.active.IsSet() {
		return ErrNotMember
	}
	if m.totalContributed.IsZero() {
		return ErrMustContributeBeforeLeaving
	}
	anchor := m.joinTime
	if !l.joinWindowEnds.IsZero() {
		anchor = l.joinWindowEnds
	}
	if now.Before(anchor.Add(l.params.MinMembershipPeriod)) {
		return ErrMinimumPeriodNotMet
	}

	if err := l.engine.Deregister(caller); err != nil {
		return err
	}
	m.active = encval.NewFlag(caller, false)
	l.memberCount--
	l.gov.SetVotingPower(caller, 0)
	return nil
}

// ClaimDividends debits amount from the caller's pending balance and
// pays it out over the transport asset. Claims have no timing gate and
// remain available after leave; accrued dividends are not confiscated.
func (l *Ledger) ClaimDividends(cap identity.Capability, amount *big.Int) error {
	caller := cap.Principal()

	if _, ok := l.members[caller]; !ok {
		return ErrNotMember
	}
	if amount == nil {
		return fmt.Errorf("%w: nil amount", distribution.ErrNonPositiveClaim)
	}
	claim, err := encval.New(caller, amount)
	if err != nil {
		return err
	}

	if err := l.engine.CheckClaim(caller, claim); err != nil {
		return err
	}
	if err := l.transport.TransferFrom(l.poolPrincipal, caller, claim); err != nil {
		return err
	}
	return l.engine.ClaimDividends(caller, claim)
}
