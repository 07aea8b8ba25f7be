// Package distribution implements the engine that allocates proportional
// shares of pool contributions and settles dividend claims.
//
// The engine exclusively owns the aggregate commitment weight and all
// pending/claimed dividend balances. The membership ledger is its only
// caller; members never reach it directly. All mutating entry points are
// serialized by the pool's single-writer lock, and every one validates
// fully and computes its new balances before installing anything, so a
// failed call leaves no trace.
package distribution

import (
	"time"

	"github.com/mutualpool/libmutualpool-go/config"
	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/identity"
)

// Precision is the intermediate scaling factor applied between the two
// integer divisions of the share formula. It only reduces truncation
// error; the final division still truncates.
const Precision = 1_000_000_000_000_000_000 // 1e18

// account tracks one member inside the engine.
type account struct {
	commitment           *encval.Value // zero once deregistered
	pending              *encval.Value
	received             *encval.Value
	lastDistribution     time.Time
	lastCommitmentUpdate time.Time
}

// Engine computes and settles proportional dividend shares.
type Engine struct {
	pool identity.Principal // owner of the aggregate values

	minCommitment    *encval.Value
	maxCommitment    *encval.Value
	maxClaim         *encval.Value
	precision        *encval.Value
	minDistInterval  time.Duration
	commitmentLock   time.Duration
	totalCommitment  *encval.Value
	totalDistributed *encval.Value
	accounts         map[identity.Principal]*account
}

// NewEngine creates an engine for one pool instance. The pool principal
// owns the aggregate values.
func NewEngine(params config.Params, pool identity.Principal) (*Engine, error) {
	maxClaim, err := encval.New(pool, params.MaxClaim)
	if err != nil {
		return nil, err
	}
	return &Engine{
		pool:             pool,
		minCommitment:    encval.NewUint64(pool, config.CommitmentMin),
		maxCommitment:    encval.NewUint64(pool, config.CommitmentMax),
		maxClaim:         maxClaim,
		precision:        encval.NewUint64(pool, Precision),
		minDistInterval:  params.MinDistributionInterval,
		commitmentLock:   params.CommitmentLockPeriod,
		totalCommitment:  encval.Zero(pool),
		totalDistributed: encval.Zero(pool),
		accounts:         make(map[identity.Principal]*account),
	}, nil
}

// RegisterCommitment records or replaces a member's commitment weight.
// For an existing member the aggregate moves by the difference between
// the new and old commitment, never by the sum, and the change is
// rejected inside the commitment lock period.
func (e *Engine) RegisterCommitment(member identity.Principal, commitment *encval.Value, now time.Time) error {
	if commitment.Cmp(e.minCommitment) < 0 {
		return ErrCommitmentTooLow
	}
	if commitment.Cmp(e.maxCommitment) > 0 {
		return ErrCommitmentTooHigh
	}

	acct, exists := e.accounts[member]
	if exists && !acct.lastCommitmentUpdate.IsZero() &&
		now.Sub(acct.lastCommitmentUpdate) < e.commitmentLock {
		return ErrCommitmentLocked
	}

	var newTotal *encval.Value
	var err error
	if exists {
		// Replace: total += new - old.
		withoutOld, subErr := e.totalCommitment.Sub(acct.commitment)
		if subErr != nil {
			return subErr
		}
		newTotal, err = withoutOld.Add(commitment)
	} else {
		newTotal, err = e.totalCommitment.Add(commitment)
	}
	if err != nil {
		return err
	}

	if !exists {
		acct = &account{
			pending:  encval.Zero(member),
			received: encval.Zero(member),
		}
		e.accounts[member] = acct
	}
	acct.commitment = commitment.Rebind(member)
	acct.lastCommitmentUpdate = now
	e.totalCommitment = newTotal
	return nil
}

// Deregister removes a member's weight from the aggregate when they
// leave. The account itself is retained so accrued dividends stay
// claimable and historical totals survive.
func (e *Engine) Deregister(member identity.Principal) error {
	acct, ok := e.accounts[member]
	if !ok {
		return ErrNoAccount
	}
	newTotal, err := e.totalCommitment.Sub(acct.commitment)
	if err != nil {
		return err
	}
	e.totalCommitment = newTotal
	acct.commitment = encval.Zero(member)
	return nil
}

// computeShare evaluates
//
//	share = amount * commitment * Precision / totalCommitment / Precision
//
// entirely on opaque values. Truncation happens in the final division.
func (e *Engine) computeShare(acct *account, amount *encval.Value) (*encval.Value, error) {
	weighted, err := amount.Mul(acct.commitment)
	if err != nil {
		return nil, err
	}
	scaled, err := weighted.Mul(e.precision)
	if err != nil {
		return nil, err
	}
	overTotal, err := scaled.Div(e.totalCommitment)
	if err != nil {
		return nil, err
	}
	return overTotal.Div(e.precision)
}

// CheckDistribute verifies every precondition of Distribute, including
// the share computation and its share <= amount postcondition, without
// mutating anything. A nil return guarantees the matching Distribute
// call succeeds.
func (e *Engine) CheckDistribute(member identity.Principal, amount *encval.Value, memberCount int, now time.Time) error {
	_, err := e.checkDistribute(member, amount, memberCount, now)
	return err
}

func (e *Engine) checkDistribute(member identity.Principal, amount *encval.Value, memberCount int, now time.Time) (*encval.Value, error) {
	if memberCount <= 0 {
		return nil, ErrNoMembers
	}
	if e.totalCommitment.IsZero() {
		return nil, ErrZeroTotalCommitment
	}
	acct, ok := e.accounts[member]
	if !ok || acct.commitment.IsZero() {
		return nil, ErrNoCommitment
	}
	if !acct.lastDistribution.IsZero() && now.Sub(acct.lastDistribution) < e.minDistInterval {
		return nil, ErrDistributionTooFrequent
	}
	share, err := e.computeShare(acct, amount)
	if err != nil {
		return nil, err
	}
	if share.Cmp(amount) > 0 {
		// The scaling round-trip can only lose value, never create it.
		// Exceeding the input is an implementation fault, not user error.
		return nil, ErrShareExceedsAmount
	}
	return share, nil
}

// Distribute credits the contributing member's proportional share of
// their own contribution, weighted by their commitment against the
// aggregate pool weight. The redistribution effect across the pool
// emerges in aggregate as each member contributes in turn. The
// distribution throttle is keyed by the contributing member.
func (e *Engine) Distribute(member identity.Principal, amount *encval.Value, memberCount int, now time.Time) (*encval.Value, error) {
	share, err := e.checkDistribute(member, amount, memberCount, now)
	if err != nil {
		return nil, err
	}
	acct := e.accounts[member]

	newPending, err := acct.pending.Add(share.Rebind(member))
	if err != nil {
		return nil, err
	}
	newDistributed, err := e.totalDistributed.Add(amount.Rebind(e.pool))
	if err != nil {
		return nil, err
	}

	acct.pending = newPending
	acct.lastDistribution = now
	e.totalDistributed = newDistributed
	return share.Rebind(member), nil
}

// CheckClaim verifies the preconditions of ClaimDividends without
// mutating anything. The cap check runs before the balance check so an
// absurd request fails fast.
func (e *Engine) CheckClaim(member identity.Principal, amount *encval.Value) error {
	if amount.Sign() <= 0 {
		return ErrNonPositiveClaim
	}
	if amount.Cmp(e.maxClaim) > 0 {
		return ErrClaimAmountTooLarge
	}
	acct, ok := e.accounts[member]
	if !ok || amount.Cmp(acct.pending) > 0 {
		return ErrInsufficientDividends
	}
	return nil
}

// ClaimDividends debits a member's pending balance and credits their
// received total. totalDividendsReceived only ever grows.
func (e *Engine) ClaimDividends(member identity.Principal, amount *encval.Value) error {
	if err := e.CheckClaim(member, amount); err != nil {
		return err
	}
	acct := e.accounts[member]

	newPending, err := acct.pending.Sub(amount.Rebind(member))
	if err != nil {
		return err
	}
	newReceived, err := acct.received.Add(amount.Rebind(member))
	if err != nil {
		return err
	}

	acct.pending = newPending
	acct.received = newReceived
	return nil
}

// PendingDividends discloses a member's unclaimed balance to the member
// themself.
func (e *Engine) PendingDividends(cap identity.Capability) (*encval.Value, error) {
	acct, ok := e.accounts[cap.Principal()]
	if !ok {
		return nil, ErrNoAccount
	}
	return acct.pending.Clone(), nil
}

// TotalDividendsReceived discloses a member's cumulative claimed total to
// the member themself.
func (e *Engine) TotalDividendsReceived(cap identity.Capability) (*encval.Value, error) {
	acct, ok := e.accounts[cap.Principal()]
	if !ok {
		return nil, ErrNoAccount
	}
	return acct.received.Clone(), nil
}

// TotalCommitment returns the opaque aggregate commitment weight.
func (e *Engine) TotalCommitment() *encval.Value {
	return e.totalCommitment.Clone()
}

// TotalDistributed returns the opaque running distribution total.
func (e *Engine) TotalDistributed() *encval.Value {
	return e.totalDistributed.Clone()
}

// LastDistributionTime returns the member's last distribution timestamp.
func (e *Engine) LastDistributionTime(member identity.Principal) (time.Time, error) {
	acct, ok := e.accounts[member]
	if !ok {
		return time.Time{}, ErrNoAccount
	}
	return acct.lastDistribution, nil
}

// VerifyAggregate recomputes the sum of registered commitments and
// compares it against the maintained aggregate. Any divergence means a
// mutation path failed to keep the two in step and would corrupt every
// subsequent distribution.
func (e *Engine) VerifyAggregate() error {
	sum := encval.Zero(e.pool)
	for _, acct := range e.accounts {
		var err error
		sum, err = sum.Add(acct.commitment)
		if err != nil {
			return err
		}
	}
	if sum.Cmp(e.totalCommitment) != 0 {
		return ErrAggregateMismatch
	}
	return nil
}
