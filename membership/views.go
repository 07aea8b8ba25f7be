package membership

import (
	"math/big"
	"time"

	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/identity"
)

// activeMember returns the caller's record if they are an active member.
func (l *Ledger) activeMember(cap identity.Capability) (*member, error) {
	m, ok := l.members[cap.Principal()]
	if !ok || !m.active.IsSet() {
		return nil, ErrNotMember
	}
	return m, nil
}

// GetCommitmentPercentage discloses the caller's own commitment.
func (l *Ledger) GetCommitmentPercentage(cap identity.Capability) (*big.Int, error) {
	m, err := l.activeMember(cap)
	if err != nil {
		return nil, err
	}
	return m.commitment.Reveal(cap)
}

// GetTotalContributed discloses the caller's own cumulative contribution
// total.
func (l *Ledger) GetTotalContributed(cap identity.Capability) (*big.Int, error) {
	m, err := l.activeMember(cap)
	if err != nil {
		return nil, err
	}
	return m.totalContributed.Reveal(cap)
}

// GetMemberJoinTime returns a member's join timestamp. Timing is not
// sensitive: any caller may read it, for any member with a record,
// active or not.
func (l *Ledger) GetMemberJoinTime(p identity.Principal) (time.Time, error) {
	m, ok := l.members[p]
	if !ok {
		return time.Time{}, ErrNotMember
	}
	return m.joinTime, nil
}

// GetPendingDividends discloses the caller's own unclaimed dividend
// balance. Available after leave.
func (l *Ledger) GetPendingDividends(cap identity.Capability) (*big.Int, error) {
	if _, ok := l.members[cap.Principal()]; !ok {
		return nil, ErrNotMember
	}
	pending, err := l.engine.PendingDividends(cap)
	if err != nil {
		return nil, err
	}
	return pending.Reveal(cap)
}

// GetTotalDividendsReceived discloses the caller's own cumulative claimed
// total. Available after leave.
func (l *Ledger) GetTotalDividendsReceived(cap identity.Capability) (*big.Int, error) {
	if _, ok := l.members[cap.Principal()]; !ok {
		return nil, ErrNotMember
	}
	received, err := l.engine.TotalDividendsReceived(cap)
	if err != nil {
		return nil, err
	}
	return received.Reveal(cap)
}

// GetLastContributionAmount discloses the caller's most recent processed
// contribution.
func (l *Ledger) GetLastContributionAmount(cap identity.Capability) (*big.Int, error) {
	if _, err := l.activeMember(cap); err != nil {
		return nil, err
	}
	amount, err := l.processor.LastContributionAmount(cap)
	if err != nil {
		return nil, err
	}
	return amount.Reveal(cap)
}

// MemberCount returns the plaintext count of active members.
func (l *Ledger) MemberCount() int {
	return l.memberCount
}

// JoinWindowEnds returns the end of the enrollment window, or the zero
// time for the windowless variant.
func (l *Ledger) JoinWindowEnds() time.Time {
	return l.joinWindowEnds
}

// TotalCommitment returns the opaque aggregate commitment weight, for
// audit tooling that verifies invariants without disclosure.
func (l *Ledger) TotalCommitment() *encval.Value {
	return l.engine.TotalCommitment()
}

// VerifyAggregate cross-checks the engine's aggregate commitment weight
// against the sum of registered commitments.
func (l *Ledger) VerifyAggregate() error {
	return l.engine.VerifyAggregate()
}
