package pool

import (
	"math/big"
	"time"

	"github.com/mutualpool/libmutualpool-go/identity"
)

// GetCommitmentPercentage discloses the caller's own commitment.
func (p *Pool) GetCommitmentPercentage(cap identity.Capability) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.GetCommitmentPercentage(cap)
}

// GetTotalContributed discloses the caller's own contribution total.
func (p *Pool) GetTotalContributed(cap identity.Capability) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.GetTotalContributed(cap)
}

// GetMemberJoinTime returns any member's plaintext join timestamp.
func (p *Pool) GetMemberJoinTime(member identity.Principal) (time.Time, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.GetMemberJoinTime(member)
}

// GetPendingDividends discloses the caller's own unclaimed balance.
func (p *Pool) GetPendingDividends(cap identity.Capability) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.GetPendingDividends(cap)
}

// GetTotalDividendsReceived discloses the caller's own claimed total.
func (p *Pool) GetTotalDividendsReceived(cap identity.Capability) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.GetTotalDividendsReceived(cap)
}

// GetLastContributionAmount discloses the caller's most recent processed
// contribution.
func (p *Pool) GetLastContributionAmount(cap identity.Capability) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.GetLastContributionAmount(cap)
}

// MemberCount returns the plaintext count of active members.
func (p *Pool) MemberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.MemberCount()
}

// JoinWindowEnds returns the end of the enrollment window, or the zero
// time for the windowless variant.
func (p *Pool) JoinWindowEnds() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.JoinWindowEnds()
}

// VerifyAggregate cross-checks the aggregate commitment weight against
// the sum of registered commitments.
func (p *Pool) VerifyAggregate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.VerifyAggregate()
}
