package distribution

import (
	"time"

	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/identity"
)

// Account is the exported snapshot of one engine account, used by the
// persistence layer.
type Account struct {
	Member               identity.Principal
	Commitment           *encval.Value
	Pending              *encval.Value
	Received             *encval.Value
	LastDistributionTime time.Time
	LastCommitmentUpdate time.Time
}

// Accounts returns a snapshot of all engine accounts.
func (e *Engine) Accounts() []Account {
	out := make([]Account, 0, len(e.accounts))
	for member, acct := range e.accounts {
		out = append(out, Account{
			Member:               member,
			Commitment:           acct.commitment.Clone(),
			Pending:              acct.pending.Clone(),
			Received:             acct.received.Clone(),
			LastDistributionTime: acct.lastDistribution,
			LastCommitmentUpdate: acct.lastCommitmentUpdate,
		})
	}
	return out
}

// RestoreAccount installs an account loaded from the store.
func (e *Engine) RestoreAccount(a Account) {
	e.accounts[a.Member] = &account{
		commitment:           a.Commitment.Clone(),
		pending:              a.Pending.Clone(),
		received:             a.Received.Clone(),
		lastDistribution:     a.LastDistributionTime,
		lastCommitmentUpdate: a.LastCommitmentUpdate,
	}
}

// RestoreAggregates installs the aggregate values loaded from the store.
func (e *Engine) RestoreAggregates(totalCommitment, totalDistributed *encval.Value) {
	e.totalCommitment = totalCommitment.Rebind(e.pool)
	e.totalDistributed = totalDistributed.Rebind(e.pool)
}
