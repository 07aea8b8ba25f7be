package membership

import (
	"time"

	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/identity"
)

// MemberRecord is the exported snapshot of one member, used by the
// persistence layer.
type MemberRecord struct {
	Principal            identity.Principal
	Commitment           *encval.Value
	Active               *encval.Flag
	JoinTime             time.Time
	TotalContributed     *encval.Value
	LastContributionTime time.Time
}

// Members returns a snapshot of all member records, including inactive
// ones (historical totals are never dropped).
func (l *Ledger) Members() []MemberRecord {
	out := make([]MemberRecord, 0, len(l.members))
	for p, m := range l.members {
		out = append(out, MemberRecord{
			Principal:            p,
			Commitment:           m.commitment.Clone(),
			Active:               m.active,
			JoinTime:             m.joinTime,
			TotalContributed:     m.totalContributed.Clone(),
			LastContributionTime: m.lastContribution,
		})
	}
	return out
}

// Restore installs a member record loaded from the store. The active
// member count follows from the restored flags.
func (l *Ledger) Restore(r MemberRecord) {
	if existing, ok := l.members[r.Principal]; ok && existing.active.IsSet() {
		l.memberCount--
	}
	l.members[r.Principal] = &member{
		commitment:       r.Commitment.Clone(),
		active:           r.Active,
		joinTime:         r.JoinTime,
		totalContributed: r.TotalContributed.Clone(),
		lastContribution: r.LastContributionTime,
	}
	if r.Active.IsSet() {
		l.memberCount++
	}
}
