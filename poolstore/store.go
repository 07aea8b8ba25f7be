// Package poolstore persists pool state so committed member records
// survive process restart.
//
// Encrypted fields are written sealed (see encval.Sealer); plaintext
// fields (timestamps, counters, principals) are written as-is. Both the
// bbolt-backed store and the in-memory store round-trip the full state.
package poolstore

import (
	"time"

	"github.com/mutualpool/libmutualpool-go/contribution"
	"github.com/mutualpool/libmutualpool-go/distribution"
	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/identity"
	"github.com/mutualpool/libmutualpool-go/membership"
)

// PoolState is the pool-aggregate portion of the durable state.
type PoolState struct {
	Principal        identity.Principal
	Admin            identity.Principal
	Paused           bool
	CreatedAt        time.Time
	TotalCommitment  *encval.Value
	TotalDistributed *encval.Value
}

// Store persists one pool instance. Put operations replace any existing
// row for the same key.
type Store interface {
	// PutPoolState stores the pool-aggregate state.
	PutPoolState(state *PoolState) error

	// GetPoolState retrieves the pool-aggregate state.
	GetPoolState() (*PoolState, error)

	// PutMember stores a membership record keyed by principal.
	PutMember(rec membership.MemberRecord) error

	// ListMembers returns all membership records.
	ListMembers() ([]membership.MemberRecord, error)

	// PutAccount stores a distribution engine account keyed by member.
	PutAccount(acct distribution.Account) error

	// ListAccounts returns all engine accounts.
	ListAccounts() ([]distribution.Account, error)

	// PutContribution stores a processor record keyed by contributor.
	PutContribution(rec contribution.Record) error

	// ListContributions returns all processor records.
	ListContributions() ([]contribution.Record, error)
}

// MemStore is an in-memory implementation of Store for testing.
type MemStore struct {
	state         *PoolState
	members       map[identity.Principal]membership.MemberRecord
	accounts      map[identity.Principal]distribution.Account
	contributions map[identity.Principal]contribution.Record
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		members:       make(map[identity.Principal]membership.MemberRecord),
		accounts:      make(map[identity.Principal]distribution.Account),
		contributions: make(map[identity.Principal]contribution.Record),
	}
}

// PutPoolState stores the pool-aggregate state.
func (s *MemStore) PutPoolState(state *PoolState) error {
	if state == nil {
		return ErrNilRecord
	}
	cp := *state
	cp.TotalCommitment = state.TotalCommitment.Clone()
	cp.TotalDistributed = state.TotalDistributed.Clone()
	s.state = &cp
	return nil
}

// GetPoolState retrieves the pool-aggregate state.
func (s *MemStore) GetPoolState() (*PoolState, error) {
	if s.state == nil {
		return nil, ErrStateNotFound
	}
	cp := *s.state
	cp.TotalCommitment = s.state.TotalCommitment.Clone()
	cp.TotalDistributed = s.state.TotalDistributed.Clone()
	return &cp, nil
}

// PutMember stores a membership record.
func (s *MemStore) PutMember(rec membership.MemberRecord) error {
	s.members[rec.Principal] = rec
	return nil
}

// ListMembers returns all membership records.
func (s *MemStore) ListMembers() ([]membership.MemberRecord, error) {
	out := make([]membership.MemberRecord, 0, len(s.members))
	for _, rec := range s.members {
		out = append(out, rec)
	}
	return out, nil
}

// PutAccount stores an engine account.
func (s *MemStore) PutAccount(acct distribution.Account) error {
	s.accounts[acct.Member] = acct
	return nil
}

// ListAccounts returns all engine accounts.
func (s *MemStore) ListAccounts() ([]distribution.Account, error) {
	out := make([]distribution.Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		out = append(out, acct)
	}
	return out, nil
}

// PutContribution stores a processor record.
func (s *MemStore) PutContribution(rec contribution.Record) error {
	s.contributions[rec.Contributor] = rec
	return nil
}

// ListContributions returns all processor records.
func (s *MemStore) ListContributions() ([]contribution.Record, error) {
	out := make([]contribution.Record, 0, len(s.contributions))
	for _, rec := range s.contributions {
		out = append(out, rec)
	}
	return out, nil
}
