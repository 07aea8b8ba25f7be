package poolstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutualpool/libmutualpool-go/distribution"
	"github.com/mutualpool/libmutualpool-go/encval"
	"github.com/mutualpool/libmutualpool-go/membership"
)

func TestMemStore_PoolState(t *testing.T) {
	st := NewMemStore()
	pool := newPrincipal(t)

	_, err := st.GetPoolState()
	assert.ErrorIs(t, err, ErrStateNotFound)
	assert.ErrorIs(t, st.PutPoolState(nil), ErrNilRecord)

	in := &PoolState{
		Principal:        pool,
		Admin:            newPrincipal(t),
		CreatedAt:        base,
		TotalCommitment:  encval.NewUint64(pool, 9),
		TotalDistributed: encval.NewUint64(pool, 300),
	}
	require.NoError(t, st.PutPoolState(in))

	out, err := st.GetPoolState()
	require.NoError(t, err)
	assert.Equal(t, in.Principal, out.Principal)
	assert.Zero(t, out.TotalCommitment.Cmp(in.TotalCommitment))

	// The store holds its own copies; callers cannot alias stored state.
	out.TotalCommitment = encval.Zero(pool)
	again, err := st.GetPoolState()
	require.NoError(t, err)
	assert.Zero(t, again.TotalCommitment.Cmp(encval.NewUint64(pool, 9)))
}

func TestMemStore_Rows(t *testing.T) {
	st := NewMemStore()
	member := newPrincipal(t)

	require.NoError(t, st.PutMember(membership.MemberRecord{
		Principal:        member,
		Commitment:       encval.NewUint64(member, 5),
		Active:           encval.NewFlag(member, true),
		JoinTime:         base,
		TotalContributed: encval.Zero(member),
	}))
	require.NoError(t, st.PutAccount(distribution.Account{
		Member:               member,
		Commitment:           encval.NewUint64(member, 5),
		Pending:              encval.Zero(member),
		Received:             encval.Zero(member),
		LastCommitmentUpdate: base,
	}))

	members, err := st.ListMembers()
	require.NoError(t, err)
	assert.Len(t, members, 1)

	accounts, err := st.ListAccounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	contributions, err := st.ListContributions()
	require.NoError(t, err)
	assert.Empty(t, contributions)

	// Re-put replaces by key.
	require.NoError(t, st.PutMember(membership.MemberRecord{
		Principal:        member,
		Commitment:       encval.NewUint64(member, 8),
		Active:           encval.NewFlag(member, true),
		JoinTime:         base.Add(time.Hour),
		TotalContributed: encval.Zero(member),
	}))
	members, err = st.ListMembers()
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Zero(t, members[0].Commitment.Cmp(encval.NewUint64(member, 8)))
}
