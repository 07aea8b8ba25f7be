package governance

import (
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutualpool/libmutualpool-go/identity"
)

func newPrincipal(t *testing.T) identity.Principal {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	p, err := identity.PrincipalFromPublicKey(priv.PubKey())
	require.NoError(t, err)
	return p
}

func TestRegistry_SetAndClear(t *testing.T) {
	r := NewRegistry()
	member := newPrincipal(t)

	assert.Zero(t, r.VotingPower(member))

	r.SetVotingPower(member, 5)
	assert.Equal(t, int64(5), r.VotingPower(member))

	r.SetVotingPower(member, 8)
	assert.Equal(t, int64(8), r.VotingPower(member))

	r.SetVotingPower(member, 0)
	assert.Zero(t, r.VotingPower(member))
}

func TestNopSetter(t *testing.T) {
	// Nothing to observe; just exercise the no-op path.
	NopSetter{}.SetVotingPower(newPrincipal(t), 5)
}
