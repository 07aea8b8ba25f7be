package pool

import (
	"math/big"
	"testing"
	"time"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutualpool/libmutualpool-go/asset"
	"github.com/mutualpool/libmutualpool-go/config"
	"github.com/mutualpool/libmutualpool-go/distribution"
	"github.com/mutualpool/libmutualpool-go/governance"
	"github.com/mutualpool/libmutualpool-go/identity"
	"github.com/mutualpool/libmutualpool-go/membership"
	"github.com/mutualpool/libmutualpool-go/poolstore"
)

var base = time.Unix(1_700_000_000, 0)

type fixture struct {
	pool     *Pool
	clock    *clockwork.FakeClock
	bank     *asset.Bank
	gov      *governance.Registry
	adminCap identity.Capability
}

func newCapability(t *testing.T) identity.Capability {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	cap, err := identity.NewCapability(priv)
	require.NoError(t, err)
	return cap
}

func newFixture(t *testing.T, params config.Params) *fixture {
	t.Helper()
	clock := clockwork.NewFakeClockAt(base)
	bank := asset.NewBank()
	gov := governance.NewRegistry()
	adminCap := newCapability(t)

	p, err := New(Options{
		Params:     params,
		Admin:      adminCap.Principal(),
		Transport:  bank,
		Governance: gov,
		Clock:      clock,
	})
	require.NoError(t, err)
	return &fixture{pool: p, clock: clock, bank: bank, gov: gov, adminCap: adminCap}
}

func (f *fixture) fundedMember(t *testing.T, funds int64) identity.Capability {
	t.Helper()
	cap := newCapability(t)
	require.NoError(t, f.bank.Mint(cap.Principal(), big.NewInt(funds)))
	return cap
}

func TestNew_Validation(t *testing.T) {
	adminCap := newCapability(t)

	_, err := New(Options{Params: config.DefaultParams(), Transport: asset.NewBank()})
	assert.ErrorIs(t, err, ErrNoAdmin)

	_, err = New(Options{Params: config.DefaultParams(), Admin: adminCap.Principal()})
	assert.ErrorIs(t, err, ErrNoTransport)

	bad := config.DefaultParams()
	bad.MaxExitValue = nil
	_, err = New(Options{Params: bad, Admin: adminCap.Principal(), Transport: asset.NewBank()})
	assert.ErrorIs(t, err, config.ErrMissingCap)
}

func TestLifecycle_SingleMember(t *testing.T) {
	f := newFixture(t, config.DefaultParams())
	alice := f.fundedMember(t, 1000)

	require.NoError(t, f.pool.Join(alice, 5))
	assert.Equal(t, 1, f.pool.MemberCount())
	assert.Equal(t, int64(5), f.gov.VotingPower(alice.Principal()))

	f.clock.Advance(config.Day)
	require.NoError(t, f.pool.ContributeExit(alice, big.NewInt(1000)))

	total, err := f.pool.GetTotalContributed(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(50), total.Int64())

	// Sole member: the whole contribution comes back as pending dividends.
	pending, err := f.pool.GetPendingDividends(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(50), pending.Int64())

	// Over-claim by one unit fails; the exact amount drains the balance.
	assert.ErrorIs(t, f.pool.ClaimDividends(alice, big.NewInt(51)), distribution.ErrInsufficientDividends)
	require.NoError(t, f.pool.ClaimDividends(alice, big.NewInt(50)))

	pending, err = f.pool.GetPendingDividends(alice)
	require.NoError(t, err)
	assert.Zero(t, pending.Sign())

	received, err := f.pool.GetTotalDividendsReceived(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(50), received.Int64())

	// The claim moved real funds back over the rail.
	balance, err := f.bank.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance.Int64())
}

func TestLifecycle_TwoMembers(t *testing.T) {
	f := newFixture(t, config.DefaultParams())
	alice := f.fundedMember(t, 10_000)
	bob := f.fundedMember(t, 10_000)

	require.NoError(t, f.pool.Join(alice, 5))
	require.NoError(t, f.pool.Join(bob, 3))
	assert.Equal(t, 2, f.pool.MemberCount())
	assert.NoError(t, f.pool.VerifyAggregate())

	f.clock.Advance(config.Day)
	require.NoError(t, f.pool.ContributeExit(alice, big.NewInt(2000)))

	// alice contributed 2000*5% = 100; her own weighted share is
	// 100*5/8 = 62, truncating.
	pending, err := f.pool.GetPendingDividends(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(62), pending.Int64())

	// bob accrued nothing yet; his share waits on his own contribution.
	pending, err = f.pool.GetPendingDividends(bob)
	require.NoError(t, err)
	assert.Zero(t, pending.Sign())

	require.NoError(t, f.pool.ContributeExit(bob, big.NewInt(2000)))
	pending, err = f.pool.GetPendingDividends(bob)
	require.NoError(t, err)
	assert.Equal(t, int64(22), pending.Int64()) // 60*3/8
}

func TestLeave_AfterMinimumPeriod(t *testing.T) {
	f := newFixture(t, config.DefaultParams())
	alice := f.fundedMember(t, 1000)

	require.NoError(t, f.pool.Join(alice, 5))
	f.clock.Advance(config.Day)
	require.NoError(t, f.pool.ContributeExit(alice, big.NewInt(1000)))

	assert.ErrorIs(t, f.pool.Leave(alice), membership.ErrMinimumPeriodNotMet)

	f.clock.Advance(89 * config.Day)
	require.NoError(t, f.pool.Leave(alice))
	assert.Equal(t, 0, f.pool.MemberCount())
	assert.NoError(t, f.pool.VerifyAggregate())

	// Dividends survive leave and remain claimable.
	require.NoError(t, f.pool.ClaimDividends(alice, big.NewInt(50)))
}

func TestPause_BlocksMutations(t *testing.T) {
	f := newFixture(t, config.DefaultParams())
	alice := f.fundedMember(t, 1000)
	require.NoError(t, f.pool.Join(alice, 5))

	require.NoError(t, f.pool.Pause(f.adminCap))
	assert.True(t, f.pool.Paused())

	assert.ErrorIs(t, f.pool.Join(f.fundedMember(t, 0), 5), ErrPoolPaused)
	assert.ErrorIs(t, f.pool.ContributeExit(alice, big.NewInt(1000)), ErrPoolPaused)
	assert.ErrorIs(t, f.pool.Leave(alice), ErrPoolPaused)
	assert.ErrorIs(t, f.pool.ClaimDividends(alice, big.NewInt(1)), ErrPoolPaused)

	// Views stay readable while paused.
	got, err := f.pool.GetCommitmentPercentage(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Int64())

	require.NoError(t, f.pool.Unpause(f.adminCap))
	f.clock.Advance(config.Day)
	assert.NoError(t, f.pool.ContributeExit(alice, big.NewInt(1000)))
}

func TestAdmin_Authorization(t *testing.T) {
	f := newFixture(t, config.DefaultParams())
	stranger := newCapability(t)

	assert.ErrorIs(t, f.pool.Pause(stranger), ErrNotAdmin)
	assert.ErrorIs(t, f.pool.Unpause(stranger), ErrNotAdmin)
	assert.ErrorIs(t, f.pool.ChangeAdmin(stranger, stranger.Principal()), ErrNotAdmin)

	// Handing over the role revokes the old capability.
	next := newCapability(t)
	require.NoError(t, f.pool.ChangeAdmin(f.adminCap, next.Principal()))
	assert.ErrorIs(t, f.pool.Pause(f.adminCap), ErrNotAdmin)
	require.NoError(t, f.pool.Pause(next))

	assert.ErrorIs(t, f.pool.ChangeAdmin(next, identity.Principal{}), ErrNoAdmin)
}

func TestWindowedPool_JoinWindow(t *testing.T) {
	f := newFixture(t, config.WindowedParams())
	alice := f.fundedMember(t, 1000)
	bob := f.fundedMember(t, 1000)

	assert.Equal(t, base.Add(30*config.Day), f.pool.JoinWindowEnds())

	require.NoError(t, f.pool.Join(alice, 5))

	f.clock.Advance(30*config.Day + time.Second)
	assert.ErrorIs(t, f.pool.Join(bob, 5), membership.ErrJoinWindowExpired)
	assert.NoError(t, f.pool.ContributeExit(alice, big.NewInt(1000)))
}

func TestSaveLoad_Restart(t *testing.T) {
	f := newFixture(t, config.DefaultParams())
	alice := f.fundedMember(t, 1000)

	require.NoError(t, f.pool.Join(alice, 5))
	f.clock.Advance(config.Day)
	require.NoError(t, f.pool.ContributeExit(alice, big.NewInt(1000)))
	require.NoError(t, f.pool.Pause(f.adminCap))

	st := poolstore.NewMemStore()
	require.NoError(t, f.pool.Save(st))

	restored, err := Load(st, Options{
		Params:     config.DefaultParams(),
		Transport:  f.bank,
		Governance: f.gov,
		Clock:      f.clock,
	})
	require.NoError(t, err)

	assert.Equal(t, f.pool.Principal(), restored.Principal())
	assert.True(t, restored.Paused())
	assert.Equal(t, 1, restored.MemberCount())
	assert.NoError(t, restored.VerifyAggregate())

	require.NoError(t, restored.Unpause(f.adminCap))

	pending, err := restored.GetPendingDividends(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(50), pending.Int64())
	total, err := restored.GetTotalContributed(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(50), total.Int64())

	// The contribution throttle carries across the restart.
	err = restored.ContributeExit(alice, big.NewInt(1000))
	assert.ErrorIs(t, err, membership.ErrContributionTooFrequent)
	f.clock.Advance(config.Day)
	assert.NoError(t, restored.ContributeExit(alice, big.NewInt(1000)))

	// Claims work against the same rail after the restart.
	require.NoError(t, restored.ClaimDividends(alice, big.NewInt(100)))
}

func TestLoad_MissingState(t *testing.T) {
	_, err := Load(poolstore.NewMemStore(), Options{
		Params:    config.DefaultParams(),
		Transport: asset.NewBank(),
	})
	assert.ErrorIs(t, err, poolstore.ErrStateNotFound)
}
