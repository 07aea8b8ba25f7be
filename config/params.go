// Package config defines the tunable parameters of a mutual pool and
// their validation.
package config

import (
	"math/big"
	"time"
)

const (
	// CommitmentMin and CommitmentMax bound the commitment percentage a
	// member may pledge, inclusive.
	CommitmentMin = 1
	CommitmentMax = 10

	// Day is the base unit for the pool's timing gates.
	Day = 24 * time.Hour
)

// MaxValueCap is the ceiling applied to exit values, single contributions
// and single claims: 10^27.
var MaxValueCap = new(big.Int).Exp(big.NewInt(10), big.NewInt(27), nil)

// Params holds the timing and bound parameters of one pool instance.
// The zero JoinWindow selects the windowless variant: members may join at
// any time, and the minimum membership period is measured from each
// member's join time. A non-zero JoinWindow closes enrollment that long
// after pool creation, gates contributions until the window has closed,
// and measures the minimum membership period from the window's end.
type Params struct {
	JoinWindow              time.Duration // 0 = no join window
	MinMembershipPeriod     time.Duration // leave gate
	MinContributionInterval time.Duration // per-member contributeExit throttle
	MinProcessInterval      time.Duration // processor-level duplicate throttle
	MinDistributionInterval time.Duration // per-contributor distribution throttle
	CommitmentLockPeriod    time.Duration // minimum gap between commitment changes

	MaxExitValue    *big.Int // cap on a reported windfall
	MaxContribution *big.Int // cap on a single processed contribution
	MaxClaim        *big.Int // cap on a single dividend claim
}

// DefaultParams returns the windowless pool variant with the reference
// timing constants.
func DefaultParams() Params {
	return Params{
		JoinWindow:              0,
		MinMembershipPeriod:     90 * Day,
		MinContributionInterval: 1 * Day,
		MinProcessInterval:      1 * time.Hour,
		MinDistributionInterval: 1 * Day,
		CommitmentLockPeriod:    30 * Day,
		MaxExitValue:            new(big.Int).Set(MaxValueCap),
		MaxContribution:         new(big.Int).Set(MaxValueCap),
		MaxClaim:                new(big.Int).Set(MaxValueCap),
	}
}

// WindowedParams returns the variant with a fixed 30-day enrollment
// window.
func WindowedParams() Params {
	p := DefaultParams()
	p.JoinWindow = 30 * Day
	return p
}
