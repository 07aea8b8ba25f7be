package config

import "fmt"

// Validate checks that all parameters are within acceptable ranges and
// returns the first error encountered, or nil if valid.
func (p Params) Validate() error {
	if p.JoinWindow < 0 {
		return fmt.Errorf("%w: join window", ErrNegativeInterval)
	}
	if p.MinMembershipPeriod <= 0 {
		return fmt.Errorf("%w: minimum membership period", ErrNonPositiveInterval)
	}
	if p.MinContributionInterval <= 0 {
		return fmt.Errorf("%w: minimum contribution interval", ErrNonPositiveInterval)
	}
	if p.MinProcessInterval <= 0 {
		return fmt.Errorf("%w: minimum process interval", ErrNonPositiveInterval)
	}
	if p.MinDistributionInterval <= 0 {
		return fmt.Errorf("%w: minimum distribution interval", ErrNonPositiveInterval)
	}
	if p.CommitmentLockPeriod <= 0 {
		return fmt.Errorf("%w: commitment lock period", ErrNonPositiveInterval)
	}
	if p.MaxExitValue == nil {
		return fmt.Errorf("%w: max exit value", ErrMissingCap)
	}
	if p.MaxExitValue.Sign() <= 0 {
		return fmt.Errorf("%w: max exit value", ErrNonPositiveCap)
	}
	if p.MaxContribution == nil {
		return fmt.Errorf("%w: max contribution", ErrMissingCap)
	}
	if p.MaxContribution.Sign() <= 0 {
		return fmt.Errorf("%w: max contribution", ErrNonPositiveCap)
	}
	if p.MaxClaim == nil {
		return fmt.Errorf("%w: max claim", ErrMissingCap)
	}
	if p.MaxClaim.Sign() <= 0 {
		return fmt.Errorf("%w: max claim", ErrNonPositiveCap)
	}
	return nil
}
