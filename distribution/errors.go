package distribution

import "errors"

var (
	// ErrCommitmentTooLow indicates a commitment below the minimum.
	ErrCommitmentTooLow = errors.New("distribution: commitment below minimum")

	// ErrCommitmentTooHigh indicates a commitment above the maximum.
	ErrCommitmentTooHigh = errors.New("distribution: commitment above maximum")

	// ErrCommitmentLocked indicates a commitment change inside the lock
	// period.
	ErrCommitmentLocked = errors.New("distribution: commitment is locked")

	// ErrNoMembers indicates a distribution with no active members.
	ErrNoMembers = errors.New("distribution: no members")

	// ErrZeroTotalCommitment indicates the aggregate commitment weight is
	// zero.
	ErrZeroTotalCommitment = errors.New("distribution: zero total commitment")

	// ErrNoCommitment indicates the member has no registered commitment.
	ErrNoCommitment = errors.New("distribution: member has no commitment")

	// ErrDistributionTooFrequent indicates a distribution inside the
	// minimum interval for the contributing member.
	ErrDistributionTooFrequent = errors.New("distribution: distributed too recently")

	// ErrShareExceedsAmount indicates the computed share exceeded the
	// contribution. This is an implementation fault, never a user error.
	ErrShareExceedsAmount = errors.New("distribution: share exceeds amount")

	// ErrNonPositiveClaim indicates a claim of zero value.
	ErrNonPositiveClaim = errors.New("distribution: claim amount must be positive")

	// ErrClaimAmountTooLarge indicates a claim above the cap.
	ErrClaimAmountTooLarge = errors.New("distribution: claim amount exceeds maximum")

	// ErrInsufficientDividends indicates a claim above the pending
	// balance.
	ErrInsufficientDividends = errors.New("distribution: insufficient pending dividends")

	// ErrNoAccount indicates the member has no engine account.
	ErrNoAccount = errors.New("distribution: no account for member")

	// ErrAggregateMismatch indicates the maintained aggregate diverged
	// from the sum of registered commitments.
	ErrAggregateMismatch = errors.New("distribution: aggregate commitment mismatch")
)
