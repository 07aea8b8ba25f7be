package membership

import "errors"

var (
	// ErrNilCollaborator indicates a nil engine, processor, governance or
	// transport reference.
	ErrNilCollaborator = errors.New("membership: nil collaborator")

	// ErrAlreadyMember indicates the caller is already an active member.
	ErrAlreadyMember = errors.New("membership: already a member")

	// ErrInvalidCommitment indicates a commitment percentage outside
	// [1, 10].
	ErrInvalidCommitment = errors.New("membership: invalid commitment percentage")

	// ErrJoinWindowExpired indicates a join after the enrollment window
	// closed.
	ErrJoinWindowExpired = errors.New("membership: join window expired")

	// ErrJoinWindowStillOpen indicates a contribution before the
	// enrollment window closed.
	ErrJoinWindowStillOpen = errors.New("membership: join window still open")

	// ErrNotMember indicates the caller is not an active member.
	ErrNotMember = errors.New("membership: not a member")

	// ErrNonPositiveExitValue indicates a zero or negative exit value.
	ErrNonPositiveExitValue = errors.New("membership: exit value must be positive")

	// ErrExitValueTooLarge indicates an exit value above the cap.
	ErrExitValueTooLarge = errors.New("membership: exit value exceeds maximum")

	// ErrContributionTooFrequent indicates a contribution inside the
	// minimum contribution interval.
	ErrContributionTooFrequent = errors.New("membership: contributed too recently")

	// ErrContributionTooSmall indicates the computed contribution
	// truncated to zero.
	ErrContributionTooSmall = errors.New("membership: contribution rounds to zero")

	// ErrMustContributeBeforeLeaving indicates a leave with no recorded
	// contribution.
	ErrMustContributeBeforeLeaving = errors.New("membership: must contribute before leaving")

	// ErrMinimumPeriodNotMet indicates a leave before the minimum
	// membership period elapsed.
	ErrMinimumPeriodNotMet = errors.New("membership: minimum membership period not met")
)
