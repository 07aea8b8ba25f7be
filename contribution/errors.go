package contribution

import "errors"

var (
	// ErrContributionTooLarge indicates a contribution above the cap.
	ErrContributionTooLarge = errors.New("contribution: amount exceeds maximum")

	// ErrProcessTooFrequent indicates a contribution inside the minimum
	// process interval.
	ErrProcessTooFrequent = errors.New("contribution: processed too recently")

	// ErrNoRecord indicates the contributor has no processing history.
	ErrNoRecord = errors.New("contribution: no record for contributor")
)
