package domain

import (
	"fmt"
	"time"
)

// MaxScheduleDays is the largest day offset covered by a fee tier.
const MaxScheduleDays = 50

// feePolicies is ordered by ascending day range. The ranges are contiguous and
// do not overlap, covering [0, MaxScheduleDays].
var feePolicies = [...]FeePolicy{
	SameDayFeePolicy{},
	ShortFeePolicy{},
	mediumShortFeePolicy,
	mediumFeePolicy,
	mediumLongFeePolicy,
	longFeePolicy,
}

// FeePolicies returns the fee tiers in ascending range order.
func FeePolicies() []FeePolicy {
	policies := make([]FeePolicy, len(feePolicies))
	copy(policies, feePolicies[:])

	return policies
}

// ResolveFeePolicy returns the tier covering the offset between the dates.
func ResolveFeePolicy(scheduleDate, transferDate time.Time) (FeePolicy, error) {
	for _, policy := range feePolicies {
		if policy.IsApplicable(scheduleDate, transferDate) {
			return policy, nil
		}
	}

	return nil, fmt.Errorf("%w: %d days from %s to %s",
		ErrNoApplicableFeePolicy, DaysBetween(scheduleDate, transferDate),
		scheduleDate.Format(DateLayout), transferDate.Format(DateLayout))
}

// CalculateFee resolves the tier for the dates and applies it to amount.
func CalculateFee(amount Money, scheduleDate, transferDate time.Time) (FeePolicy, Money, error) {
	policy, err := ResolveFeePolicy(scheduleDate, transferDate)
	if err != nil {
		return nil, Money{}, err
	}

	fee, err := policy.CalculateFee(amount, scheduleDate, transferDate)
	if err != nil {
		return nil, Money{}, err
	}

	return policy, fee, nil
}
