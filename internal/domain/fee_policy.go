package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DayRange is an inclusive range of day offsets.
type DayRange struct {
	MinDays int
	MaxDays int
}

// Contains reports whether days falls within the range.
func (r DayRange) Contains(days int) bool {
	return days >= r.MinDays && days <= r.MaxDays
}

// FeePolicy computes the fee for one tier of day offsets.
// The set of implementations is closed; see FeePolicies.
type FeePolicy interface {
	// Name is a stable identifier for the tier.
	Name() string
	// Description is a human readable fee formula.
	Description() string
	Range() DayRange
	IsApplicable(scheduleDate, transferDate time.Time) bool
	CalculateFee(amount Money, scheduleDate, transferDate time.Time) (Money, error)

	sealed()
}

// Tier names.
const (
	PolicySameDay     = "same_day"
	PolicyShort       = "1_to_10_days"
	PolicyMediumShort = "11_to_20_days"
	PolicyMedium      = "21_to_30_days"
	PolicyMediumLong  = "31_to_40_days"
	PolicyLong        = "41_to_50_days"
)

var (
	sameDayPercentage = decimal.RequireFromString("2.5")
	sameDayBaseFee    = MustMoney("3.00")
	shortFlatFee      = MustMoney("12.00")
)

// SameDayFeePolicy applies to transfers executed on the scheduling date:
// 2.5% of the amount plus 3.00.
type SameDayFeePolicy struct{}

func (SameDayFeePolicy) Name() string        { return PolicySameDay }
func (SameDayFeePolicy) Description() string { return "amount x 2.5% + 3.00" }
func (SameDayFeePolicy) Range() DayRange     { return DayRange{MinDays: 0, MaxDays: 0} }
func (SameDayFeePolicy) sealed()             {}

func (p SameDayFeePolicy) IsApplicable(scheduleDate, transferDate time.Time) bool {
	return isApplicable(p, scheduleDate, transferDate)
}

func (p SameDayFeePolicy) CalculateFee(amount Money, scheduleDate, transferDate time.Time) (Money, error) {
	if !p.IsApplicable(scheduleDate, transferDate) {
		return Money{}, notApplicable(p, scheduleDate, transferDate)
	}

	percentageFee, err := amount.Percentage(sameDayPercentage)
	if err != nil {
		return Money{}, err
	}

	return percentageFee.Add(sameDayBaseFee), nil
}

// ShortFeePolicy charges a flat 12.00 for 1 to 10 days.
type ShortFeePolicy struct{}

func (ShortFeePolicy) Name() string        { return PolicyShort }
func (ShortFeePolicy) Description() string { return "flat 12.00" }
func (ShortFeePolicy) Range() DayRange     { return DayRange{MinDays: 1, MaxDays: 10} }
func (ShortFeePolicy) sealed()             {}

func (p ShortFeePolicy) IsApplicable(scheduleDate, transferDate time.Time) bool {
	return isApplicable(p, scheduleDate, transferDate)
}

func (p ShortFeePolicy) CalculateFee(_ Money, scheduleDate, transferDate time.Time) (Money, error) {
	if !p.IsApplicable(scheduleDate, transferDate) {
		return Money{}, notApplicable(p, scheduleDate, transferDate)
	}

	return shortFlatFee, nil
}

// PercentageFeePolicy charges a percentage of the amount over a day range.
// Only the tiers listed in FeePolicies exist.
type PercentageFeePolicy struct {
	name       string
	days       DayRange
	percentage decimal.Decimal
}

var (
	mediumShortFeePolicy = PercentageFeePolicy{name: PolicyMediumShort, days: DayRange{MinDays: 11, MaxDays: 20}, percentage: decimal.RequireFromString("8.2")}
	mediumFeePolicy      = PercentageFeePolicy{name: PolicyMedium, days: DayRange{MinDays: 21, MaxDays: 30}, percentage: decimal.RequireFromString("6.9")}
	mediumLongFeePolicy  = PercentageFeePolicy{name: PolicyMediumLong, days: DayRange{MinDays: 31, MaxDays: 40}, percentage: decimal.RequireFromString("4.7")}
	longFeePolicy        = PercentageFeePolicy{name: PolicyLong, days: DayRange{MinDays: 41, MaxDays: 50}, percentage: decimal.RequireFromString("1.7")}
)

func (p PercentageFeePolicy) Name() string    { return p.name }
func (p PercentageFeePolicy) Range() DayRange { return p.days }
func (PercentageFeePolicy) sealed()           {}

func (p PercentageFeePolicy) Description() string {
	return fmt.Sprintf("amount x %s%%", p.percentage)
}

// Percentage returns the rate applied by the tier, in percent.
func (p PercentageFeePolicy) Percentage() decimal.Decimal {
	return p.percentage
}

func (p PercentageFeePolicy) IsApplicable(scheduleDate, transferDate time.Time) bool {
	return isApplicable(p, scheduleDate, transferDate)
}

func (p PercentageFeePolicy) CalculateFee(amount Money, scheduleDate, transferDate time.Time) (Money, error) {
	if !p.IsApplicable(scheduleDate, transferDate) {
		return Money{}, notApplicable(p, scheduleDate, transferDate)
	}

	return amount.Percentage(p.percentage)
}

func isApplicable(p FeePolicy, scheduleDate, transferDate time.Time) bool {
	return p.Range().Contains(DaysBetween(scheduleDate, transferDate))
}

func notApplicable(p FeePolicy, scheduleDate, transferDate time.Time) error {
	return fmt.Errorf("%w: %s does not cover %d days (%s to %s)",
		ErrPolicyNotApplicable, p.Name(), DaysBetween(scheduleDate, transferDate),
		scheduleDate.Format(DateLayout), transferDate.Format(DateLayout))
}
