package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/infrastructure/metrics"
)

// FeeUseCase answers fee questions without persisting anything.
type FeeUseCase struct {
	clock   Clock
	metrics *metrics.Metrics
}

// NewFeeUseCase creates a new FeeUseCase.
func NewFeeUseCase(clock Clock, metrics *metrics.Metrics) *FeeUseCase {
	return &FeeUseCase{
		clock:   clock,
		metrics: metrics,
	}
}

// QuoteFeeInput represents input for a fee quote.
type QuoteFeeInput struct {
	Amount       decimal.NullDecimal
	TransferDate *time.Time
}

// FeeQuote is the fee a transfer would be charged if scheduled today.
type FeeQuote struct {
	Policy       domain.FeePolicy
	Amount       domain.Money
	Fee          domain.Money
	Total        domain.Money
	ScheduleDate time.Time
	TransferDate time.Time
	Days         int
}

// QuoteFee resolves the fee tier for a transfer executed on TransferDate.
func (uc *FeeUseCase) QuoteFee(_ context.Context, input QuoteFeeInput) (*FeeQuote, error) {
	if !input.Amount.Valid {
		return nil, fmt.Errorf("%w: amount is required", domain.ErrInvalidTransferData)
	}

	if input.TransferDate == nil {
		return nil, fmt.Errorf("%w: transfer date is required", domain.ErrInvalidTransferData)
	}

	amount, err := domain.NewMoney(input.Amount.Decimal)
	if err != nil {
		return nil, err
	}

	scheduleDate := domain.DateOf(uc.clock.Now())
	transferDate := domain.DateOf(*input.TransferDate)

	if transferDate.Before(scheduleDate) {
		return nil, domain.ErrInvalidTransferDate
	}

	policy, fee, err := domain.CalculateFee(amount, scheduleDate, transferDate)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FeeQuotes.WithLabelValues(policy.Name()).Inc()
	}

	return &FeeQuote{
		Policy:       policy,
		Amount:       amount,
		Fee:          fee,
		Total:        amount.Add(fee),
		ScheduleDate: scheduleDate,
		TransferDate: transferDate,
		Days:         domain.DaysBetween(scheduleDate, transferDate),
	}, nil
}

// ListFeePolicies returns the fee tiers in ascending range order.
func (uc *FeeUseCase) ListFeePolicies(_ context.Context) []domain.FeePolicy {
	return domain.FeePolicies()
}
