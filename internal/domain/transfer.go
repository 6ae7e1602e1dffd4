package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transfer is a scheduled money movement between two accounts.
// It is immutable once constructed.
type Transfer struct {
	id            uuid.UUID
	sourceAccount AccountNumber
	targetAccount AccountNumber
	amount        Money
	fee           Money
	feePolicy     string
	scheduleDate  time.Time
	transferDate  time.Time
}

// TransferParams holds the attributes of a transfer whose fee is already known.
type TransferParams struct {
	ID            uuid.UUID
	SourceAccount AccountNumber
	TargetAccount AccountNumber
	Amount        Money
	Fee           Money
	FeePolicy     string
	ScheduleDate  time.Time
	TransferDate  time.Time
}

// NewTransfer validates params and builds a Transfer. A nil ID is replaced by
// a fresh one. Checks run in a fixed order and the first failure is returned.
func NewTransfer(params TransferParams) (*Transfer, error) {
	if err := validateTransfer(params); err != nil {
		return nil, err
	}

	id := params.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Transfer{
		id:            id,
		sourceAccount: params.SourceAccount,
		targetAccount: params.TargetAccount,
		amount:        params.Amount,
		fee:           params.Fee,
		feePolicy:     params.FeePolicy,
		scheduleDate:  DateOf(params.ScheduleDate),
		transferDate:  DateOf(params.TransferDate),
	}, nil
}

// ScheduleTransfer resolves the fee tier for the dates, computes the fee and
// builds a new Transfer with a fresh ID. Account and date invariants are
// checked before the tier lookup, so a self-transfer or a transfer date in the
// past fails with its own error whatever the offset.
func ScheduleTransfer(source, target AccountNumber, amount Money, scheduleDate, transferDate time.Time) (*Transfer, error) {
	params := TransferParams{
		ID:            uuid.New(),
		SourceAccount: source,
		TargetAccount: target,
		Amount:        amount,
		Fee:           Zero(),
		ScheduleDate:  scheduleDate,
		TransferDate:  transferDate,
	}

	if err := validateTransfer(params); err != nil {
		return nil, err
	}

	policy, fee, err := CalculateFee(amount, scheduleDate, transferDate)
	if err != nil {
		return nil, err
	}

	params.Fee = fee
	params.FeePolicy = policy.Name()

	return NewTransfer(params)
}

// RestoreTransfer rebuilds a persisted Transfer. It requires an ID and runs the
// same validation as NewTransfer.
func RestoreTransfer(params TransferParams) (*Transfer, error) {
	if params.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: transfer ID is required", ErrInvalidTransferData)
	}

	return NewTransfer(params)
}

func validateTransfer(p TransferParams) error {
	if p.SourceAccount.IsZero() || p.TargetAccount.IsZero() {
		return fmt.Errorf("%w: source and target accounts must be provided", ErrInvalidTransferData)
	}

	if p.SourceAccount.Equal(p.TargetAccount) {
		return ErrSameAccountNotAllowed
	}

	if !p.Amount.IsSet() {
		return fmt.Errorf("%w: transfer amount must be provided", ErrInvalidTransferData)
	}

	if !p.Fee.IsSet() {
		return fmt.Errorf("%w: transfer fee must be provided", ErrInvalidTransferData)
	}

	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}

	if p.ScheduleDate.IsZero() {
		return fmt.Errorf("%w: schedule date must be provided", ErrInvalidTransferData)
	}

	if DaysBetween(p.ScheduleDate, p.TransferDate) < 0 {
		return ErrInvalidTransferDate
	}

	return nil
}

func (t *Transfer) ID() uuid.UUID                { return t.id }
func (t *Transfer) SourceAccount() AccountNumber { return t.sourceAccount }
func (t *Transfer) TargetAccount() AccountNumber { return t.targetAccount }
func (t *Transfer) Amount() Money                { return t.amount }
func (t *Transfer) Fee() Money                   { return t.fee }

// FeePolicy is the name of the tier that produced the fee. It is empty for
// transfers built with NewTransfer without a tier name.
func (t *Transfer) FeePolicy() string { return t.feePolicy }

// ScheduleDate is the calendar date the transfer was registered, as midnight UTC.
func (t *Transfer) ScheduleDate() time.Time { return t.scheduleDate }

// TransferDate is the calendar date the transfer executes, as midnight UTC.
func (t *Transfer) TransferDate() time.Time { return t.transferDate }

// DaysUntilTransfer is the day offset between schedule and transfer dates.
func (t *Transfer) DaysUntilTransfer() int {
	return DaysBetween(t.scheduleDate, t.transferDate)
}

// Total is the amount plus fee.
func (t *Transfer) Total() Money {
	return t.amount.Add(t.fee)
}

func (t *Transfer) String() string {
	return fmt.Sprintf("Transfer{id=%s, source=%s, target=%s, amount=%s, fee=%s, scheduleDate=%s, transferDate=%s}",
		t.id, t.sourceAccount, t.targetAccount, t.amount, t.fee,
		t.scheduleDate.Format(DateLayout), t.transferDate.Format(DateLayout))
}
