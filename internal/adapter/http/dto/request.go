package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/usecase"
)

// ScheduleTransferRequest represents a request to schedule a transfer.
// TransferDate is a calendar date in YYYY-MM-DD form.
type ScheduleTransferRequest struct {
	SourceAccount string              `json:"source_account"`
	TargetAccount string              `json:"target_account"`
	Amount        decimal.NullDecimal `json:"amount"`
	TransferDate  string              `json:"transfer_date"`
}

// ToUseCaseInput converts to use case input.
func (r *ScheduleTransferRequest) ToUseCaseInput() (usecase.ScheduleTransferInput, error) {
	date, err := parseOptionalDate(r.TransferDate)
	if err != nil {
		return usecase.ScheduleTransferInput{}, err
	}

	return usecase.ScheduleTransferInput{
		SourceAccount: r.SourceAccount,
		TargetAccount: r.TargetAccount,
		Amount:        r.Amount,
		TransferDate:  date,
	}, nil
}

// FeeQuoteRequest represents a request for a fee quote.
type FeeQuoteRequest struct {
	Amount       decimal.NullDecimal `json:"amount"`
	TransferDate string              `json:"transfer_date"`
}

// ToUseCaseInput converts to use case input.
func (r *FeeQuoteRequest) ToUseCaseInput() (usecase.QuoteFeeInput, error) {
	date, err := parseOptionalDate(r.TransferDate)
	if err != nil {
		return usecase.QuoteFeeInput{}, err
	}

	return usecase.QuoteFeeInput{
		Amount:       r.Amount,
		TransferDate: date,
	}, nil
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ToUseCaseInput converts to use case input.
func (r PaginationRequest) ToUseCaseInput() usecase.ListTransfersInput {
	return usecase.ListTransfersInput{
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: transfer_date must be YYYY-MM-DD", domain.ErrInvalidTransferData)
	}

	return &d, nil
}
