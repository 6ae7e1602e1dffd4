package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goscheduler/internal/domain"
)

func TestScheduleTransferRequest_ToUseCaseInput(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantAmount  string
		wantDate    *time.Time
		expectError bool
	}{
		{
			name:       "string amount and date",
			body:       `{"source_account":"1234567890","target_account":"0987654321","amount":"1000.50","transfer_date":"2025-03-20"}`,
			wantAmount: "1000.5",
			wantDate:   ptr(time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:       "numeric amount",
			body:       `{"source_account":"1234567890","target_account":"0987654321","amount":250,"transfer_date":"2025-03-20"}`,
			wantAmount: "250",
			wantDate:   ptr(time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "missing amount and date stay absent",
			body: `{"source_account":"1234567890","target_account":"0987654321"}`,
		},
		{
			name:        "malformed date",
			body:        `{"amount":"1","transfer_date":"20/03/2025"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ScheduleTransferRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("decode failed: %v", err)
			}

			got, err := req.ToUseCaseInput()
			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidTransferData) {
					t.Fatalf("expected ErrInvalidTransferData, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantAmount == "" {
				if got.Amount.Valid {
					t.Fatalf("expected absent amount, got %s", got.Amount.Decimal)
				}
			} else if !got.Amount.Valid || !got.Amount.Decimal.Equal(decimal.RequireFromString(tt.wantAmount)) {
				t.Fatalf("amount = %+v, want %s", got.Amount, tt.wantAmount)
			}

			switch {
			case tt.wantDate == nil && got.TransferDate != nil:
				t.Fatalf("expected absent date, got %v", got.TransferDate)
			case tt.wantDate != nil && (got.TransferDate == nil || !got.TransferDate.Equal(*tt.wantDate)):
				t.Fatalf("transfer date = %v, want %v", got.TransferDate, tt.wantDate)
			}

			if got.SourceAccount != req.SourceAccount || got.TargetAccount != req.TargetAccount {
				t.Fatalf("accounts not copied: %+v", got)
			}
		})
	}
}

func TestFeeQuoteRequest_ToUseCaseInput(t *testing.T) {
	req := FeeQuoteRequest{
		Amount:       decimal.NewNullDecimal(decimal.RequireFromString("99.99")),
		TransferDate: "2025-04-01",
	}

	got, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Amount.Valid || got.TransferDate == nil || got.TransferDate.Format(domain.DateLayout) != "2025-04-01" {
		t.Fatalf("unexpected input: %+v", got)
	}

	req.TransferDate = "tomorrow"
	if _, err := req.ToUseCaseInput(); !errors.Is(err, domain.ErrInvalidTransferData) {
		t.Fatalf("expected ErrInvalidTransferData, got %v", err)
	}
}

func TestPaginationRequest_ToUseCaseInput(t *testing.T) {
	got := PaginationRequest{Limit: 5, Offset: 10}.ToUseCaseInput()

	if got.Limit != 5 || got.Offset != 10 {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func ptr[T any](v T) *T {
	return &v
}
