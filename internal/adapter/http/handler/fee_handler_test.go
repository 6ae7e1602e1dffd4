package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/goscheduler/internal/adapter/http/dto"
	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/usecase"
)

type feeServiceStub struct {
	quoteFn func(ctx context.Context, input usecase.QuoteFeeInput) (*usecase.FeeQuote, error)
}

func (s *feeServiceStub) QuoteFee(ctx context.Context, input usecase.QuoteFeeInput) (*usecase.FeeQuote, error) {
	return s.quoteFn(ctx, input)
}

func (s *feeServiceStub) ListFeePolicies(ctx context.Context) []domain.FeePolicy {
	return domain.FeePolicies()
}

func TestFeeHandler_Quote(t *testing.T) {
	handler := NewFeeHandler(&feeServiceStub{
		quoteFn: func(ctx context.Context, input usecase.QuoteFeeInput) (*usecase.FeeQuote, error) {
			amount, _ := domain.NewMoney(input.Amount.Decimal)
			policy, fee, err := domain.CalculateFee(amount, today, *input.TransferDate)
			if err != nil {
				return nil, err
			}

			return &usecase.FeeQuote{
				Policy:       policy,
				Amount:       amount,
				Fee:          fee,
				Total:        amount.Add(fee),
				ScheduleDate: today,
				TransferDate: *input.TransferDate,
				Days:         domain.DaysBetween(today, *input.TransferDate),
			}, nil
		},
	})

	body := `{"amount":"1000","transfer_date":"2025-04-04"}`
	rec := httptest.NewRecorder()
	handler.Quote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/fees/quote", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.FeeQuoteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.FeePolicy != domain.PolicyMedium || resp.Fee != "69.00" || resp.Days != 25 {
		t.Fatalf("unexpected quote %+v", resp)
	}

	rec = httptest.NewRecorder()
	handler.Quote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/fees/quote", strings.NewReader(`{"amount":"1","transfer_date":"2025-06-01"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 beyond the last tier, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Code != domain.CodeNoApplicableFeePolicy {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestFeeHandler_Policies(t *testing.T) {
	handler := NewFeeHandler(&feeServiceStub{})

	rec := httptest.NewRecorder()
	handler.Policies(rec, httptest.NewRequest(http.MethodGet, "/api/v1/fees/policies", nil))

	var resp []dto.FeePolicyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp) != 6 || resp[0].Name != domain.PolicySameDay {
		t.Fatalf("unexpected policies %+v", resp)
	}
}
