package handler

import (
	"context"
	"net/http"

	"github.com/iho/goscheduler/internal/adapter/http/dto"
	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/usecase"
)

// FeeService is the use case surface the fee handler needs.
type FeeService interface {
	QuoteFee(ctx context.Context, input usecase.QuoteFeeInput) (*usecase.FeeQuote, error)
	ListFeePolicies(ctx context.Context) []domain.FeePolicy
}

// FeeHandler serves fee quotes and the tier catalogue.
type FeeHandler struct {
	feeUC FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeUC FeeService) *FeeHandler {
	return &FeeHandler{feeUC: feeUC}
}

// Quote returns the fee a transfer would be charged if scheduled today.
func (h *FeeHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.FeeQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidTransferData, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid transfer date", err)
		return
	}

	quote, err := h.feeUC.QuoteFee(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to quote fee", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FeeQuoteFromUseCase(quote))
}

// Policies lists the fee tiers.
func (h *FeeHandler) Policies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.FeePoliciesFromDomain(h.feeUC.ListFeePolicies(r.Context())))
}
