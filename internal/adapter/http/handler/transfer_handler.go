package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iho/goscheduler/internal/adapter/http/dto"
	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/usecase"
)

// TotalCountHeader carries the total number of transfers on list responses.
const TotalCountHeader = "X-Total-Count"

// TransferService is the use case surface the transfer handler needs.
type TransferService interface {
	ScheduleTransfer(ctx context.Context, input usecase.ScheduleTransferInput) (*domain.Transfer, error)
	GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	ListTransfers(ctx context.Context, input usecase.ListTransfersInput) (*usecase.TransferPage, error)
	DeleteTransfer(ctx context.Context, id uuid.UUID) error
	ClearTransfers(ctx context.Context) (int64, error)
}

// TransferHandler handles scheduled transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create schedules a new transfer.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidTransferData, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid transfer date", err)
		return
	}

	transfer, err := h.transferUC.ScheduleTransfer(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to schedule transfer", err)
		return
	}

	w.Header().Set("Location", "/api/v1/transfers/"+transfer.ID().String())
	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// Get retrieves a transfer by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := transferID(w, r)
	if !ok {
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get transfer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// List lists scheduled transfers ordered by transfer date.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.transferUC.ListTransfers(r.Context(), dto.PaginationRequest{
		Limit:  parseIntQuery(r, "limit", domain.DefaultPageSize),
		Offset: parseIntQuery(r, "offset", 0),
	}.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to list transfers", err)
		return
	}

	w.Header().Set(TotalCountHeader, strconv.FormatInt(page.Total, 10))
	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(page.Transfers))
}

// Delete removes a scheduled transfer.
func (h *TransferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := transferID(w, r)
	if !ok {
		return
	}

	if err := h.transferUC.DeleteTransfer(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to delete transfer", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear removes every scheduled transfer.
func (h *TransferHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.transferUC.ClearTransfers(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to clear transfers", err)
		return
	}

	w.Header().Set("X-Deleted-Count", strconv.FormatInt(deleted, 10))
	w.WriteHeader(http.StatusNoContent)
}

func transferID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidTransferData, "missing transfer ID", "")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidTransferData, "invalid transfer ID", err.Error())
		return uuid.Nil, false
	}

	return id, true
}
