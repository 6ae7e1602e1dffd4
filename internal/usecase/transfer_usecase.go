package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/infrastructure/metrics"
)

// TransferUseCase handles scheduled transfer business logic.
type TransferUseCase struct {
	txManager    TransactionManager
	transferRepo TransferRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	clock        Clock
	retrier      Retrier
	cache        Cache
	cacheTTL     time.Duration
	metrics      *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. retrier and metrics may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	transferRepo TransferRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	clock Clock,
	retrier Retrier,
	metrics *metrics.Metrics,
) *TransferUseCase {
	if retrier == nil {
		retrier = noRetry{}
	}

	return &TransferUseCase{
		txManager:    txManager,
		transferRepo: transferRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		clock:        clock,
		retrier:      retrier,
		metrics:      metrics,
	}
}

// WithCache enables read-through caching of single transfers.
func (uc *TransferUseCase) WithCache(cache Cache, ttl time.Duration) *TransferUseCase {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	uc.cache = cache
	uc.cacheTTL = ttl

	return uc
}

// ScheduleTransferInput represents input for scheduling a transfer.
// Empty strings, an invalid Amount and a nil TransferDate are absent values.
type ScheduleTransferInput struct {
	SourceAccount string
	TargetAccount string
	Amount        decimal.NullDecimal
	TransferDate  *time.Time
}

func (in ScheduleTransferInput) validate() error {
	switch {
	case in.SourceAccount == "":
		return fmt.Errorf("%w: source account is required", domain.ErrInvalidTransferData)
	case in.TargetAccount == "":
		return fmt.Errorf("%w: target account is required", domain.ErrInvalidTransferData)
	case !in.Amount.Valid:
		return fmt.Errorf("%w: amount is required", domain.ErrInvalidTransferData)
	case in.TransferDate == nil:
		return fmt.Errorf("%w: transfer date is required", domain.ErrInvalidTransferData)
	}

	return nil
}

// ScheduleTransfer computes the fee for a new transfer dated today and stores it.
func (uc *TransferUseCase) ScheduleTransfer(ctx context.Context, input ScheduleTransferInput) (*domain.Transfer, error) {
	start := time.Now()

	transfer, err := uc.scheduleTransfer(ctx, input)

	if uc.metrics != nil {
		uc.metrics.ScheduleDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			uc.metrics.SchedulingErrors.WithLabelValues(domain.ErrorCode(err)).Inc()
		} else {
			uc.metrics.TransfersScheduled.WithLabelValues(transfer.FeePolicy()).Inc()
			uc.metrics.TransferAmount.Observe(transfer.Amount().Decimal().InexactFloat64())
			uc.metrics.TransferFee.Observe(transfer.Fee().Decimal().InexactFloat64())
		}
	}

	return transfer, err
}

func (uc *TransferUseCase) scheduleTransfer(ctx context.Context, input ScheduleTransferInput) (*domain.Transfer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	source, err := domain.NewAccountNumber(input.SourceAccount)
	if err != nil {
		return nil, err
	}

	target, err := domain.NewAccountNumber(input.TargetAccount)
	if err != nil {
		return nil, err
	}

	amount, err := domain.NewMoney(input.Amount.Decimal)
	if err != nil {
		return nil, err
	}

	scheduleDate := domain.DateOf(uc.clock.Now())

	transfer, err := domain.ScheduleTransfer(source, target, amount, scheduleDate, *input.TransferDate)
	if err != nil {
		return nil, err
	}

	event, err := uc.newEvent(transfer.ID().String(), domain.EventTypeTransferScheduled, domain.NewTransferScheduledEvent(transfer))
	if err != nil {
		return nil, err
	}

	err = uc.inTx(ctx, func(txCtx context.Context, tx Transaction) error {
		if err := uc.transferRepo.Save(txCtx, tx, transfer); err != nil {
			return err
		}

		return uc.outboxRepo.Create(txCtx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: transfer ID is required", domain.ErrInvalidTransferData)
	}

	if transfer, ok, err := uc.lookupCached(ctx, id); ok {
		return transfer, err
	}

	transfer, err := uc.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.storeTransfer(ctx, transfer)

	return transfer, nil
}

// ListTransfersInput represents input for listing transfers.
type ListTransfersInput struct {
	Limit  int
	Offset int
}

// TransferPage is one page of scheduled transfers.
type TransferPage struct {
	Transfers []*domain.Transfer
	Total     int64
	Limit     int
	Offset    int
}

// ListTransfers lists scheduled transfers with pagination.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, input ListTransfersInput) (*TransferPage, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	transfers, err := uc.transferRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := uc.transferRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &TransferPage{
		Transfers: transfers,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// DeleteTransfer removes a scheduled transfer.
func (uc *TransferUseCase) DeleteTransfer(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: transfer ID is required", domain.ErrInvalidTransferData)
	}

	event, err := uc.newEvent(id.String(), domain.EventTypeTransferDeleted, domain.TransferDeletedEvent{
		TransferID: id.String(),
	})
	if err != nil {
		return err
	}

	err = uc.inTx(ctx, func(txCtx context.Context, tx Transaction) error {
		exists, err := uc.transferRepo.ExistsByID(txCtx, tx, id)
		if err != nil {
			return err
		}

		if !exists {
			return fmt.Errorf("%w: %s", domain.ErrTransferNotFound, id)
		}

		if err := uc.transferRepo.DeleteByID(txCtx, tx, id); err != nil {
			return err
		}

		return uc.outboxRepo.Create(txCtx, tx, event)
	})
	if err != nil {
		return err
	}

	uc.markDeleted(ctx, id)

	if uc.metrics != nil {
		uc.metrics.TransfersDeleted.Inc()
	}

	return nil
}

// ClearTransfers removes every scheduled transfer and returns how many were deleted.
func (uc *TransferUseCase) ClearTransfers(ctx context.Context) (int64, error) {
	var deleted int64

	err := uc.inTx(ctx, func(txCtx context.Context, tx Transaction) error {
		n, err := uc.transferRepo.DeleteAll(txCtx, tx)
		if err != nil {
			return err
		}

		deleted = n

		event, err := uc.newEvent(domain.AggregateTypeTransfer, domain.EventTypeTransfersCleared, domain.TransfersClearedEvent{
			Count:   n,
			EventAt: uc.clock.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}

		return uc.outboxRepo.Create(txCtx, tx, event)
	})
	if err != nil {
		return 0, err
	}

	if uc.cache != nil {
		_ = uc.cache.Flush(ctx)
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCleared.Inc()
	}

	return deleted, nil
}

// inTx runs fn in a transaction, retrying the whole transaction on transient errors.
func (uc *TransferUseCase) inTx(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	return uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
}

func (uc *TransferUseCase) newEvent(aggregateID, eventType string, payload any) (*domain.OutboxEvent, error) {
	body, err := toPayload(payload)
	if err != nil {
		return nil, err
	}

	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: domain.AggregateTypeTransfer,
		EventType:     eventType,
		Payload:       body,
		CreatedAt:     uc.clock.Now().UTC(),
		Published:     false,
	}, nil
}

func toPayload(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}

	return payload, nil
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}
