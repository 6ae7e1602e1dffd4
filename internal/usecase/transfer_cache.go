package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iho/goscheduler/internal/domain"
)

const transferCachePrefix = "transfer:"

// deletedTransfer marks a deleted transfer in the cache. Read-through fills
// use SetNX, so a fill racing with a delete cannot resurrect the entry.
var deletedTransfer = []byte("deleted")

func transferCacheKey(id uuid.UUID) string {
	return transferCachePrefix + id.String()
}

type cachedTransfer struct {
	ID            uuid.UUID       `json:"id"`
	SourceAccount string          `json:"source_account"`
	TargetAccount string          `json:"target_account"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	FeePolicy     string          `json:"fee_policy"`
	ScheduleDate  time.Time       `json:"schedule_date"`
	TransferDate  time.Time       `json:"transfer_date"`
}

func encodeTransfer(t *domain.Transfer) ([]byte, error) {
	return json.Marshal(cachedTransfer{
		ID:            t.ID(),
		SourceAccount: t.SourceAccount().String(),
		TargetAccount: t.TargetAccount().String(),
		Amount:        t.Amount().Decimal(),
		Fee:           t.Fee().Decimal(),
		FeePolicy:     t.FeePolicy(),
		ScheduleDate:  t.ScheduleDate(),
		TransferDate:  t.TransferDate(),
	})
}

func decodeTransfer(data []byte) (*domain.Transfer, error) {
	var c cachedTransfer
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	source, err := domain.NewAccountNumber(c.SourceAccount)
	if err != nil {
		return nil, err
	}

	target, err := domain.NewAccountNumber(c.TargetAccount)
	if err != nil {
		return nil, err
	}

	amount, err := domain.NewMoney(c.Amount)
	if err != nil {
		return nil, err
	}

	fee, err := domain.NewMoney(c.Fee)
	if err != nil {
		return nil, err
	}

	return domain.RestoreTransfer(domain.TransferParams{
		ID:            c.ID,
		SourceAccount: source,
		TargetAccount: target,
		Amount:        amount,
		Fee:           fee,
		FeePolicy:     c.FeePolicy,
		ScheduleDate:  c.ScheduleDate,
		TransferDate:  c.TransferDate,
	})
}

// lookupCached reports a cache hit. A hit on a deleted marker returns
// ErrTransferNotFound. Cache failures count as misses.
func (uc *TransferUseCase) lookupCached(ctx context.Context, id uuid.UUID) (*domain.Transfer, bool, error) {
	if uc.cache == nil {
		return nil, false, nil
	}

	data, err := uc.cache.Get(ctx, transferCacheKey(id))
	if err == nil {
		if bytes.Equal(data, deletedTransfer) {
			uc.recordCache("hit")
			return nil, true, fmt.Errorf("%w: %s", domain.ErrTransferNotFound, id)
		}

		if transfer, decodeErr := decodeTransfer(data); decodeErr == nil {
			uc.recordCache("hit")
			return transfer, true, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		uc.recordCache("error")
		return nil, false, nil
	}

	uc.recordCache("miss")

	return nil, false, nil
}

func (uc *TransferUseCase) storeTransfer(ctx context.Context, transfer *domain.Transfer) {
	if uc.cache == nil {
		return
	}

	data, err := encodeTransfer(transfer)
	if err != nil {
		return
	}

	_, _ = uc.cache.SetNX(ctx, transferCacheKey(transfer.ID()), data, uc.cacheTTL)
}

func (uc *TransferUseCase) markDeleted(ctx context.Context, id uuid.UUID) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Set(ctx, transferCacheKey(id), deletedTransfer, uc.cacheTTL)
}

func (uc *TransferUseCase) recordCache(result string) {
	if uc.metrics != nil {
		uc.metrics.CacheRequests.WithLabelValues(result).Inc()
	}
}
