package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/infrastructure/postgres/generated"
	"github.com/iho/goscheduler/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	queries *generated.Queries
	now     func() time.Time
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(db generated.DBTX) *TransferRepository {
	return &TransferRepository{
		queries: generated.New(db),
		now:     time.Now,
	}
}

// Save inserts a scheduled transfer.
func (r *TransferRepository) Save(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	return queriesFor(r.queries, tx).CreateScheduledTransfer(ctx, generated.CreateScheduledTransferParams{
		ID:            uuidToPg(transfer.ID()),
		SourceAccount: transfer.SourceAccount().String(),
		TargetAccount: transfer.TargetAccount().String(),
		Amount:        decimalToNumeric(transfer.Amount().Decimal()),
		Fee:           decimalToNumeric(transfer.Fee().Decimal()),
		FeePolicy:     transfer.FeePolicy(),
		ScheduleDate:  timeToPgDate(transfer.ScheduleDate()),
		TransferDate:  timeToPgDate(transfer.TransferDate()),
		CreatedAt:     timeToPgTimestamptz(r.now().UTC()),
	})
}

// FindByID retrieves a transfer by ID.
func (r *TransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	row, err := r.queries.GetScheduledTransferByID(ctx, uuidToPg(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransferNotFound, id)
		}

		return nil, err
	}

	return rowToTransfer(row)
}

// FindAll lists transfers ordered by transfer date.
func (r *TransferRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Transfer, error) {
	rows, err := r.queries.ListScheduledTransfers(ctx, generated.ListScheduledTransfersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(rows))
	for _, row := range rows {
		transfer, err := rowToTransfer(row)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, transfer)
	}

	return transfers, nil
}

// Count returns the number of scheduled transfers.
func (r *TransferRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountScheduledTransfers(ctx)
}

// ExistsByID reports whether a transfer with id exists.
func (r *TransferRepository) ExistsByID(ctx context.Context, tx usecase.Transaction, id uuid.UUID) (bool, error) {
	return queriesFor(r.queries, tx).ExistsScheduledTransfer(ctx, uuidToPg(id))
}

// DeleteByID deletes a transfer by ID.
func (r *TransferRepository) DeleteByID(ctx context.Context, tx usecase.Transaction, id uuid.UUID) error {
	n, err := queriesFor(r.queries, tx).DeleteScheduledTransfer(ctx, uuidToPg(id))
	if err != nil {
		return err
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTransferNotFound, id)
	}

	return nil
}

// DeleteAll deletes every transfer and returns the number removed.
func (r *TransferRepository) DeleteAll(ctx context.Context, tx usecase.Transaction) (int64, error) {
	return queriesFor(r.queries, tx).DeleteAllScheduledTransfers(ctx)
}

func rowToTransfer(row generated.ScheduledTransfer) (*domain.Transfer, error) {
	source, err := domain.NewAccountNumber(row.SourceAccount)
	if err != nil {
		return nil, err
	}

	target, err := domain.NewAccountNumber(row.TargetAccount)
	if err != nil {
		return nil, err
	}

	amount, err := domain.NewMoney(numericToDecimal(row.Amount))
	if err != nil {
		return nil, err
	}

	fee, err := domain.NewMoney(numericToDecimal(row.Fee))
	if err != nil {
		return nil, err
	}

	return domain.RestoreTransfer(domain.TransferParams{
		ID:            pgToUUID(row.ID),
		SourceAccount: source,
		TargetAccount: target,
		Amount:        amount,
		Fee:           fee,
		FeePolicy:     row.FeePolicy,
		ScheduleDate:  row.ScheduleDate.Time,
		TransferDate:  row.TransferDate.Time,
	})
}
