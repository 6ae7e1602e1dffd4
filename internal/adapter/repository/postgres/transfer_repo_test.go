package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/goscheduler/internal/domain"
)

var transferColumns = []string{
	"id", "source_account", "target_account", "amount", "fee",
	"fee_policy", "schedule_date", "transfer_date", "created_at",
}

var scheduleDay = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func newTestTransfer(t *testing.T) *domain.Transfer {
	t.Helper()

	source, _ := domain.NewAccountNumber("1234567890")
	target, _ := domain.NewAccountNumber("0987654321")

	transfer, err := domain.ScheduleTransfer(source, target, domain.MustMoney("1000.00"), scheduleDay, scheduleDay.AddDate(0, 0, 25))
	if err != nil {
		t.Fatalf("failed to build transfer: %v", err)
	}

	return transfer
}

func transferRow(mock pgxmock.PgxPoolIface, id uuid.UUID) *pgxmock.Rows {
	return mock.NewRows(transferColumns).AddRow(
		uuidToPg(id),
		"1234567890",
		"0987654321",
		decimalToNumeric(decimal.RequireFromString("1000.00")),
		decimalToNumeric(decimal.RequireFromString("69.00")),
		domain.PolicyMedium,
		pgtype.Date{Time: scheduleDay, Valid: true},
		pgtype.Date{Time: scheduleDay.AddDate(0, 0, 25), Valid: true},
		pgtype.Timestamptz{Time: scheduleDay, Valid: true},
	)
}

func beginTx(t *testing.T, mock pgxmock.PgxPoolIface) *Tx {
	t.Helper()

	mock.ExpectBegin()

	pgxTx, err := mock.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	return &Tx{tx: pgxTx}
}

func TestTransferRepositorySave(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransferRepository(mock)
	transfer := newTestTransfer(t)
	tx := beginTx(t, mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO scheduled_transfers")).
		WithArgs(
			uuidToPg(transfer.ID()),
			"1234567890",
			"0987654321",
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			domain.PolicyMedium,
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Save(context.Background(), tx, transfer); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	assertExpectations(t, mock)
}

func TestTransferRepositoryFindByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransferRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM scheduled_transfers WHERE id = $1")).
		WithArgs(uuidToPg(id)).
		WillReturnRows(transferRow(mock, id))

	transfer, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	if transfer.ID() != id {
		t.Fatalf("expected id %s, got %s", id, transfer.ID())
	}
	if transfer.Fee().String() != "69.00" {
		t.Fatalf("expected fee 69.00, got %s", transfer.Fee())
	}
	if transfer.DaysUntilTransfer() != 25 {
		t.Fatalf("expected 25 days, got %d", transfer.DaysUntilTransfer())
	}

	assertExpectations(t, mock)
}

func TestTransferRepositoryFindByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransferRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM scheduled_transfers WHERE id = $1")).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrTransferNotFound) {
		t.Fatalf("expected ErrTransferNotFound, got %v", err)
	}

	assertExpectations(t, mock)
}

func TestTransferRepositoryFindAll(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransferRepository(mock)

	first, second := uuid.New(), uuid.New()
	rows := mock.NewRows(transferColumns)
	for _, id := range []uuid.UUID{first, second} {
		rows.AddRow(
			uuidToPg(id),
			"1234567890",
			"0987654321",
			decimalToNumeric(decimal.RequireFromString("1000.00")),
			decimalToNumeric(decimal.RequireFromString("69.00")),
			domain.PolicyMedium,
			pgtype.Date{Time: scheduleDay, Valid: true},
			pgtype.Date{Time: scheduleDay.AddDate(0, 0, 25), Valid: true},
			pgtype.Timestamptz{Time: scheduleDay, Valid: true},
		)
	}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY transfer_date")).
		WithArgs(int32(20), int32(0)).
		WillReturnRows(rows)

	transfers, err := repo.FindAll(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}

	if len(transfers) != 2 || transfers[0].ID() != first || transfers[1].ID() != second {
		t.Fatalf("unexpected transfers: %v", transfers)
	}

	assertExpectations(t, mock)
}

func TestTransferRepositoryCountAndExists(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransferRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM scheduled_transfers")).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(uuidToPg(id)).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	count, err := repo.Count(context.Background())
	if err != nil || count != 7 {
		t.Fatalf("expected count 7, got %d (err %v)", count, err)
	}

	exists, err := repo.ExistsByID(context.Background(), nil, id)
	if err != nil || !exists {
		t.Fatalf("expected transfer to exist, got %v (err %v)", exists, err)
	}

	assertExpectations(t, mock)
}

func TestTransferRepositoryDeleteByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransferRepository(mock)
	tx := beginTx(t, mock)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM scheduled_transfers WHERE id = $1")).
		WithArgs(uuidToPg(id)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM scheduled_transfers WHERE id = $1")).
		WithArgs(uuidToPg(id)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.DeleteByID(context.Background(), tx, id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := repo.DeleteByID(context.Background(), tx, id); !errors.Is(err, domain.ErrTransferNotFound) {
		t.Fatalf("expected ErrTransferNotFound on second delete, got %v", err)
	}

	assertExpectations(t, mock)
}

func TestTransferRepositoryDeleteAll(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransferRepository(mock)
	tx := beginTx(t, mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM scheduled_transfers")).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := repo.DeleteAll(context.Background(), tx)
	if err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 rows, got %d", n)
	}

	assertExpectations(t, mock)
}

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "0.01", "12.00", "1234567.89"} {
		d := decimal.RequireFromString(s)
		if got := numericToDecimal(decimalToNumeric(d)); !got.Equal(d) {
			t.Fatalf("round trip of %s produced %s", s, got)
		}
	}

	if !numericToDecimal(pgtype.Numeric{}).IsZero() {
		t.Fatalf("expected invalid numeric to map to zero")
	}
}
