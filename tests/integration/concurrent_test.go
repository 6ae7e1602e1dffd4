package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/goscheduler/internal/usecase"
)

func mustNullDecimal(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestConcurrentScheduling(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	const workers = 20

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			date := today.AddDate(0, 0, i)
			_, err := a.transferUC.ScheduleTransfer(ctx, usecase.ScheduleTransferInput{
				SourceAccount: fmt.Sprintf("10000000%02d", i),
				TargetAccount: "9999999999",
				Amount:        mustNullDecimal("100"),
				TransferDate:  &date,
			})
			errs <- err
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent schedule failed: %v", err)
		}
	}

	page, err := a.transferUC.ListTransfers(ctx, usecase.ListTransfersInput{Limit: 100})
	if err != nil {
		t.Fatalf("failed to list transfers: %v", err)
	}

	if page.Total != workers || len(page.Transfers) != workers {
		t.Fatalf("expected %d transfers, got total=%d len=%d", workers, page.Total, len(page.Transfers))
	}

	for i := 1; i < len(page.Transfers); i++ {
		if page.Transfers[i].TransferDate().Before(page.Transfers[i-1].TransferDate()) {
			t.Fatalf("transfers not ordered by transfer date at %d", i)
		}
	}
}
