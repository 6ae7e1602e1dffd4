package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/goscheduler/internal/adapter/http"
	"github.com/iho/goscheduler/internal/adapter/http/handler"
	"github.com/iho/goscheduler/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/goscheduler/internal/adapter/repository/redis"
	"github.com/iho/goscheduler/internal/infrastructure/clock"
	"github.com/iho/goscheduler/internal/infrastructure/metrics"
	"github.com/iho/goscheduler/internal/usecase"
	"github.com/iho/goscheduler/tests/testutil"
)

var today = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

type app struct {
	db         *testutil.TestDB
	router     http.Handler
	transferUC *usecase.TransferUseCase
	outboxRepo *postgres.OutboxRepository
}

func newApp(t *testing.T) *app {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	redisClient := testutil.NewTestRedis(t)

	pool := testDB.Pool
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	fixed := clock.Fixed(today)
	outboxRepo := postgres.NewOutboxRepository(pool)

	transferUC := usecase.NewTransferUseCase(
		postgres.NewTxManager(pool),
		postgres.NewTransferRepository(pool),
		outboxRepo,
		postgres.NewULIDGenerator(),
		fixed,
		postgres.NewRetrier(),
		m,
	).WithCache(redisrepo.NewCache(redisClient), time.Minute)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		TransferHandler: handler.NewTransferHandler(transferUC),
		FeeHandler:      handler.NewFeeHandler(usecase.NewFeeUseCase(fixed, m)),
		HealthHandler: handler.NewHealthHandler(
			handler.PingFunc(pool.Ping),
			handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		),
		IdempotencyStore: redisrepo.NewIdempotencyStore(redisClient),
		IdempotencyTTL:   time.Minute,
		Logger:           zerolog.Nop(),
		Gatherer:         registry,
	})

	return &app{db: testDB, router: router, transferUC: transferUC, outboxRepo: outboxRepo}
}

func (a *app) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	return rec
}
