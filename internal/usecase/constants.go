package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultCacheTTL is how long a transfer stays in the read cache
	DefaultCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyPending is the value held by an idempotency key while its first request is in flight.
const IdempotencyPending = "processing"
