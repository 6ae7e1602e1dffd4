package domain

import "time"

// Event types
const (
	EventTypeTransferScheduled = "transfer.scheduled"
	EventTypeTransferDeleted   = "transfer.deleted"
	EventTypeTransfersCleared  = "transfers.cleared"
)

// Aggregate types
const (
	AggregateTypeTransfer = "transfer"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransferScheduledEvent payload
type TransferScheduledEvent struct {
	TransferID    string `json:"transfer_id"`
	SourceAccount string `json:"source_account"`
	TargetAccount string `json:"target_account"`
	Amount        string `json:"amount"`
	Fee           string `json:"fee"`
	FeePolicy     string `json:"fee_policy"`
	ScheduleDate  string `json:"schedule_date"`
	TransferDate  string `json:"transfer_date"`
}

// TransferDeletedEvent payload
type TransferDeletedEvent struct {
	TransferID string `json:"transfer_id"`
}

// TransfersClearedEvent payload
type TransfersClearedEvent struct {
	Count   int64  `json:"count"`
	EventAt string `json:"event_at"`
}

// NewTransferScheduledEvent builds the payload for a newly scheduled transfer.
func NewTransferScheduledEvent(t *Transfer) TransferScheduledEvent {
	return TransferScheduledEvent{
		TransferID:    t.ID().String(),
		SourceAccount: t.SourceAccount().String(),
		TargetAccount: t.TargetAccount().String(),
		Amount:        t.Amount().String(),
		Fee:           t.Fee().String(),
		FeePolicy:     t.FeePolicy(),
		ScheduleDate:  t.ScheduleDate().Format(DateLayout),
		TransferDate:  t.TransferDate().Format(DateLayout),
	}
}
