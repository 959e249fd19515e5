package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// Relay retries back off exponentially from baseRetryDelay up to maxRetryDelay.
const (
	baseRetryDelay  = 15 * time.Second
	maxRetryDelay   = 10 * time.Minute
	maxErrorMessage = 500
)

var (
	ErrInvalidOutboxEvent  = errors.New("invalid outbox event")
	ErrOutboxEventNotFound = errors.New("outbox event not found")
)

// OutboxEvent is a domain event queued in the same transaction as the row
// that produced it and relayed to Kafka later.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewOutboxEvent encodes payload and returns a pending event with a fresh id.
func NewOutboxEvent(topic, aggregateType, aggregateID, eventType, requestID string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}, nil
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	// ListPending returns due pending or failed events, oldest first.
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type sqlRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) runner() sqlRunner {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	_, err := r.runner().ExecContext(ctx, `
INSERT INTO outbox_events (
	id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.runner().QueryContext(ctx, `
SELECT id::text, request_id, aggregate_type, aggregate_id::text, event_type,
	topic, payload, status, retry_count, COALESCE(next_retry_at, created_at)
FROM outbox_events
WHERE status IN ($1, $2)
	AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at ASC
LIMIT $3`,
		OutboxStatusPending, OutboxStatusFailed, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID, &e.EventType,
			&e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		pending = append(pending, e)
	}
	return pending, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	res, err := r.runner().ExecContext(ctx, `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`,
		id, OutboxStatusSent,
	)
	return checkUpdated(res, err, id)
}

// MarkFailed records reason and schedules the next attempt. The delay
// doubles with every retry, starting at baseRetryDelay and capped at
// maxRetryDelay.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	res, err := r.runner().ExecContext(ctx, `
UPDATE outbox_events
SET status = $2,
	retry_count = retry_count + 1,
	error_message = LEFT($3, $4),
	next_retry_at = NOW() + LEAST($5 * POWER(2, retry_count), $6) * INTERVAL '1 second',
	updated_at = NOW()
WHERE id = $1`,
		id, OutboxStatusFailed, reason, maxErrorMessage,
		baseRetryDelay.Seconds(), maxRetryDelay.Seconds(),
	)
	return checkUpdated(res, err, id)
}

func checkUpdated(res sql.Result, err error, id string) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrOutboxEventNotFound, id)
	}
	return nil
}

func ValidateOutboxEvent(event OutboxEvent) error {
	switch {
	case event.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidOutboxEvent)
	case event.Topic == "":
		return fmt.Errorf("%w: topic is required", ErrInvalidOutboxEvent)
	case event.AggregateID == "":
		return fmt.Errorf("%w: aggregate id is required", ErrInvalidOutboxEvent)
	case len(event.Payload) == 0:
		return fmt.Errorf("%w: payload is required", ErrInvalidOutboxEvent)
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidOutboxEvent, event.Status)
	}
}
