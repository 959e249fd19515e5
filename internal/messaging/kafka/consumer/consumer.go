package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-empledger/internal/employeesalary"
	employeesalaryerrors "go-empledger/internal/employeesalary/errors"
	"go-empledger/internal/events"
	"go-empledger/internal/shared/apperror"
	"go-empledger/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the reconciler needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

var (
	retryBackoff    = time.Second
	maxRetryBackoff = 30 * time.Second
)

// ConsumeEmployeeLifecycle makes sure every created employee owns a salary
// ledger. A message that still needs work is retried in place, so no later
// offset is committed past it.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	salaries employeesalary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")
	defer log.Info("employee lifecycle consumer stopped")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			if !sleep(ctx, retryBackoff) {
				return
			}
			continue
		}

		backoff := retryBackoff
		for !handleMessage(ctx, msg, salaries, log) {
			log.Warn("retrying employee lifecycle message",
				zap.Int64("offset", msg.Offset),
				zap.Duration("backoff", backoff),
			)
			if !sleep(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, maxRetryBackoff)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// handleMessage reports whether msg can be committed.
func handleMessage(
	ctx context.Context,
	msg kafkago.Message,
	salaries employeesalary.Service,
	log *zap.Logger,
) bool {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee lifecycle message failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}

	if event.EventType != "" && event.EventType != events.EmployeeCreatedEventType {
		log.Debug("ignoring employee lifecycle event", zap.String("event_type", event.EventType))
		return true
	}

	ctx = contextutil.WithRequestID(ctx, event.RequestID)
	fields := []zap.Field{
		zap.String("request_id", event.RequestID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("employeeid", event.EmployeeCode),
	}

	ledger, err := salaries.EnsureForEmployee(ctx, event.EmployeeID)
	switch {
	case err == nil:
		log.Info("salary ledger reconciled", append(fields, zap.Int64("employee_salary_id", ledger.EmployeeSalaryID))...)
		return true
	case errors.Is(err, employeesalaryerrors.ErrLedgerAlreadyExists):
		log.Warn("salary ledger already exists, skipping", fields...)
		return true
	case errors.Is(err, employeesalaryerrors.ErrUnknownEmployee):
		// employee was deleted before the event was relayed
		log.Warn("salary ledger owner no longer exists, skipping", append(fields, zap.Error(err))...)
		return true
	default:
		partial := apperror.PartialFailure(err, map[string]string{
			"employee_id": event.EmployeeID,
			"committed":   "employee",
			"missing":     "salary_ledger",
		})
		log.Error("reconcile salary ledger failed", append(fields, zap.Error(partial), zap.Any("context", partial.Details))...)
		return false
	}
}
