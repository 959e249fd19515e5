package producer

import (
	"context"
	"errors"
	"testing"

	"go-empledger/internal/messaging/kafka"
	kafkaMock "go-empledger/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs []kafkago.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	event := kafka.OutboxEvent{
		ID:            "outbox-1",
		RequestID:     "REQ-1",
		AggregateType: "employee",
		AggregateID:   "emp-1",
		EventType:     "employee_created",
		Topic:         "hr.employee.lifecycle.v1",
		Payload:       []byte(`{"employee_id":"emp-1"}`),
		Status:        kafka.OutboxStatusPending,
	}

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{event}, nil)
		repo.EXPECT().MarkSent(ctx, "outbox-1").Return(nil)

		err := processPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Len(t, writer.msgs, 1)
		assert.Equal(t, "emp-1", string(writer.msgs[0].Key))
		assert.Equal(t, event.Topic, writer.msgs[0].Topic)
		assert.Equal(t, "REQ-1", headerValue(writer.msgs[0], "request_id"))
		assert.Equal(t, "employee_created", headerValue(writer.msgs[0], "event_type"))
	})

	t.Run("publish failure schedules retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{err: errors.New("broker down")}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{event}, nil)
		repo.EXPECT().MarkFailed(ctx, "outbox-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), gomock.Any()).Times(0)

		err := processPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
	})

	t.Run("list failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}

func TestToMessage_OmitsEmptyRequestID(t *testing.T) {
	msg := toMessage(kafka.OutboxEvent{ID: "x", AggregateID: "a", Topic: "t", Payload: []byte("{}")})

	assert.Equal(t, "", headerValue(msg, "request_id"))
	assert.Equal(t, "x", headerValue(msg, "outbox_id"))
}
