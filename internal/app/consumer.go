package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go-empledger/internal/bootstrap"
	"go-empledger/internal/config"
	"go-empledger/internal/employeesalary"
	"go-empledger/internal/events"
	"go-empledger/internal/messaging/kafka/consumer"
	"go-empledger/internal/shared/connection"
	"go-empledger/internal/shared/sequence"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer reconciles salary ledgers from employee lifecycle events until
// SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	employeeSalaryService := employeesalary.NewService(sqlDB, employeeSalaryRepo, sequence.NewGenerator(gormDB))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopMetrics := serveMetrics(cfg.MetricsAddr, logger)
	defer stopMetrics()

	consumer.ConsumeEmployeeLifecycle(ctx, reader, employeeSalaryService, logger)

	bootstrap.NewStdoutAuditLogger().Log(context.Background(), bootstrap.AuditLog{
		Action:  "CONSUMER_SHUTDOWN",
		Message: "Salary ledger reconciler stopped",
		Meta:    map[string]any{"group_id": cfg.Kafka.GroupID},
	})
	return nil
}
