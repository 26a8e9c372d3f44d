// Команда release_holds выполняет один проход освобождения неоплаченных удержаний.
// Предназначена для запуска по расписанию (cron, Kubernetes CronJob)
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/config"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	"github.com/m04kA/SMC-RentalService/internal/service/holds"
	releaseUnpaidHoldsUC "github.com/m04kA/SMC-RentalService/internal/usecase/release_unpaid_holds"
	"github.com/m04kA/SMC-RentalService/pkg/clock"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

type eventPublisher interface {
	PublishWithGracefulDegradation(ctx context.Context, event events.Event)
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.toml", "path to config file")
	timeout := flag.Duration("timeout", time.Minute, "run timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return 1
	}
	defer db.Close()

	wrappedDB := dbmetrics.Wrap(db, nil)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)

	var publisher eventPublisher = events.Noop{}
	if cfg.RabbitMQ.Enabled {
		rabbit := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue,
			time.Duration(cfg.RabbitMQ.Timeout)*time.Second, log)
		defer rabbit.Close()
		publisher = rabbit
	}

	// Метрики процесса не экспортируются, счетчики событий не ведутся
	var noMetrics *metrics.Metrics

	holdsSvc := holds.NewService(reservationRepository, slotRepository, txMgr, publisher, noMetrics, log)
	useCase := releaseUnpaidHoldsUC.NewUseCase(
		reservationRepository,
		holdsSvc,
		clock.NewLocal(cfg.Clock.UTCOffsetMinutes),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := useCase.Execute(ctx)
	if err != nil {
		log.Error("ReleaseHolds: run failed: %v", err)
		return 1
	}

	log.Info("ReleaseHolds: released=%d, failed=%d, ran_at=%s",
		result.ReleasedCount, result.FailedCount, result.RanAt.Format(time.RFC3339))
	if result.FailedCount > 0 {
		return 2
	}
	return 0
}
