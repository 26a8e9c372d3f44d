package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applyStormInsuranceHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/apply_storm_insurance"
	cancelReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_reservation"
	generateSlotsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/generate_slots"
	getAmountDueHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_amount_due"
	getClientBalanceHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_client_balance"
	getClientReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_client_reservations"
	getReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_reservation"
	healthHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/health"
	listProductsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_products"
	listSlotsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_slots"
	payBatchHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/pay_batch"
	payReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/pay_reservation"
	releaseHoldsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/release_holds"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/internal/infra/cache/ratecache"
	clientRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/client"
	deviceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/device"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	productRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/product"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-RentalService/internal/integrations/events"
	catalogService "github.com/m04kA/SMC-RentalService/internal/service/catalog"
	"github.com/m04kA/SMC-RentalService/internal/service/equipment"
	"github.com/m04kA/SMC-RentalService/internal/service/holds"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	reservationsService "github.com/m04kA/SMC-RentalService/internal/service/reservations"
	applyStormInsuranceUC "github.com/m04kA/SMC-RentalService/internal/usecase/apply_storm_insurance"
	cancelReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
	generateSlotsUC "github.com/m04kA/SMC-RentalService/internal/usecase/generate_slots"
	getAmountDueUC "github.com/m04kA/SMC-RentalService/internal/usecase/get_amount_due"
	payReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/pay_reservation"
	releaseUnpaidHoldsUC "github.com/m04kA/SMC-RentalService/internal/usecase/release_unpaid_holds"
	"github.com/m04kA/SMC-RentalService/pkg/clock"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// eventPublisher общий интерфейс RabbitMQ издателя и заглушки
type eventPublisher interface {
	PublishWithGracefulDegradation(ctx context.Context, event events.Event)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RentalService...")

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	clientRepository := clientRepo.NewRepository(wrappedDB)
	productRepository := productRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	deviceRepository := deviceRepo.NewRepository(wrappedDB)

	// Кэш курсов валют (без Redis запросы идут напрямую в БД)
	var rateCache *ratecache.Cache
	if cfg.Redis.Enabled {
		redisClient := ratecache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if redisClient == nil {
			log.Warn("Redis is unavailable at %s, exchange rates are read from database", cfg.Redis.Addr)
		} else {
			defer redisClient.Close()
			log.Info("Exchange rate cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.RateTTLDuration())
		}
		rateCache = ratecache.New(redisClient, productRepository, cfg.Redis.RateTTLDuration(), log)
	} else {
		rateCache = ratecache.New(nil, productRepository, cfg.Redis.RateTTLDuration(), log)
	}

	// Публикация событий
	var publisher eventPublisher = events.Noop{}
	if cfg.RabbitMQ.Enabled {
		rabbit := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue,
			time.Duration(cfg.RabbitMQ.Timeout)*time.Second, log)
		defer rabbit.Close()
		publisher = rabbit
		log.Info("Event publishing enabled (queue=%s)", cfg.RabbitMQ.Queue)
	}

	timeProvider := clock.NewLocal(cfg.Clock.UTCOffsetMinutes)
	rates := pricing.NewRateLoader(rateCache)
	allocator := equipment.NewAllocator(deviceRepository)

	// Сервисы
	holdsSvc := holds.NewService(reservationRepository, slotRepository, txMgr, publisher, metricsCollector, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		slotRepository,
		productRepository,
		paymentRepository,
		clientRepository,
		log,
	)
	catalogSvc := catalogService.NewService(productRepository, slotRepository, timeProvider, log)

	// Use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		clientRepository,
		productRepository,
		slotRepository,
		reservationRepository,
		allocator,
		txMgr,
		timeProvider,
		publisher,
		metricsCollector,
		log,
	)
	payReservationUseCase := payReservationUC.NewUseCase(
		reservationRepository,
		slotRepository,
		productRepository,
		paymentRepository,
		rates,
		holdsSvc,
		txMgr,
		timeProvider,
		publisher,
		metricsCollector,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		slotRepository,
		paymentRepository,
		clientRepository,
		txMgr,
		timeProvider,
		publisher,
		metricsCollector,
		log,
	)
	applyStormInsuranceUseCase := applyStormInsuranceUC.NewUseCase(
		clientRepository,
		reservationRepository,
		slotRepository,
		paymentRepository,
		txMgr,
		timeProvider,
		publisher,
		metricsCollector,
		log,
	)
	releaseUnpaidHoldsUseCase := releaseUnpaidHoldsUC.NewUseCase(reservationRepository, holdsSvc, timeProvider, log)
	getAmountDueUseCase := getAmountDueUC.NewUseCase(
		clientRepository,
		reservationRepository,
		productRepository,
		rates,
		log,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(slotRepository, txMgr, timeProvider, log)

	// Handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	payReservation := payReservationHandler.NewHandler(payReservationUseCase, log)
	payBatch := payBatchHandler.NewHandler(payReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	applyStormInsurance := applyStormInsuranceHandler.NewHandler(applyStormInsuranceUseCase, log)
	releaseHolds := releaseHoldsHandler.NewHandler(releaseUnpaidHoldsUseCase, log)
	getAmountDue := getAmountDueHandler.NewHandler(getAmountDueUseCase, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationsSvc, log)
	getClientBalance := getClientBalanceHandler.NewHandler(reservationsSvc, log)
	listProducts := listProductsHandler.NewHandler(catalogSvc, log)
	listSlots := listSlotsHandler.NewHandler(catalogSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Каталог и слоты ---
	api.HandleFunc("/products", listProducts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/slots/{slotId}/cancel", cancelReservation.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/pay", payReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/payments/batch", payBatch.Handle).Methods(http.MethodPost)
	api.HandleFunc("/holds/release", releaseHolds.Handle).Methods(http.MethodPost)

	// --- Клиенты ---
	api.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId}/balance", getClientBalance.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId}/amount-due", getAmountDue.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId}/storm-insurance", applyStormInsurance.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
