package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addUnavailableDateHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/add_unavailable_date"
	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	createRecurringHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_recurring_bookings"
	deleteProviderConfigHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_provider_config"
	getAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_client_bookings"
	getProviderBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_provider_bookings"
	getProviderConfigHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_provider_config"
	getRecurrenceGroupHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_recurrence_group"
	getUnavailableDatesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_unavailable_dates"
	listProviderConfigsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_provider_configs"
	recordPaymentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/record_payment"
	removeUnavailableDateHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/remove_unavailable_date"
	rescheduleBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_booking"
	setAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/set_availability"
	updateProviderConfigHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_provider_config"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/paymentgateway"
	availabilityService "github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	configService "github.com/m04kA/SMC-SchedulingService/internal/service/config"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	createRecurringUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_bookings"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SchedulingService/migrations"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/migrator"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// eventPublisher общий тип для всех потребителей канала уведомлений
type eventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

func main() {
	configPath := "config.toml"
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopBackgroundCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.MigrateOnStart {
		version, err := migrator.Up(db, migrations.FS, ".")
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database schema is at version %d", version)
	}

	// Все запросы идут через обертку: без метрик она только пробрасывает вызовы
	var dbRecorder dbmetrics.Recorder
	if cfg.Metrics.Enabled {
		dbRecorder = metricsCollector
	}
	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopBackgroundCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Database.TxMaxRetries))

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	catalogClient := catalogservice.NewClient(
		cfg.Catalog.URL,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	if cfg.Payments.StripeSecretKey == "" {
		log.Warn("Stripe secret key is empty: refunds of paid bookings will fail")
	}
	paymentClient := paymentgateway.NewClient(cfg.Payments.StripeSecretKey, nil, log)

	var publisher eventPublisher
	if cfg.Notifications.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Notifications.RedisAddr,
			Password: cfg.Notifications.RedisPassword,
			DB:       cfg.Notifications.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Уведомления не критичны для бронирования: работаем дальше, ошибки публикации логируются
			log.Warn("Redis is not reachable at %s: %v", cfg.Notifications.RedisAddr, err)
		}
		cancelPing()

		publisher = notifier.New(rdb, cfg.Notifications.Queue, log)
		log.Info("Notifications enabled (redis=%s, queue=%s)", cfg.Notifications.RedisAddr, cfg.Notifications.Queue)
	}

	// Инициализируем сервисы
	configSvc := configService.NewService(
		configRepository,
		catalogClient,
		cfg.Scheduling.ScheduleDefaults(),
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		paymentClient,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		configSvc,
		catalogClient,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	createRecurringUseCase := createRecurringUC.NewUseCase(
		createBookingUseCase,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		configSvc,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		configSvc,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(availabilitySvc, log)
	getUnavailableDates := getUnavailableDatesHandler.NewHandler(availabilitySvc, log)
	addUnavailableDate := addUnavailableDateHandler.NewHandler(availabilitySvc, log)
	removeUnavailableDate := removeUnavailableDateHandler.NewHandler(availabilitySvc, log)
	getProviderConfig := getProviderConfigHandler.NewHandler(configSvc, log)
	listProviderConfigs := listProviderConfigsHandler.NewHandler(configSvc, log)
	updateProviderConfig := updateProviderConfigHandler.NewHandler(configSvc, log)
	deleteProviderConfig := deleteProviderConfigHandler.NewHandler(configSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createRecurring := createRecurringHandler.NewHandler(createRecurringUseCase, log)
	getRecurrenceGroup := getRecurrenceGroupHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	recordPayment := recordPaymentHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Ограничение частоты запросов: публичные маршруты по IP, защищенные по пользователю
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, 3*time.Minute)
		go limiter.RunCleanup(time.Minute, stopBackgroundCh)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if limiter != nil {
		public.Use(limiter.Middleware)
	}

	// Сетка слотов на дату
	public.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание и нерабочие дни провайдера
	public.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	public.HandleFunc("/providers/{providerId}/unavailable-dates", getUnavailableDates.Handle).Methods(http.MethodGet)

	// Действующая конфигурация слотов
	public.HandleFunc("/providers/{providerId}/config", getProviderConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	if limiter != nil {
		protected.Use(limiter.UserMiddleware)
	}

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/recurring", createRecurring.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/recurring/{groupId}", getRecurrenceGroup.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Управление провайдером ---
	protected.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/availability", setAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/unavailable-dates", addUnavailableDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/unavailable-dates/{dateId}", removeUnavailableDate.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/providers/{providerId}/config", updateProviderConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/config", deleteProviderConfig.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/providers/{providerId}/configs", listProviderConfigs.Handle).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (вызываются платежным контуром внутри сети)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/bookings/{bookingId:[0-9]+}/payment", recordPayment.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор статистики пула и очистку лимитера
	close(stopBackgroundCh)

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
