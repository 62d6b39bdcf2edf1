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

	branchesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/branches"
	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	catalogHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/catalog"
	companyStatisticsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/company_statistics"
	couponsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/coupons"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	eventsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/events"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getCompanyBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_company_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reschedule_booking"
	staffWorkingHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/staff_working_hours"
	updatePaymentStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
	categoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/category"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	couponRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/coupon"
	eventRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/event"
	orderRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/order"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	staffTimesRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stafftimes"
	userServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	availabilityService "github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	branchesService "github.com/m04kA/SMC-AppointmentService/internal/service/branches"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	couponsService "github.com/m04kA/SMC-AppointmentService/internal/service/coupons"
	eventsService "github.com/m04kA/SMC-AppointmentService/internal/service/events"
	staffService "github.com/m04kA/SMC-AppointmentService/internal/service/staff"
	statisticsService "github.com/m04kA/SMC-AppointmentService/internal/service/statistics"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/internal/worker/reconciler"
	"github.com/m04kA/SMC-AppointmentService/migrations"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	// Без метрик обёртка работает как прозрачный прокси
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	if cfg.Database.ApplyMigrations {
		if err := migrations.Apply(context.Background(), wrappedDB); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Database.TxMaxRetries)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	branchRepository := branchRepo.NewRepository(wrappedDB)
	companyRepository := companyRepo.NewRepository(wrappedDB)
	categoryRepository := categoryRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	staffTimesRepository := staffTimesRepo.NewRepository(wrappedDB)
	eventRepository := eventRepo.NewRepository(wrappedDB)
	couponRepository := couponRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	statisticsSvc := statisticsService.NewService(companyRepository, categoryRepository, metricsCollector, log)
	dispatcher := statisticsService.NewDispatcher(statisticsSvc)
	availability := availabilityService.NewChecker(branchRepository, eventRepository, location, cfg.Booking.EnforceAvailability)
	clock := &bookingsService.RealTimeProvider{}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		orderRepository,
		availability,
		dispatcher,
		txMgr,
		metricsCollector,
		log,
	)
	branchSvc := branchesService.NewService(
		branchRepository,
		companyRepository,
		dispatcher,
		txMgr,
		metricsCollector,
		log,
	).WithStrictWindows(cfg.Booking.EnforceAvailability)
	catalogSvc := catalogService.NewService(
		companyRepository,
		serviceRepository,
		categoryRepository,
		dispatcher,
		txMgr,
		metricsCollector,
		log,
	)
	staffSvc := staffService.NewService(
		staffTimesRepository,
		userClient,
		dispatcher,
		txMgr,
		metricsCollector,
		log,
	)
	eventSvc := eventsService.NewService(eventRepository, branchRepository, clock, location, metricsCollector, log)
	couponSvc := couponsService.NewService(couponRepository, serviceRepository, clock, metricsCollector, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		orderRepository,
		serviceRepository,
		availability,
		dispatcher,
		txMgr,
		metricsCollector,
		log,
	)

	// Фоновая сверка денормализованных счетчиков
	var statsReconciler *reconciler.Reconciler
	if cfg.Statistics.ReconcileEnabled {
		statsReconciler, err = reconciler.New(
			statisticsSvc,
			cfg.Statistics.ReconcileSchedule,
			time.Duration(cfg.Statistics.ReconcileTimeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to create statistics reconciler: %v", err)
		}
		statsReconciler.Start()
		log.Info("Statistics reconciler started (schedule=%q)", cfg.Statistics.ReconcileSchedule)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	branches := branchesHandler.NewHandler(branchSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	companyStatistics := companyStatisticsHandler.NewHandler(statisticsSvc, log)
	staffWorkingHours := staffWorkingHoursHandler.NewHandler(staffSvc, log)
	events := eventsHandler.NewHandler(eventSvc, log)
	coupons := couponsHandler.NewHandler(couponSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/branches", branches.List).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}", branches.Get).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}/off-dates", events.ListOffDates).Methods(http.MethodGet)
	api.HandleFunc("/categories", catalog.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{categoryId}", catalog.GetCategory).Methods(http.MethodGet)
	api.HandleFunc("/companies", catalog.ListCompanies).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyId}/statistics", companyStatistics.Get).Methods(http.MethodGet)
	api.HandleFunc("/coupons/{code}", coupons.Get).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	// cancel-by-code регистрируется раньше {bookingId}
	protected.HandleFunc("/bookings/cancel-by-code", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment-status", updatePaymentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Компании и каталог ---
	protected.HandleFunc("/companies", catalog.CreateCompany).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{companyId}", catalog.UpdateCompany).Methods(http.MethodPut)
	protected.HandleFunc("/companies/{companyId}/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/statistics/recompute", companyStatistics.Recompute).Methods(http.MethodPost)
	protected.HandleFunc("/services", catalog.CreateService).Methods(http.MethodPost)
	protected.HandleFunc("/categories", catalog.CreateCategory).Methods(http.MethodPost)
	protected.HandleFunc("/categories/{categoryId}", catalog.UpdateCategory).Methods(http.MethodPut)
	protected.HandleFunc("/categories/{categoryId}/services/all", catalog.ClearServices).Methods(http.MethodDelete)
	protected.HandleFunc("/categories/{categoryId}/services", catalog.AddServices).Methods(http.MethodPost)
	protected.HandleFunc("/categories/{categoryId}/services", catalog.RemoveServices).Methods(http.MethodDelete)

	// --- Филиалы и выходные дни ---
	protected.HandleFunc("/branches", branches.Create).Methods(http.MethodPost)
	protected.HandleFunc("/branches/{branchId}", branches.Update).Methods(http.MethodPut)
	protected.HandleFunc("/branches/{branchId}", branches.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/events", events.Create).Methods(http.MethodPost)

	// --- Сотрудники ---
	protected.HandleFunc("/staff/{userId}/working-hours", staffWorkingHours.Set).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{userId}/working-hours", staffWorkingHours.Get).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{userId}/working-hours", staffWorkingHours.Delete).Methods(http.MethodDelete)

	// --- Купоны ---
	protected.HandleFunc("/coupons", coupons.Create).Methods(http.MethodPost)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if statsReconciler != nil {
		if err := statsReconciler.Stop(shutdownCtx); err != nil {
			log.Error("Statistics reconciler did not stop in time: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
