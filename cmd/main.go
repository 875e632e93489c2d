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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/create_appointment"
	createResourceHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/create_resource"
	createUnavailabilityHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/create_unavailability"
	deleteResourceHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/delete_resource"
	deleteUnavailabilityHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/delete_unavailability"
	getAvailabilityHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/get_availability"
	getBranchAppointmentsHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/get_branch_appointments"
	getOperatingHoursHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/get_operating_hours"
	listBranchesHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/list_branches"
	listResourcesHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/list_resources"
	updateOperatingHoursHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/update_operating_hours"
	updateResourceHandler "github.com/branchmaster/BM-BookingService/internal/api/handlers/update_resource"
	"github.com/branchmaster/BM-BookingService/internal/api/middleware"
	"github.com/branchmaster/BM-BookingService/internal/audit"
	"github.com/branchmaster/BM-BookingService/internal/config"
	appointmentRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/appointment"
	auditRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/audit"
	branchRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/branch"
	resourceRepo "github.com/branchmaster/BM-BookingService/internal/infra/storage/resource"
	appointmentsService "github.com/branchmaster/BM-BookingService/internal/service/appointments"
	branchesService "github.com/branchmaster/BM-BookingService/internal/service/branches"
	resourcesService "github.com/branchmaster/BM-BookingService/internal/service/resources"
	createAppointmentUC "github.com/branchmaster/BM-BookingService/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/branchmaster/BM-BookingService/internal/usecase/get_availability"
	"github.com/branchmaster/BM-BookingService/pkg/dbmetrics"
	"github.com/branchmaster/BM-BookingService/pkg/logger"
	"github.com/branchmaster/BM-BookingService/pkg/metrics"
	"github.com/branchmaster/BM-BookingService/pkg/simpletxmanager"
	"github.com/branchmaster/BM-BookingService/pkg/txmanager"
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

	log.Info("Starting BM-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Применяем миграции
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем репозитории (с метриками или без)
	var (
		branchRepository      *branchRepo.Repository
		resourceRepository    *resourceRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		auditRepository       *auditRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		branchRepository = branchRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		branchRepository = branchRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	auditSvc := audit.NewService(auditRepository, log)
	branchSvc := branchesService.NewService(branchRepository, auditSvc, log)
	resourceSvc := resourcesService.NewService(branchRepository, resourceRepository, auditSvc, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		branchRepository,
		resourceRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		branchRepository,
		resourceRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	listBranches := listBranchesHandler.NewHandler(branchSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getBranchAppointments := getBranchAppointmentsHandler.NewHandler(appointmentSvc, log)
	getOperatingHours := getOperatingHoursHandler.NewHandler(branchSvc, log)
	updateOperatingHours := updateOperatingHoursHandler.NewHandler(branchSvc, log)
	listResources := listResourcesHandler.NewHandler(resourceSvc, log)
	createResource := createResourceHandler.NewHandler(resourceSvc, log)
	updateResource := updateResourceHandler.NewHandler(resourceSvc, log)
	deleteResource := deleteResourceHandler.NewHandler(resourceSvc, log)
	createUnavailability := createUnavailabilityHandler.NewHandler(resourceSvc, log)
	deleteUnavailability := deleteUnavailabilityHandler.NewHandler(resourceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список активных филиалов
	api.HandleFunc("/branches", listBranches.Handle).Methods(http.MethodGet)

	// Доступные слоты филиала за диапазон дат
	api.HandleFunc("/branches/{branchId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Отмена записи
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи филиала ---
	protected.HandleFunc("/branches/{branchId}/appointments", getBranchAppointments.Handle).Methods(http.MethodGet)

	// --- Часы работы ---
	protected.HandleFunc("/branches/{branchId}/operating-hours", getOperatingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branchId}/operating-hours/{hoursId}", updateOperatingHours.Handle).Methods(http.MethodPut)

	// --- Окна ресурсов ---
	protected.HandleFunc("/branches/{branchId}/resources", listResources.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branchId}/resources", createResource.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/branches/{branchId}/resources/{resourceId}", updateResource.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/branches/{branchId}/resources/{resourceId}", deleteResource.Handle).Methods(http.MethodDelete)

	// --- Блокировки ресурсов ---
	protected.HandleFunc("/branches/{branchId}/unavailability", createUnavailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/branches/{branchId}/unavailability/{unavailabilityId}", deleteUnavailability.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
