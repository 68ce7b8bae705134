package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applyRangeHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/apply_range"
	applyRecurringHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/apply_recurring"
	exportICSHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/export_ics"
	exportXLSXHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/export_xlsx"
	getAvailabilityHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_availability"
	getCalendarHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_calendar"
	getMonthHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_month"
	getStatusHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_status"
	healthHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/health"
	updateCalendarHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_calendar"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/app"
	"github.com/m04kA/SMC-CalendarService/internal/config"
	"github.com/m04kA/SMC-CalendarService/internal/scheduler"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-CalendarService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных и собираем сервисы
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := app.New(startCtx, cfg, log, metricsCollector)
	cancelStart()
	if err != nil {
		log.Fatal("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if cfg.Admin.TokenHash == "" {
		log.Warn("Admin token hash is not configured, write endpoints will reject every request")
	}
	adminGate := middleware.NewAdminGate(cfg.Admin.TokenHash, log)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(application.CalendarsService, log)
	updateCalendar := updateCalendarHandler.NewHandler(application.CalendarsService, log)
	getAvailability := getAvailabilityHandler.NewHandler(application.AvailabilityService, log)
	getStatus := getStatusHandler.NewHandler(application.AvailabilityService, log)
	getMonth := getMonthHandler.NewHandler(application.AvailabilityService, adminGate, log)
	exportICS := exportICSHandler.NewHandler(application.AvailabilityService, log)
	exportXLSX := exportXLSXHandler.NewHandler(application.AvailabilityService, log)
	applyRange := applyRangeHandler.NewHandler(application.ApplyRange, log)
	applyRecurring := applyRecurringHandler.NewHandler(application.ApplyRecurring, log)
	health := healthHandler.NewHandler(application.WrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Настройки календаря
	api.HandleFunc("/calendars/{slug}", getCalendar.Handle).Methods(http.MethodGet)

	// Набор интервалов и статус дня
	api.HandleFunc("/calendars/{slug}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{slug}/availability/status", getStatus.Handle).Methods(http.MethodGet)

	// Сетка месяца (режим администратора - по токену)
	api.HandleFunc("/calendars/{slug}/month", getMonth.Handle).Methods(http.MethodGet)

	// iCalendar лента
	api.HandleFunc("/calendars/{slug}/availability.ics", exportICS.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(adminGate.Require)

	admin.HandleFunc("/calendars/{slug}", updateCalendar.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/calendars/{slug}/availability", applyRange.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/calendars/{slug}/availability/recurring", applyRecurring.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/calendars/{slug}/availability.xlsx", exportXLSX.Handle).Methods(http.MethodGet)

	// Планировщик очистки истории
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(
			cfg.Scheduler.PruneCron,
			application.Location(),
			application.PruneHistory,
			metricsCollector,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize scheduler: %v", err)
		}
		sched.Start()
		log.Info("Scheduler started (prune_cron=%q, retention_days=%d)",
			cfg.Scheduler.PruneCron, cfg.Scheduler.RetentionDays)
	}

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

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler did not stop in time: %v", err)
		} else {
			log.Info("Scheduler stopped")
		}
	}

	log.Info("Server stopped gracefully")
}
