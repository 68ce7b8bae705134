// Package app собирает зависимости сервиса из конфигурации (общие для HTTP-сервера и calendarctl)
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CalendarService/internal/config"
	availabilityCache "github.com/m04kA/SMC-CalendarService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-CalendarService/internal/infra/migrations"
	availabilityRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/availability"
	calendarRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/calendar"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
	calendarsService "github.com/m04kA/SMC-CalendarService/internal/service/calendars"
	applyRangeUC "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_range"
	applyRecurringUC "github.com/m04kA/SMC-CalendarService/internal/usecase/apply_recurring"
	importRecordsUC "github.com/m04kA/SMC-CalendarService/internal/usecase/import_records"
	pruneHistoryUC "github.com/m04kA/SMC-CalendarService/internal/usecase/prune_history"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

// App зависимости сервиса
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics // nil, если метрики выключены

	DB        *sql.DB
	WrappedDB *dbmetrics.DB
	TxManager *txmanager.Manager
	Redis     *goredis.Client // nil, если кеш выключен
	Cache     *availabilityCache.Cache

	CalendarRepository     *calendarRepo.Repository
	AvailabilityRepository *availabilityRepo.Repository

	CalendarsService    *calendarsService.Service
	AvailabilityService *availabilityService.Service

	ApplyRange     *applyRangeUC.UseCase
	ApplyRecurring *applyRecurringUC.UseCase
	ImportRecords  *importRecordsUC.UseCase
	PruneHistory   *pruneHistoryUC.UseCase

	stopMetricsCh chan struct{}
}

// New подключается к БД (и Redis, если включен) и собирает сервисы и use cases
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*App, error) {
	a := &App{
		Config:        cfg,
		Logger:        log,
		Metrics:       m,
		stopMetricsCh: make(chan struct{}),
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("app: open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("app: ping database: %w", err)
	}
	a.DB = db
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	// Метрики пула собираются только при включенных метриках, запросы оборачиваются всегда
	if m != nil {
		a.WrappedDB = dbmetrics.WrapWithDefault(db, m, a.stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		a.WrappedDB = dbmetrics.Wrap(db, nil)
	}

	a.TxManager = txmanager.NewTransactionManager(a.WrappedDB,
		txmanager.WithMaxRetries(cfg.Database.MaxTxRetries),
		txmanager.WithRetryObserver(m),
	)

	// Кеш
	a.Cache = availabilityCache.NewNoop()
	if cfg.Redis.Enabled {
		rdb, err := availabilityCache.NewClient(ctx, availabilityCache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// Без кеша сервис работает, только медленнее
			log.Warn("Redis unavailable, cache disabled: %v", err)
		} else {
			a.Redis = rdb
			a.Cache = availabilityCache.New(rdb, cfg.Redis.TTLDuration(), log, m)
			log.Info("Availability cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTLDuration())
		}
	}

	// Репозитории
	a.CalendarRepository = calendarRepo.NewRepository(a.WrappedDB)
	a.AvailabilityRepository = availabilityRepo.NewRepository(a.WrappedDB)

	// Сервисы
	a.CalendarsService = calendarsService.NewService(a.CalendarRepository, log)
	a.AvailabilityService = availabilityService.NewService(
		a.CalendarRepository,
		a.AvailabilityRepository,
		a.Cache,
		m,
		&availabilityService.RealTimeProvider{},
		log,
	)

	// Use cases
	a.ApplyRange = applyRangeUC.NewUseCase(
		a.CalendarRepository,
		a.AvailabilityRepository,
		a.Cache,
		a.TxManager,
		m,
		log,
	)
	a.ApplyRecurring = applyRecurringUC.NewUseCase(
		a.CalendarRepository,
		a.AvailabilityRepository,
		a.Cache,
		a.TxManager,
		m,
		log,
	)
	a.ImportRecords = importRecordsUC.NewUseCase(
		a.CalendarRepository,
		a.AvailabilityRepository,
		a.Cache,
		a.TxManager,
		m,
		log,
	)
	a.PruneHistory = pruneHistoryUC.NewUseCase(
		a.CalendarRepository,
		a.AvailabilityRepository,
		a.Cache,
		a.TxManager,
		m,
		cfg.Scheduler.RetentionDays,
		log,
	)

	return a, nil
}

// Location часовой пояс календарей по умолчанию
func (a *App) Location() *time.Location {
	loc, err := time.LoadLocation(a.Config.Calendar.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Close останавливает сбор метрик и закрывает соединения
func (a *App) Close() {
	close(a.stopMetricsCh)
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("Failed to close redis client: %v", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("Failed to close database: %v", err)
	}
}
