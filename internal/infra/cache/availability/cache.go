package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
)

const keyPrefix = "calendar:availability:"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Metrics счетчик обращений к кешу
type Metrics interface {
	IncCacheRequest(result string)
}

// Options параметры подключения к Redis
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Cache read-through кеш наборов доступности в Redis
// Ошибки Redis только логируются: кеш никогда не ломает запрос. Нулевой rdb - кеш выключен.
type Cache struct {
	rdb     goredis.Cmdable
	ttl     time.Duration
	logger  Logger
	metrics Metrics
}

// NewClient подключается к Redis и проверяет соединение
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("availability.cache: redis ping %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

// New создает кеш поверх клиента Redis
func New(rdb goredis.Cmdable, ttl time.Duration, logger Logger, metrics Metrics) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, logger: logger, metrics: metrics}
}

// NewNoop создает выключенный кеш
func NewNoop() *Cache {
	return &Cache{}
}

// Enabled возвращает true, если кеш подключен к Redis
func (c *Cache) Enabled() bool {
	return c.rdb != nil
}

// Key ключ набора календаря
func Key(slug string) string {
	return keyPrefix + slug
}

// Get возвращает набор из кеша; false - промах или ошибка
func (c *Cache) Get(ctx context.Context, slug string) (availability.Set, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, Key(slug)).Bytes()
	if errors.Is(err, goredis.Nil) {
		c.count("miss")
		return nil, false
	}
	if err != nil {
		c.count("error")
		c.logger.Warn("Cache.Get: redis error for calendar=%s: %v", slug, err)
		return nil, false
	}

	var set availability.Set
	if err := json.Unmarshal(data, &set); err != nil {
		c.count("error")
		c.logger.Warn("Cache.Get: corrupt entry for calendar=%s, dropping: %v", slug, err)
		c.Invalidate(ctx, slug)
		return nil, false
	}

	c.count("hit")
	return set, true
}

// SetIfAbsent кладет прочитанный из базы набор, только если ключа еще нет
// Читатель не перезаписывает набор, сохраненный писателем после фиксации транзакции.
func (c *Cache) SetIfAbsent(ctx context.Context, slug string, set availability.Set) {
	if !c.Enabled() {
		return
	}

	data, ok := c.encode(slug, set)
	if !ok {
		return
	}

	if err := c.rdb.SetNX(ctx, Key(slug), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache.SetIfAbsent: redis error for calendar=%s: %v", slug, err)
	}
}

// Store сохраняет зафиксированный набор поверх текущего значения
// Если записать не удалось, ключ удаляется, чтобы не отдавать старый набор.
func (c *Cache) Store(ctx context.Context, slug string, set availability.Set) {
	if !c.Enabled() {
		return
	}

	data, ok := c.encode(slug, set)
	if !ok {
		c.Invalidate(ctx, slug)
		return
	}

	if err := c.rdb.Set(ctx, Key(slug), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache.Store: redis error for calendar=%s: %v", slug, err)
		c.Invalidate(ctx, slug)
	}
}

func (c *Cache) encode(slug string, set availability.Set) ([]byte, bool) {
	if set == nil {
		set = availability.Set{}
	}
	data, err := json.Marshal(set)
	if err != nil {
		c.logger.Warn("Cache: marshal calendar=%s: %v", slug, err)
		return nil, false
	}
	return data, true
}

// Invalidate удаляет набор из кеша
func (c *Cache) Invalidate(ctx context.Context, slug string) {
	if !c.Enabled() {
		return
	}

	if err := c.rdb.Del(ctx, Key(slug)).Err(); err != nil {
		c.logger.Warn("Cache.Invalidate: redis error for calendar=%s: %v", slug, err)
	}
}

func (c *Cache) count(result string) {
	if c.metrics != nil {
		c.metrics.IncCacheRequest(result)
	}
}
