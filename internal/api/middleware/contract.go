package middleware

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Metrics интерфейс HTTP метрик
type Metrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}
