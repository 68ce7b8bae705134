package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
)

// HeaderAdminToken заголовок с токеном администратора
const HeaderAdminToken = "X-Admin-Token"

// AdminGate проверяет токен администратора по bcrypt-хешу из конфигурации
// Пустой хеш означает, что режим администратора выключен.
type AdminGate struct {
	hash   []byte
	logger Logger
}

// NewAdminGate создает проверку токена
func NewAdminGate(tokenHash string, logger Logger) *AdminGate {
	return &AdminGate{hash: []byte(tokenHash), logger: logger}
}

// IsAdmin возвращает true, если запрос содержит корректный токен
func (g *AdminGate) IsAdmin(r *http.Request) bool {
	token := r.Header.Get(HeaderAdminToken)
	if len(g.hash) == 0 || token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(token)) == nil
}

// Require пропускает только запросы администратора
func (g *AdminGate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.IsAdmin(r) {
			g.logger.Warn("%s %s - admin token rejected, request_id=%s", r.Method, r.URL.Path, GetRequestID(r.Context()))
			handlers.RespondUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
