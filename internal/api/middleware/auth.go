package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/branchmaster/BM-BookingService/internal/api/handlers"
)

type contextKey string

const staffIDKey contextKey = "staffID"

const headerStaffID = "X-Staff-ID"

// Auth проверяет наличие идентификатора сотрудника в заголовке X-Staff-ID
// и кладет его в контекст запроса. Полная аутентификация живет на шлюзе -
// здесь только пропуск и проброс идентификатора для журнала действий
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerStaffID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "заголовок X-Staff-ID обязателен")
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный X-Staff-ID")
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID извлекает идентификатор сотрудника из контекста
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}
