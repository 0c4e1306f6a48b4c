package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"cleanguard-backend/internal/logger"
)

func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorLog(r.Context(), nil, "PANIC RECOVERED: %s\n%s", fmt.Sprint(err), debug.Stack())

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprintf(w, `{"error": "Internal server error"}`)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
