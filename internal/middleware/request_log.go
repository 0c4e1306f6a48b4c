package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"cleanguard-backend/internal/logger"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

// RequestLogging tags the request context with a request id and writes
// one access log line per request. Incoming X-Request-ID values are reused.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := logger.WithLogger(r.Context(), map[string]interface{}{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		elapsed := time.Since(start).Milliseconds()
		if wrapped.statusCode >= http.StatusInternalServerError {
			logger.WarnLog(ctx, "request finished status=%d bytes=%d duration_ms=%d", wrapped.statusCode, wrapped.bytesWritten, elapsed)
			return
		}
		logger.DebugLog(ctx, "request finished status=%d bytes=%d duration_ms=%d", wrapped.statusCode, wrapped.bytesWritten, elapsed)
	})
}
