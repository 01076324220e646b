package studiotest

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// statusWriter captures the status code the fake endpoint replied with so it
// can be logged next to the request id the client stamped on the call.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// LoggingMiddleware logs every call the fake Studio server handles, keyed by
// the client's X-Request-Id, which makes failing client tests much easier to
// correlate with their requests.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		logFn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Handlers that never call WriteHeader reply 200.
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			logger.Infow("studio request",
				"path", r.URL.Path,
				"method", r.Method,
				"status", sw.status,
				"request_id", r.Header.Get("X-Request-Id"),
				"duration", time.Since(start),
			)
		}
		return http.HandlerFunc(logFn)
	}
}
