package middlewares

import (
	"net/http"
	"time"

	"github.com/tokengate/authcore/internal/metrics"
	"github.com/tokengate/authcore/internal/observability/logger"
)

// WithLogging logs every request with structured fields and injects a
// request-scoped logger into the context.
func WithLogging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLog := logger.L().With(
				logger.RequestID(GetRequestID(r.Context())),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
			)
			ctx := logger.ToContext(r.Context(), reqLog)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			dur := time.Since(start)
			reqLog.Info("request completed",
				logger.Status(rec.status),
				logger.Duration(dur),
			)
			metrics.RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(dur.Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
