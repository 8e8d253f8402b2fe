package middleware

import (
	"net/http"

	"retailhub-be/internal/logger"
	"retailhub-be/internal/metrics"
	"retailhub-be/internal/utils"

	"go.uber.org/zap"
)

// responseRecorder lets us capture HTTP status codes.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every HTTP request and feeds the request counters.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.StartTimer()

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.RequestsTotal.Inc()
		if rec.statusCode >= http.StatusInternalServerError {
			metrics.RequestErrors.Inc()
		}

		userID, _ := utils.GetUserIDFromContext(r.Context())

		logger.FromCtx(r.Context()).Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.Duration("duration", timer.Duration()),
			zap.String("remote_ip", r.RemoteAddr),
			zap.Uint("user_id", userID),
		)
	})
}
