package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mhutchins/taskvault-api/internal/api/shared"
	"github.com/mhutchins/taskvault-api/internal/platform/logger"
)

// TraceMiddleware attaches a trace ID to the request context and a
// trace-annotated logger alongside it, so every log line below carries the
// same correlation ID as the error responses. Apply early in the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
