package rest

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type contextKey string

const authorContextKey contextKey = "author"

// authorFromContext returns the verified author identity, if present.
func authorFromContext(ctx context.Context) string {
	author, _ := ctx.Value(authorContextKey).(string)
	return author
}

// identity extracts the author identity from the configured header and puts
// it in the request context. Requests without the header pass through; each
// endpoint decides whether identity is required.
func identity(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if author := r.Header.Get(header); author != "" {
				r = r.WithContext(context.WithValue(r.Context(), authorContextKey, author))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs one line per request with status, latency, and the
// request id assigned by chi.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
