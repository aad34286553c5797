package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// CallerValidator resolves a bearer token to the ledger address it binds.
type CallerValidator interface {
	Validate(tokenString string) (domain.Address, error)
}

type contextKeyCaller struct{}

// CallerFrom returns the authenticated caller address, or the zero address
// when the request passed no auth middleware.
func CallerFrom(ctx context.Context) domain.Address {
	addr, _ := ctx.Value(contextKeyCaller{}).(domain.Address)
	return addr
}

// RequireCaller authenticates the request's bearer token and injects the
// caller address into the context. Ledger-level authorization (roles, pause)
// stays in the core; this only establishes who is calling.
func RequireCaller(validator CallerValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				writeError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}
			caller, err := validator.Validate(raw)
			if err != nil {
				log.WarnContext(r.Context(), "rejected caller token",
					"error", err,
					"request_id", middleware.GetReqID(r.Context()),
				)
				writeError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), contextKeyCaller{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs one line per request with latency and status.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
