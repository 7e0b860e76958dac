// internal/api/middleware.go
//
// Authentication and access logging.
//
// Context
// -------
// Authenticate reads "Authorization: Bearer <jwt>", verifies it, and
// stores the subject with auth.WithIdentity.  Missing or invalid tokens
// stop the request with 401.
//
// AccessLog writes one structured line per request after the handler
// returns, and counts it by chi route pattern so label cardinality stays
// bounded.  The request logger (with request id) is attached to the
// context for handlers and services.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/adept-content/internal/auth"
	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/logger"
	"github.com/yanizio/adept-content/internal/metrics"
	"github.com/yanizio/adept-content/internal/requestinfo"
)

/*──────────────────────────── authentication ──────────────────────────────*/

// Authenticate requires a valid bearer token.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok || v == nil {
				writeError(w, r, domain.ErrUnauthenticated)
				return
			}
			id, err := v.Verify(raw)
			if err != nil {
				logger.FromContext(r.Context()).Debugw("bearer token rejected", "err", err)
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

/*──────────────────────────── access log ──────────────────────────────────*/

// AccessLog logs and counts every request.
func AccessLog(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With("request_id", chimw.GetReqID(r.Context()))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", requestinfo.ClientIP(r).String(),
			}
			if info := requestinfo.FromContext(r.Context()); info != nil {
				fields = append(fields, "browser", info.UA.Browser, "bot", info.UA.IsBot)
				if info.Geo.CountryISO != "" {
					fields = append(fields, "country", info.Geo.CountryISO)
				}
			}
			if status >= 500 {
				reqLog.Warnw("http request", fields...)
				return
			}
			reqLog.Infow("http request", fields...)
		})
	}
}
