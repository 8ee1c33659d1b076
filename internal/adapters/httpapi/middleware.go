package httpapi

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/baitline/scam-gateway/internal/auth"
	"github.com/baitline/scam-gateway/internal/core"
	"github.com/baitline/scam-gateway/internal/metrics"
	"go.uber.org/zap"
)

// protect wraps a handler with authentication followed by rate limiting, in
// that order: an unauthenticated request never consumes rate-limit budget,
// and a rate-limited request never reaches validation or a backend.
func (s *Server) protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.FromHeader(r.Header.Get("Authorization"))
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if err := s.verifier.Verify(token); err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, core.ErrUnauthorized) && !errors.Is(err, core.ErrUnauthenticated) {
				status = http.StatusInternalServerError
			}
			s.writeError(w, status, err.Error())
			return
		}

		clientID := clientAddr(r)
		if !s.limiter.Admit(clientID) {
			metrics.IncrementRateLimitRejection()
			s.writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next(w, r)
	}
}

// withRequestLogging logs request metadata and latency. Bodies and
// credentials are never logged.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.logger.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("client", clientAddr(r)),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed))
		metrics.RecordHTTPRequestDuration(r.Method, r.URL.Path, strconv.Itoa(rec.status), elapsed)
	})
}

// withCORS answers preflight requests and attaches CORS headers when the
// request origin is in the configured allow list. Credentials are not
// allowed across origins.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// clientAddr extracts the client identifier used for rate limiting from the
// remote address.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}
