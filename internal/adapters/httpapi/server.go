package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/baitline/scam-gateway/internal/auth"
	"github.com/baitline/scam-gateway/internal/core"
	"github.com/baitline/scam-gateway/internal/ratelimit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP transport for the gateway. It owns the middleware chain
// (request logging, CORS, then per-route auth and rate limiting) and maps
// every service outcome onto the uniform error envelope.
type Server struct {
	service        *core.GatewayService
	verifier       *auth.Verifier
	limiter        *ratelimit.Limiter
	logger         *zap.Logger
	listenAddr     string
	allowedOrigins []string
	httpServer     *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	service *core.GatewayService,
	verifier *auth.Verifier,
	limiter *ratelimit.Limiter,
	logger *zap.Logger,
	listenAddr string,
	allowedOrigins []string,
) *Server {
	return &Server{
		service:        service,
		verifier:       verifier,
		limiter:        limiter,
		logger:         logger,
		listenAddr:     listenAddr,
		allowedOrigins: allowedOrigins,
	}
}

// Handler builds the full route table wrapped in the shared middleware. It is
// exposed so tests can exercise the server through httptest without binding a
// socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/classify", s.protect(s.handleClassify))
	mux.HandleFunc("POST /api/generate-reply", s.protect(s.handleGenerateReply))
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = s.withCORS(handler)
	handler = s.withRequestLogging(handler)
	return handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	s.logger.Info("HTTP server starting", zap.String("address", s.listenAddr))

	// Start the server in a goroutine
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil {
			if err != http.ErrServerClosed {
				s.logger.Error("HTTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}
