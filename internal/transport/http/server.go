package http

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/qamar62/st-booking/internal/config"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type Server struct {
	log    *zap.Logger
	server *http.Server
}

func NewServer(log *zap.Logger, cfg config.HTTPConfig, handler *BookingHandler, limiter *RateLimiter) *Server {
	return &Server{
		log: log,
		server: &http.Server{
			Addr:         cfg.Address(),
			Handler:      recoveryMiddleware(log, loggingMiddleware(log, newRouter(handler, limiter))),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func newRouter(handler *BookingHandler, limiter *RateLimiter) http.Handler {
	router := httprouter.New()
	router.GET("/healthz", healthHandler)
	router.GET("/v1/tours", limiter.Limit(handler.ListTours))
	router.GET("/v1/tours/:id", limiter.Limit(handler.GetTour))
	router.GET("/v1/tours/:id/quote", limiter.Limit(handler.Quote))
	router.POST("/v1/bookings", limiter.Limit(handler.CreateBooking))

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func (s *Server) Run() error {
	s.log.Info("http server started", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("stopping http server", zap.String("addr", s.server.Addr))
	return s.server.Shutdown(ctx)
}

func healthHandler(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func loggingMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Nothing is expected to panic past the service boundary, but a panic must
// still render as a user-visible error rather than a dropped connection.
func recoveryMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
