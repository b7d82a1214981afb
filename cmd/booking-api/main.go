package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/qamar62/st-booking/internal/application/service"
	"github.com/qamar62/st-booking/internal/config"
	"github.com/qamar62/st-booking/internal/domain/ports"
	cacheredis "github.com/qamar62/st-booking/internal/infrastructures/db/redis"
	tourclient "github.com/qamar62/st-booking/internal/infrastructures/tourapi/http/client"
	"github.com/qamar62/st-booking/internal/infrastructures/tracing"
	httpapi "github.com/qamar62/st-booking/internal/transport/http"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	tp, err := tracing.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	log.Info("booking-api starting", zap.String("http_addr", cfg.HTTP.Address()))

	var tokenCache ports.TokenCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis client", zap.Error(err))
			}
		}()
		tokenCache = cacheredis.NewTokenCacheRepository(redisClient)
	}

	tourSource := tourclient.NewClient(
		cfg.TourAPI.TokenURL,
		cfg.TourAPI.BaseURL,
		cfg.TourAPI.Username,
		cfg.TourAPI.Password,
		cfg.TourAPI.Timeout,
		tokenCache,
		log,
	)
	bookingService := service.NewBookingService(log, tourSource)
	handler := httpapi.NewBookingHandler(log, bookingService, cfg.BookingHorizonDays)
	limiter := httpapi.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	defer limiter.Close()
	server := httpapi.NewServer(log, cfg.HTTP, handler, limiter)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown error", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server stopped", zap.Error(err))
		}
	}
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
