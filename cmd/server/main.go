package main

import (
	"log"
	"net/http"

	"authorize-gateway/internal/config"
	"authorize-gateway/internal/logger"
	"authorize-gateway/internal/metrics"
	"authorize-gateway/internal/middleware"
	"authorize-gateway/internal/payment/authorize"
	"authorize-gateway/internal/transport"

	"go.uber.org/zap"
)

var startServerFunc = http.ListenAndServe

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	router := newServer(cfg, authorize.NewHTTPClient(cfg.Timeout))

	logger.L().Info("payment gateway listening",
		zap.String("port", cfg.AppPort),
		zap.Bool("live", cfg.Live),
		zap.Bool("capture", cfg.Capture),
		zap.String("api_login_id", logger.MaskSecret(cfg.APILoginID)),
	)
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config, client authorize.Client) http.Handler {
	factory := func() *authorize.Gateway {
		return authorize.New(cfg.APILoginID, cfg.TransactionKey, cfg.Live,
			authorize.WithClient(client),
			authorize.WithCaptureMode(cfg.Capture),
		)
	}

	h := transport.NewPaymentHandler(factory, &metrics.PaymentMetrics{})
	return setupRouter(h, cfg)
}

func setupRouter(h *transport.PaymentHandler, cfg *config.Config) http.Handler {
	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)

	// limit after auth so buckets are keyed by token subject
	protect := func(next http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(cfg.JWTSecret)(limiter.Middleware(next))
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})))
	mux.Handle("GET /metrics", limiter.Middleware(http.HandlerFunc(h.Metrics)))
	mux.Handle("POST /v1/payments", protect(h.Process))
	mux.Handle("POST /v1/payments/{transaction_id}/capture", protect(h.Capture))

	return logger.RequestIDMiddleware(logger.LoggingMiddleware(mux))
}
