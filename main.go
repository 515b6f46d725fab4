package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-optimizer/config"
	"loan-optimizer/domain"
	httpLayer "loan-optimizer/http"
	"loan-optimizer/repository"
	"loan-optimizer/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" {
		cache = repository.NewRedisCache(cfg.Redis.Addr)
		log.Printf("Using redis cache at %s", cfg.Redis.Addr)
	} else {
		cache = repository.NewMockCache()
	}

	var runs repository.RunRepository
	if cfg.Database.SQLitePath != "" {
		runs, err = repository.NewSQLiteRunRepository(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatalf("Error opening run repository: %v", err)
		}
	} else {
		runs = repository.NewMemoryRunRepository()
	}
	defer func() {
		if err := runs.Close(); err != nil {
			log.Printf("Error closing run repository: %v", err)
		}
	}()

	terms := domain.LoanTerms{
		AnnualRate:  cfg.Loan.AnnualRate,
		TenureYears: cfg.Loan.TenureYears,
	}
	scenarioService := service.NewScenarioService(terms, runs, cache)
	scenarioHandler := httpLayer.NewScenarioHandler(scenarioService)

	rateLimiter := httpLayer.NewRateLimiter(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/api/calculate-net-zero-interest",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.NetZeroInterest),
		),
	)

	mux.Handle(
		"/api/calculate-min-time-net-zero",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.MinTimeToNetZero),
		),
	)

	mux.Handle(
		"/api/calculate-max-growth",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(scenarioHandler.MaxGrowth),
		),
	)

	mux.Handle("/metrics", httpLayer.MetricsHandler())

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.CORSMiddleware(httpLayer.MetricsMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 API listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
