package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mealmax/smoke-harness/internal/stubapi"
)

func main() {
	var (
		addr   = flag.String("addr", getEnv("STUB_ADDR", "0.0.0.0:5000"), "Listen address")
		prefix = flag.String("prefix", getEnv("STUB_PREFIX", "/api"), "Path prefix the routes are mounted under")
		winner = flag.String("winner", "Taco", "Battle winner the stub reports")
	)
	flag.Parse()

	// Setup logging
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	stub := stubapi.New(stubapi.Options{Winner: *winner, PathPrefix: *prefix}, log.Logger)
	server := &http.Server{
		Addr:    *addr,
		Handler: stub.Router(),
	}

	go func() {
		log.Info().Str("addr", *addr).Str("prefix", *prefix).Msg("stub meal API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("stub meal API stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
