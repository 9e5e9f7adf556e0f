package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markussiebert/authgate/internal/auth"
	"github.com/markussiebert/authgate/internal/handler"
	"github.com/markussiebert/authgate/internal/logger"
	"github.com/markussiebert/authgate/internal/requestid"
	"github.com/markussiebert/authgate/internal/verify"
)

// Version is the build version surfaced by the status endpoint.
// main overwrites it at startup.
var Version = "dev"

// buildHandler wires the request pipeline: request IDs, then the
// credential gate, then the protected admin handler. /health stays
// outside the gate.
func buildHandler(config *Config) (http.Handler, error) {
	factory, ok := verify.GetFactory(config.Verifier())
	if !ok {
		return nil, fmt.Errorf("verifier factory not found: %s", config.Verifier())
	}

	verifier, err := factory(config.Secret())
	if err != nil {
		return nil, fmt.Errorf("failed to create verifier: %w", err)
	}

	logger.Info("Using password verifier: %s", verifier.Name())

	gate := auth.NewGate(auth.Config{
		Username: config.Username,
		Verifier: verifier,
		Realm:    config.Realm,
	})

	adminHandler := handler.NewAdminHandler(handler.Config{
		Version: Version,
	})

	authMiddleware := auth.Middleware(gate)
	requestIDMiddleware := requestid.Middleware()

	mux := http.NewServeMux()
	mux.Handle("/", requestIDMiddleware(authMiddleware(adminHandler)))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	})

	return mux, nil
}

// RunServer serves the gated handler until SIGINT or SIGTERM, then shuts
// down gracefully.
func RunServer(port int, config *Config) error {
	h, err := buildHandler(config)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if config.SSL {
			logger.Info("Starting authgate server with TLS on port %d", port)
			logger.Debug("Using certfile: %s, keyfile: %s", config.CertFile, config.KeyFile)
			if err := server.ListenAndServeTLS(config.CertFile, config.KeyFile); err != nil && err != http.ErrServerClosed {
				logger.Error("Server TLS error: %v", err)
				os.Exit(1)
			}
		} else {
			logger.Info("Starting authgate server on port %d (HTTP, no TLS)", port)
			logger.Warn("Credentials travel Base64-encoded, not encrypted; enable TLS outside trusted networks")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Server error: %v", err)
				os.Exit(1)
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
