package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "userapp/internal/adapter/http"
	. "userapp/pkg/config"
	. "userapp/pkg/tracing"
)

func main() {
	ctx := context.Background()

	logger, err := NewAppLogger("userapp")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	telemetry, err := InitTelemetry(TelemetryConfig{
		ServiceName:    "userapp",
		ServiceVersion: "1.0.0",
		MetricsPort:    "9091",
		OTLPEndpoint:   "localhost:4317",
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(ctx)

	metrics := NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		config := GetDefaultConfig()

		if os.Getenv("GIN_MODE") == "release" {
			config.Environment = "production"
			config.EnforceHTTPS = true
		}

		if err := api.StartServerWithConfig(metrics, logger, config); err != nil {
			log.Fatal("Server error:", err)
		}
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
