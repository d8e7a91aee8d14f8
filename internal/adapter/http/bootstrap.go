package http

import (
	"log/slog"
	"net/http"
	"time"

	pgdatabase "userapp/internal/adapter/database/postgres"
	pgrepository "userapp/internal/adapter/database/postgres/repository"
	database "userapp/internal/adapter/database/sqlite"
	"userapp/internal/adapter/database/sqlite/repository"
	"userapp/internal/adapter/http/routes"
	"userapp/internal/core/port"
	"userapp/internal/core/telemetry"
	"userapp/pkg/config"
	"userapp/pkg/tracing"
)

func StartServer(metrics *tracing.AppMetrics, logger *config.AppLogger) error {
	return StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *tracing.AppMetrics, logger *config.AppLogger, appConfig *config.AppConfig) error {
	settings := config.LoadSettings()

	probe := telemetry.NewOTELProbe(metrics, slog.Default())

	userRepo, closeDB, err := openUserRepository(settings, probe)

	if err != nil {
		return err
	}

	defer closeDB()

	container := NewContainer(userRepo, probe)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		UserHandler: container.UserHandler,
		DemoHandler: container.DemoHandler,
	}, metrics, logger, appConfig)

	slog.Info("Server starting",
		"port", settings.Port,
		"driver", settings.DatabaseDriver,
		"environment", appConfig.Environment,
		"https_enforced", appConfig.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + settings.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
		return err
	}

	return nil
}

// openUserRepository selects the store adapter from settings. Postgres when
// DATABASE_DRIVER says so (or a DATABASE_URL is set), sqlite otherwise.
func openUserRepository(settings config.Settings, probe port.Telemetry) (port.UserRepository, func(), error) {
	if settings.DatabaseDriver == "postgres" || (settings.DatabaseDriver == "" && settings.DatabaseURL != "") {
		db, err := pgdatabase.NewDB()

		if err != nil {
			return nil, nil, err
		}

		return pgrepository.NewUserRepository(db, probe), db.Close, nil
	}

	db, err := database.NewDB()

	if err != nil {
		return nil, nil, err
	}

	return repository.NewUserRepository(db, probe), func() { db.Close() }, nil
}
