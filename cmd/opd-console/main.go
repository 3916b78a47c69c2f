// @title        OPD Console
// @version      1.0
// @description  Single-operator console for the OPD hospital backend.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/medisys/opd-console/internal/api"
	"github.com/medisys/opd-console/internal/core/ports"
	"github.com/medisys/opd-console/internal/core/service"
	"github.com/medisys/opd-console/internal/infrastructure/backend"
	"github.com/medisys/opd-console/internal/infrastructure/config"
	"github.com/medisys/opd-console/internal/infrastructure/httpclient"
	"github.com/medisys/opd-console/internal/infrastructure/navigation"
	"github.com/medisys/opd-console/internal/infrastructure/storage"
	"github.com/medisys/opd-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("config")
	}

	log := logger.Init(logger.ForEnv(cfg.Env, cfg.LogLevel))

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("console stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Session storage ---
	store, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := service.NewSessionStore(store, logger.Component("session"))
	nav := navigation.NewRecorder(logger.Component("navigation"))
	guard := service.NewAccessGuard(sessions, cfg.API.LoginPath, logger.Component("guard"))

	// --- Backend clients ---
	apiBase, err := cfg.APIBaseURL()
	if err != nil {
		return err
	}
	authBase, err := cfg.AuthBaseURL()
	if err != nil {
		return err
	}
	clientLog := logger.Component("backend")

	client, err := httpclient.New(apiBase, nil,
		httpclient.WithRequestID(),
		httpclient.WithCredentials(sessions),
		httpclient.ExpireSessionOnUnauthorized(sessions, nav, guard.LoginPath(), clientLog),
		httpclient.WithLogging(clientLog),
		httpclient.WithMetrics(),
		httpclient.TranslateTransportErrors(apiBase),
	)
	if err != nil {
		return err
	}
	authClient, err := httpclient.New(authBase, nil,
		httpclient.WithRequestID(),
		httpclient.WithLogging(clientLog),
		httpclient.WithMetrics(),
		httpclient.TranslateTransportErrors(authBase),
	)
	if err != nil {
		return err
	}

	// Readiness probes go out without the operator's token so a 401 on the
	// backend root never touches the session.
	probeClient, err := httpclient.New(apiBase, nil,
		httpclient.WithRequestID(),
		httpclient.WithLogging(clientLog),
		httpclient.WithMetrics(),
		httpclient.TranslateTransportErrors(apiBase),
	)
	if err != nil {
		return err
	}

	var proxyTarget *url.URL
	if cfg.API.ProxyTarget != "" {
		if proxyTarget, err = url.Parse(cfg.API.ProxyTarget); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Deps{
		Log:         logger.Component("http"),
		Guard:       guard,
		Login:       service.NewLoginService(backend.NewAuthAPI(authClient), sessions, logger.Component("login")),
		Sessions:    sessions,
		Storage:     store,
		Navigation:  nav,
		LoginPath:   guard.LoginPath(),
		Backend:     probeClient,
		Doctors:     backend.NewDoctorAPI(client),
		Medicines:   backend.NewMedicineAPI(client),
		Patients:    backend.NewPatientAPI(client),
		ProxyTarget: proxyTarget,
		Metrics:     cfg.Metrics,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", apiBase).
			Str("session_backend", cfg.Session.Backend).
			Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down console")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config) (ports.Storage, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), func() {}, nil
	case config.BackendRedis:
		r, err := storage.ConnectRedis(ctx, storage.RedisConfig{
			Addr:   cfg.Redis.Addr,
			DB:     cfg.Redis.DB,
			Prefix: cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	default:
		return storage.NewFile(cfg.Session.File, logger.Component("storage")), func() {}, nil
	}
}
