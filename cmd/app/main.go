package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/bootstrap"
	"github.com/kylasweb/IOC-Spinwheel/internal/claim"
	"github.com/kylasweb/IOC-Spinwheel/internal/concurrency"
	"github.com/kylasweb/IOC-Spinwheel/internal/config"
	"github.com/kylasweb/IOC-Spinwheel/internal/ledger"
	"github.com/kylasweb/IOC-Spinwheel/internal/message"
	"github.com/kylasweb/IOC-Spinwheel/internal/metrics"
	"github.com/kylasweb/IOC-Spinwheel/internal/prize"
	"github.com/kylasweb/IOC-Spinwheel/internal/scheduler"
	"github.com/kylasweb/IOC-Spinwheel/internal/server"
	"github.com/kylasweb/IOC-Spinwheel/internal/session"
	"github.com/kylasweb/IOC-Spinwheel/internal/worker"
)

const (
	sessionGaugeInterval = 15 * time.Second
	shutdownTimeout      = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	store, err := bootstrap.InitializeCatalog(cfg, publisher)
	if err != nil {
		repos.Close()
		return err
	}

	locks := concurrency.NewLockManager()
	codes := claim.NewCodeGenerator(repos.Codes)
	ledgerService := ledger.NewService(repos.Players, store, codes, locks, publisher)
	claimService := claim.NewService(repos.Players, codes, locks, publisher)

	var generator message.Generator
	if cfg.GeminiAPIKey != "" {
		generator = message.NewGeminiClient(cfg.GeminiAPIKey)
	}

	sessions := session.NewManager(session.Dependencies{
		Ledger:       ledgerService,
		Claims:       claimService,
		Catalog:      store,
		Messages:     message.NewSafe(generator, cfg.MessageTimeout),
		RNG:          prize.DefaultRNG(),
		SpinDelay:    cfg.SpinRevealDelay,
		ScratchDelay: cfg.ScratchRevealDelay,
	}, cfg.SessionIdleTTL, publisher)

	pool := worker.NewPool(worker.DefaultWorkerCount, worker.DefaultQueueSize)
	pool.Start()
	jobs := scheduler.New(pool)
	jobs.Schedule(cfg.JanitorInterval, &session.JanitorJob{Manager: sessions})
	jobs.ScheduleNow(sessionGaugeInterval, &metrics.SessionGaugeJob{Count: sessions.Len})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		AdminAPIKey:    cfg.AdminAPIKey,
		TrustedProxies: cfg.TrustedProxies,
		DBPool:         repos.HealthPool(),
		Sessions:       sessions,
		Players:        ledgerService,
		Catalog:        store,
		RNG:            prize.DefaultRNG(),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          jobs,
		WorkerPool:         pool,
		Sessions:           sessions,
		ResilientPublisher: publisher,
		Repositories:       repos,
	})
	return err
}
