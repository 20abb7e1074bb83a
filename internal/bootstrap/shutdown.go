package bootstrap

import (
	"context"
	"log/slog"

	"github.com/kylasweb/IOC-Spinwheel/internal/event"
	"github.com/kylasweb/IOC-Spinwheel/internal/scheduler"
	"github.com/kylasweb/IOC-Spinwheel/internal/server"
	"github.com/kylasweb/IOC-Spinwheel/internal/session"
	"github.com/kylasweb/IOC-Spinwheel/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	Sessions           *session.Manager
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
}

// GracefulShutdown stops components in dependency order:
//  1. HTTP server, so no new requests arrive
//  2. scheduler and worker pool
//  3. sessions, cancelling pending reveals
//  4. event publisher, flushing retries to the dead-letter file
//  5. database pool
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}
	slog.Info(LogMsgBackgroundJobsStopped)

	if c.Sessions != nil {
		c.Sessions.Shutdown(ctx)
		slog.Info(LogMsgSessionsClosed)
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
