package server

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/albashop/alba/config"
	"github.com/albashop/alba/queue/scheduler"
)

// Server owns the HTTP listener and the background scheduler and shuts
// both down gracefully on SIGHUP, SIGINT or SIGQUIT.
type Server struct {
	configProvider *config.Provider
	handler        http.Handler
	scheduler      *scheduler.Scheduler
	logger         *slog.Logger
}

func NewServer(configProvider *config.Provider, handler http.Handler, scheduler *scheduler.Scheduler, logger *slog.Logger) *Server {
	return &Server{
		configProvider: configProvider,
		handler:        handler,
		scheduler:      scheduler,
		logger:         logger,
	}
}

// Run blocks until shutdown completes. It exits the process afterwards.
func (s *Server) Run() {
	cfg := s.configProvider.Get().Server

	s.logger.Info("server configuration",
		"addr", cfg.Addr,
		"tls", cfg.EnableTLS,
		"read_timeout", cfg.ReadTimeout.Duration,
		"read_header_timeout", cfg.ReadHeaderTimeout.Duration,
		"write_timeout", cfg.WriteTimeout.Duration,
		"idle_timeout", cfg.IdleTimeout.Duration,
		"shutdown_timeout", cfg.ShutdownGracefulTimeout.Duration,
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
	}

	serverError := make(chan error, 1)
	go func() {
		var err error
		if cfg.EnableTLS {
			cert, certErr := tls.X509KeyPair([]byte(cfg.CertData), []byte(cfg.KeyData))
			if certErr != nil {
				serverError <- certErr
				return
			}
			srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
			s.logger.Info("starting HTTPS server", "addr", cfg.Addr)
			err = srv.ListenAndServeTLS("", "")
		} else {
			s.logger.Info("starting HTTP server", "addr", cfg.Addr)
			err = srv.ListenAndServe()
		}
		if err != http.ErrServerClosed {
			s.logger.Error("listen error", "err", err)
			serverError <- err
		}
	}()

	s.scheduler.Start()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)

	select {
	case <-ctx.Done():
		s.logger.Info("received shutdown signal, shutting down gracefully")
	case err := <-serverError:
		s.logger.Error("server error, initiating shutdown", "err", err)
	}

	stop()

	gracefulCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownGracefulTimeout.Duration)
	defer cancelShutdown()

	shutdownGroup, _ := errgroup.WithContext(gracefulCtx)

	shutdownGroup.Go(func() error {
		s.logger.Info("shutting down HTTP server")
		if err := srv.Shutdown(gracefulCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "err", err)
			return err
		}
		s.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	shutdownGroup.Go(func() error {
		s.logger.Info("shutting down scheduler")
		if err := s.scheduler.Stop(gracefulCtx); err != nil {
			s.logger.Error("scheduler shutdown error", "err", err)
			return err
		}
		s.logger.Info("scheduler stopped gracefully")
		return nil
	})

	if err := shutdownGroup.Wait(); err != nil {
		s.logger.Error("error during shutdown", "err", err)
		os.Exit(1)
	}

	s.logger.Info("all systems stopped gracefully")
	os.Exit(0)
}
