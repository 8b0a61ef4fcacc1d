package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/sync/errgroup"

	"github.com/atinyakov/go-link-tracker/internal/app/server"
	grpcserver "github.com/atinyakov/go-link-tracker/internal/app/server/grpc"
	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/config"
	"github.com/atinyakov/go-link-tracker/internal/logger"
	"github.com/atinyakov/go-link-tracker/internal/worker"
)

const (
	shutdownTimeout = 10 * time.Second
	viewQueueSize   = 1024
	pprofAddr       = "localhost:6060"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC servers",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	opts, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log := logger.New()
	if err := log.Init(opts.LogLevel); err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()
	zl := log.Log

	zl.Info("starting link tracker",
		zap.String("version", orNA(buildVersion)),
		zap.String("date", orNA(buildDate)),
		zap.String("commit", orNA(buildCommit)),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	store, closeStore, err := openStorage(ctx, opts, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			zl.Error("close storage", zap.Error(err))
		}
	}()

	revoked := openCache(ctx, opts, zl)
	defer revoked.Close()

	secret := opts.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		zl.Warn("JWT_SECRET not set, sessions will not survive a restart")
	}

	g, gctx := errgroup.WithContext(ctx)

	// The worker outlives the servers so views accepted during shutdown are flushed.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	var queue service.ViewQueue
	if opts.AsyncViews {
		w := worker.NewViewRecordWorker(zl, store, viewQueueSize, opts.ViewFlushInterval)
		queue = w
		g.Go(func() error {
			w.Run(workerCtx)
			return nil
		})
	}

	resolver := service.NewTokenResolver(service.DefaultTokenLength, store)
	profiles := service.NewProfileService(store)
	links := service.NewLinkService(store, resolver, zl, opts.BaseURL)
	views := service.NewViewService(resolver, service.NewAccessGate(), service.NewViewRecorder(store, queue, zl), zl)
	auth := service.NewAuth(store, profiles, revoked, zl, secret, opts.SessionTTL)
	stats := service.NewStatsService(store, opts.Location())

	router := server.Init(server.Deps{
		Links:    links,
		Views:    views,
		Auth:     auth,
		Profiles: profiles,
		Stats:    stats,
		Pinger:   store,
	}, server.Options{
		TrustedSubnet:  opts.TrustedSubnet,
		SecureCookies:  opts.EnableHTTPS,
		RateLimitRPS:   opts.RateLimitRPS,
		RateLimitBurst: opts.RateLimitBurst,
	}, zl)

	httpServer := &http.Server{
		Addr:              opts.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if opts.EnableHTTPS {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return fmt.Errorf("base url: %w", err)
		}

		manager := &autocert.Manager{
			Cache:      autocert.DirCache("cert-cache"),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(u.Hostname()),
		}
		httpServer.Addr = ":443"
		httpServer.TLSConfig = manager.TLSConfig()
	}

	g.Go(func() error {
		var err error
		if opts.EnableHTTPS {
			zl.Info("Server is running with TLS", zap.String("addr", httpServer.Addr))
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			zl.Info("Server is running", zap.String("addr", httpServer.Addr))
			err = httpServer.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	var rpc *grpcserver.Server
	if opts.GRPCPort > 0 {
		rpc = grpcserver.New(&grpcserver.LinkViewerServer{
			Views:         views,
			Links:         links,
			Stats:         stats,
			TrustedSubnet: opts.TrustedSubnet,
			Logger:        zl,
		}, auth, zl, opts.GRPCPort)

		g.Go(rpc.Start)
	}

	var pprofServer *http.Server
	if opts.EnablePprof {
		pprofServer = &http.Server{Addr: pprofAddr, Handler: http.DefaultServeMux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			zl.Info("Starting pprof server", zap.String("addr", pprofAddr))
			if err := pprofServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			zl.Error("http shutdown", zap.Error(err))
		}
		if rpc != nil {
			rpc.GracefulStop()
		}
		if pprofServer != nil {
			_ = pprofServer.Shutdown(shutdownCtx)
		}

		stopWorker()
		return nil
	})

	return g.Wait()
}
