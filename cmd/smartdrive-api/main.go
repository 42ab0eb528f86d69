// README: Entry point; loads config, wires services, starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"smartdrive/internal/ai"
	"smartdrive/internal/config"
	httptransport "smartdrive/internal/http"
	"smartdrive/internal/http/handlers"
	"smartdrive/internal/infra"
	"smartdrive/internal/modules/catalog"
	"smartdrive/internal/modules/chat"
	"smartdrive/internal/modules/quota"
	"smartdrive/internal/modules/session"
	"smartdrive/internal/modules/slotfill"
	"smartdrive/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		observability.Logger().Error("smartdrive-api stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	observability.SetLevel(cfg.Log.Level)
	log := observability.Logger()
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(cfg.TraceStdout, nil)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	gen, closeGen, err := ai.New(ctx, ai.Settings{
		Provider:    cfg.Model.Provider,
		GeminiKey:   cfg.Model.GeminiKey,
		GeminiModel: cfg.Model.GeminiModel,
		OllamaURL:   cfg.Model.OllamaURL,
		OllamaModel: cfg.Model.OllamaModel,
	})
	if err != nil {
		return err
	}
	defer closeGen()

	var listings *catalog.Collection
	var searcher handlers.Searcher
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		store := catalog.NewStore(dbPool)
		all, err := store.List(ctx)
		if err != nil {
			return err
		}
		listings = catalog.NewCollection(all)
		searcher = store
	} else {
		listings, err = catalog.LoadFile(cfg.Catalog.CarsFile, log)
		if err != nil {
			return err
		}
	}
	log.Info("catalog loaded", "listings", listings.Len(), "postgres", cfg.DB.DSN != "")

	var guard chat.QuotaGuard
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		guard = quota.NewService(quota.NewStore(rdb), cfg.TurnsPerDay)
	}

	var limiter *rate.Limiter
	if cfg.Model.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Model.RPS), max(1, int(cfg.Model.RPS)))
	}

	sessions := session.NewStore()
	filler := slotfill.NewService(gen, slotfill.Options{Timeout: cfg.Model.Timeout, Limiter: limiter, Logger: log})
	chatSvc := chat.NewService(sessions, filler, listings, chat.Options{
		ResultLimit: cfg.Catalog.ResultLimit,
		Quota:       guard,
	})

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Chat:        chatSvc,
		Sessions:    sessions,
		Searcher:    searcher,
		Listings:    listings,
		ResultLimit: cfg.Catalog.ResultLimit,
		CORSOrigins: cfg.CORSOrigins,
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTP.Addr, "provider", gen.Name())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
