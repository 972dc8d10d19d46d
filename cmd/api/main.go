package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/todohub/internal/auth"
	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/db"
	httpx "github.com/geocoder89/todohub/internal/http"
	"github.com/geocoder89/todohub/internal/http/middlewares"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/geocoder89/todohub/internal/redisclient"
	"github.com/geocoder89/todohub/internal/repo/memory"
	"github.com/geocoder89/todohub/internal/repo/postgres"
	"github.com/geocoder89/todohub/internal/security"
	"github.com/geocoder89/todohub/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type userStore interface {
	services.UserStore
	Ping(ctx context.Context) error
}

func main() {
	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "todohub", cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := config.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	// wire up repositories
	var (
		users userStore
		todos services.TodoStore
	)

	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store; data is lost on restart")
		users = memory.NewUsersRepo()
		todos = memory.NewTodosRepo()
	default:
		pool, err := db.NewPool(cfg.DBURL, cfg.DB.MaxConns)
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		users = postgres.NewUsersRepo(pool, prom)
		todos = postgres.NewTodosRepo(pool, prom)
	}

	limiter, closeLimiter := newAuthLimiter(cfg, log)
	defer closeLimiter()

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	authSvc := services.NewAuthService(users, security.NewHasher(cfg.BcryptCost), tokens, prom)

	if cfg.SeedEmail != "" {
		ctx, cancel := config.WithTimeout(context.Background(), 5*time.Second)
		created, err := authSvc.EnsureUser(ctx, cfg.SeedEmail, cfg.SeedPassword)
		cancel()
		if err != nil {
			log.Error("seed user failed", "err", err)
			os.Exit(1)
		}
		log.Info("seed user ready", "email", cfg.SeedEmail, "created", created)
	}

	router := httpx.NewRouter(log, cfg, httpx.Deps{
		Auth:     authSvc,
		Users:    services.NewUserService(users),
		Todos:    services.NewTodoService(todos),
		Tokens:   tokens,
		Store:    users,
		Limiter:  limiter,
		Metrics:  prom,
		Gatherer: reg,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	ctx, cancel := config.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		return
	}
	log.Info("shutdown complete")
}

// newAuthLimiter prefers Redis so limits hold across replicas, and falls back
// to a per-process limiter when Redis is not configured or not reachable.
func newAuthLimiter(cfg config.Config, log *slog.Logger) (middlewares.Limiter, func()) {
	mem := middlewares.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)

	if cfg.Redis.Addr == "" {
		return mem, func() {}
	}

	rc := redisclient.New(cfg.Redis)

	ctx, cancel := config.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rc.Ping(ctx); err != nil {
		log.Warn("redis unreachable; using in-process rate limiter", "addr", cfg.Redis.Addr, "err", err)
		_ = rc.Close()
		return mem, func() {}
	}

	log.Info("redis rate limiter enabled", "addr", cfg.Redis.Addr)
	return middlewares.NewRedisLimiter(rc.Raw(), cfg.AuthRateLimit, cfg.AuthRateWindow), func() { _ = rc.Close() }
}
