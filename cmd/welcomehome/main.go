package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"welcomehome/frontend/shared/shell"
	"welcomehome/infrastructure/backend"
	"welcomehome/infrastructure/cache"
	"welcomehome/infrastructure/config"
	httpserver "welcomehome/infrastructure/http"
	"welcomehome/infrastructure/inflight"
	"welcomehome/infrastructure/rbac"
	"welcomehome/infrastructure/seal"
	"welcomehome/infrastructure/session"
	"welcomehome/infrastructure/sqlite"
	"welcomehome/infrastructure/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	shutdownTracing := telemetry.Setup("welcomehome")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			slog.Error("otel shutdown failed", slog.Any("err", err))
		}
	}()

	sealer, err := seal.New(cfg.SessionSecret, nil)
	if err != nil {
		log.Fatalf("session sealer: %v", err)
	}

	store, closeStore, err := openSessionBackend(cfg)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer closeStore()

	// Redis may be shared by several replicas, so its sessions are never
	// cached in process.
	var sessionCache *cache.UserSessionCache
	if cfg.SessionStore != config.SessionStoreRedis {
		sessionCache = cache.NewUserSessionCache()
	}

	var clientOpts []backend.Option
	if cfg.BackendTimeout > 0 {
		clientOpts = append(clientOpts, backend.WithTimeout(cfg.BackendTimeout))
	}
	client, err := backend.New(cfg.BackendURL, clientOpts...)
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	sh := &shell.Shell{
		Sessions:              session.NewStore(store, sealer, sessionCache),
		Users:                 cache.NewUserCache(),
		Screens:               cache.NewScreenStateCache(),
		Tracker:               inflight.NewTracker(),
		Backend:               client,
		Rbac:                  rbac.New(cache.NewRbacRolesCache()),
		CookieMaxAge:          cfg.SessionMaxAge,
		RegisterRedirectDelay: cfg.RegisterRedirectDelay,
	}

	server := httpserver.NewServer(cfg.Addr, sh)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	slog.Info("welcomehome listening",
		slog.String("addr", cfg.Addr),
		slog.String("backend", cfg.BackendURL),
		slog.String("session_store", cfg.SessionStore),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// openSessionBackend opens the configured token store and returns a func
// that releases it.
func openSessionBackend(cfg config.Config) (session.Backend, func(), error) {
	if cfg.SessionStore == config.SessionStoreRedis {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		rc := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Ping(ctx).Err(); err != nil {
			_ = rc.Close()
			return nil, nil, err
		}
		return session.NewRedisBackend(rc), func() { _ = rc.Close() }, nil
	}

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return session.NewSQLiteBackend(db), func() { _ = db.Close() }, nil
}
