package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sarkaridakiya/dakiya/internal/board"
	"github.com/sarkaridakiya/dakiya/internal/config"
	"github.com/sarkaridakiya/dakiya/internal/httpserver"
	"github.com/sarkaridakiya/dakiya/internal/httpserver/deps"
	"github.com/sarkaridakiya/dakiya/internal/logger"
	"github.com/sarkaridakiya/dakiya/internal/redis"
	"github.com/sarkaridakiya/dakiya/internal/remote"
	"github.com/sarkaridakiya/dakiya/internal/scheduler"
	"github.com/sarkaridakiya/dakiya/internal/session"
	"github.com/sarkaridakiya/dakiya/internal/sources/seed"
	redisstore "github.com/sarkaridakiya/dakiya/internal/store/redis"
	"github.com/sarkaridakiya/dakiya/internal/version"
)

type App struct {
	cfg              *config.Config
	logger           logger.Logger
	server           *httpserver.Server
	redisClient      *goredis.Client
	state            *board.State
	sessions         *session.Manager
	listingsReloader *scheduler.ListingsReloader
	trendingReloader *scheduler.TrendingReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient)
	state := board.NewState()

	// Seed listings so the board renders before the first fetch lands.
	if cfg.SeedFile != "" {
		loader := seed.NewLoader(cfg.SeedFile)
		mapper := seed.NewMapper()
		if file, err := loader.Load(); err != nil {
			loggerClient.Warn("failed to load seed file, starting empty",
				logger.String("file", cfg.SeedFile), logger.Error(err))
		} else if listings, threads, err := mapper.Map(file, time.Now()); err != nil {
			loggerClient.Warn("failed to map seed file, starting empty",
				logger.String("file", cfg.SeedFile), logger.Error(err))
		} else {
			state.SeedListings(listings, threads)
			loggerClient.Info("seed listings loaded",
				logger.Int("count", len(listings)))
		}
	}

	sessions := session.NewManager(store, state, loggerClient, cfg.DemoLogin)
	api := remote.New(cfg.APIBaseURL, cfg.HTTPTimeout, sessions, loggerClient)
	sessions.SetAPI(api)

	// Restore session, tokens and bookmarks from the last run.
	if err := sessions.Restore(context.Background()); err != nil {
		loggerClient.Warn("failed to restore session", logger.Error(err))
	}

	bookmarks := board.NewBookmarks(state, store, api, loggerClient)

	// Manual reload trigger channels
	listingsTrigger := make(chan struct{}, 1)
	trendingTrigger := make(chan struct{}, 1)

	listingsReloader := scheduler.NewListingsReloader(
		api, state, store, sessions, loggerClient, listingsTrigger)
	trendingReloader := scheduler.NewTrendingReloader(
		api, state, loggerClient, trendingTrigger)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		State:           state,
		Bookmarks:       bookmarks,
		Sessions:        sessions,
		Prefs:           store,
		ListingsTrigger: listingsTrigger,
		TrendingTrigger: trendingTrigger,
		LoginRateLimit:  cfg.LoginRateLimit,
		LoginRateWindow: cfg.LoginRateWindow,
		TrustProxy:      cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:              cfg,
		logger:           loggerClient,
		server:           server,
		redisClient:      redisClient,
		state:            state,
		sessions:         sessions,
		listingsReloader: listingsReloader,
		trendingReloader: trendingReloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Dakiya v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Dakiya %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start reloaders: initial fetch plus manual-trigger loops. A failed
	// initial fetch is recorded on the board, not fatal.
	a.listingsReloader.Start(ctx)
	a.trendingReloader.Start(ctx)
	a.logger.Info("reloaders started")

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.listingsReloader.Stop()
	a.trendingReloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Dakiya stopped cleanly")
	return nil
}
