package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/afeldman/gmark/internal/classify"
	"github.com/afeldman/gmark/internal/config"
	"github.com/afeldman/gmark/internal/fetch"
	"github.com/afeldman/gmark/internal/folder"
	"github.com/afeldman/gmark/internal/httpserver"
	"github.com/afeldman/gmark/internal/httpserver/deps"
	"github.com/afeldman/gmark/internal/ingest"
	"github.com/afeldman/gmark/internal/logger"
	"github.com/afeldman/gmark/internal/redis"
	redisstore "github.com/afeldman/gmark/internal/store/redis"
	"github.com/afeldman/gmark/internal/store/sqlite"
	"github.com/afeldman/gmark/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       *sqlite.Store
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	st, err := sqlite.Open(cfg.DataDir)
	if err != nil {
		loggerClient.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("database ready", logger.String("dir", cfg.DataDir))

	// The Redis cache is optional: without it every classification
	// pays the full AI round trip, but everything still works.
	var (
		redisClient *goredis.Client
		cache       classify.Cache
	)
	if cfg.CacheEnabled() {
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Warnf("Redis unavailable, running without classification cache: %v", err)
		} else {
			cache = redisstore.NewCache(redisClient, cfg.CacheTTL, loggerClient)
			loggerClient.Info("classification cache enabled",
				logger.Duration("ttl", cfg.CacheTTL))
		}
	} else {
		loggerClient.Info("classification cache not configured")
	}

	rules := classify.DefaultRules()
	if cfg.RulesFile != "" {
		rules, err = classify.LoadRules(cfg.RulesFile)
		if err != nil {
			loggerClient.Warnf("Failed to load rules file, using defaults: %v", err)
		} else {
			loggerClient.Info("heuristic rules loaded", logger.String("file", cfg.RulesFile))
		}
	}

	opts := classify.Options{
		Heuristic: classify.NewHeuristicProvider(rules),
		Cache:     cache,
	}
	if cfg.PreferLocal && cfg.LocalEndpoint != "" {
		opts.Local = classify.NewLocalProvider(cfg.LocalEndpoint, cfg.LocalAPIKey, cfg.ClassifyTimeout)
		loggerClient.Info("local classifier configured",
			logger.String("endpoint", cfg.LocalEndpoint))
	}
	if cfg.CloudAPIKey != "" {
		opts.Cloud = classify.NewCloudProvider(cfg.CloudEndpoint, cfg.CloudModel, cfg.CloudAPIKey, cfg.ClassifyTimeout)
		loggerClient.Info("cloud classifier configured",
			logger.String("model", cfg.CloudModel))
	}
	if opts.Local == nil && opts.Cloud == nil {
		loggerClient.Warn("no AI classifier configured, using heuristics only")
	}

	classifier := classify.New(opts, loggerClient)
	fetcher := fetch.New(cfg.FetchTimeout, loggerClient)
	resolver := folder.NewResolver(st, loggerClient)
	pipeline := ingest.New(fetcher, classifier, resolver, st, loggerClient)

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		Store:        st,
		Pipeline:     pipeline,
		Resolver:     resolver,
		CacheEnabled: cache != nil,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		store:       st,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting gmark %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	}

	a.logger.Info("gmark stopped cleanly")
	return nil
}
