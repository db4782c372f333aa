package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"winx/internal/analysis"
	"winx/internal/authz"
	"winx/internal/catalog"
	"winx/internal/config"
	cronrunner "winx/internal/cron"
	"winx/internal/events"
	"winx/internal/handler"
	"winx/internal/logger"
	"winx/internal/prefs"
	"winx/internal/session"
	"winx/internal/stats"
	"winx/internal/storage"
	"winx/internal/storage/gormstore"
)

func main() {
	cfgPath := os.Getenv("WINX_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("WINX_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var blobs storage.Store
	var pinger handler.Pinger
	switch strings.ToLower(cfg.Storage.Driver) {
	case "postgres":
		gs, err := gormstore.Open(cfg.Storage)
		if err != nil {
			logger.Fatal("storage open failed", zap.Error(err))
		}
		defer gs.Close()
		blobs = gs
		pinger = gs
	default:
		logger.Info("using in-memory storage; state will not survive restarts")
		blobs = storage.NewMemory()
	}

	loadCtx := context.Background()

	var seeder *catalog.Seeder
	if cfg.Seed.Enabled {
		seeder = catalog.NewSeeder(cfg.Seed.Count, cfg.Seed.UnlockedHead)
	}
	catalogStore, err := catalog.New(loadCtx, blobs, seeder, logger)
	if err != nil {
		logger.Fatal("catalog load failed", zap.Error(err))
	}

	policy := authz.NewEmailAllowlist(cfg.Auth.AdminEmails)
	sessions, err := session.New(loadCtx, blobs, policy, session.Options{
		Delay:        cfg.Auth.LoginDelay,
		StartingGems: decimal.NewFromFloat(cfg.Auth.StartingGems),
	}, logger)
	if err != nil {
		logger.Fatal("session load failed", zap.Error(err))
	}

	prefsStore := prefs.New(blobs)
	adWatcher := &prefs.AdWatcher{
		Prefs:    prefsStore,
		Sessions: sessions,
		Logger:   logger,
		Reward:   decimal.NewFromFloat(cfg.Ads.RewardGems),
		Cooldown: cfg.Ads.Cooldown,
		Delay:    cfg.Ads.WatchDelay,
	}
	generator := &analysis.Generator{Delay: cfg.Analysis.Delay}
	statsService := &stats.Service{Catalog: catalogStore, Blobs: blobs, Logger: logger}
	hub := events.NewHub(logger)

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{Storage: pinger}
	healthHandler.Register(engine)
	predictionHandler := &handler.PredictionHandler{
		Catalog:  catalogStore,
		Sessions: sessions,
		Hub:      hub,
		Logger:   logger,
	}
	predictionHandler.Register(engine)
	authHandler := &handler.AuthHandler{Sessions: sessions, Hub: hub, Logger: logger}
	authHandler.Register(engine)
	accountHandler := &handler.AccountHandler{
		Prefs:    prefsStore,
		Ads:      adWatcher,
		Sessions: sessions,
		Hub:      hub,
	}
	accountHandler.Register(engine)
	analysisHandler := &handler.AnalysisHandler{Generator: generator, Sessions: sessions}
	analysisHandler.Register(engine)
	statsHandler := &handler.StatsHandler{Stats: statsService}
	statsHandler.Register(engine)
	eventsHandler := &handler.EventsHandler{Hub: hub, Logger: logger}
	eventsHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	_, err = cronRunner.Add(cfg.Stats.SnapshotCron, func(ctx context.Context) {
		if _, err := statsService.Snapshot(ctx); err != nil {
			logger.Warn("cron stats snapshot failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Warn("cron register stats snapshot failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	// Take one snapshot up front so the stats page has data on first boot.
	if _, err := statsService.Snapshot(ctx); err != nil {
		logger.Warn("initial stats snapshot failed", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
