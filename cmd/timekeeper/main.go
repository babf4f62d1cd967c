package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	appcfg "github.com/hanool/timekeeper/internal/config"
	"github.com/hanool/timekeeper/internal/httpapi"
	"github.com/hanool/timekeeper/internal/obslog"
	"github.com/hanool/timekeeper/internal/service/allocator"
	"github.com/hanool/timekeeper/internal/session"
	"github.com/hanool/timekeeper/internal/tcpreset"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()

	if cfg.TCPresetFile != "" {
		if err := tcpreset.LoadFile(cfg.TCPresetFile); err != nil {
			logger.Fatal("preset file error", zap.Error(err))
		}
	}

	var repo session.Repository
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis url error", zap.Error(err))
		}
		rdb := redis.NewClient(opt)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cancel()
			logger.Fatal("redis ping error", zap.Error(err))
		}
		cancel()
		repo = session.NewRedisRepository(rdb, cfg.SessionTTL())
		logger.Info("session store: redis")
	} else {
		repo = session.NewMemoryRepository(cfg.SessionTTL())
		logger.Info("session store: memory")
	}

	svc := allocator.New(cfg, session.NewManager(repo), logger)
	api := httpapi.NewServer(svc, logger)

	httpSrv := &fasthttp.Server{
		Handler:      api.Handler(),
		Name:         "timekeeper",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.ListenAddr),
			zap.Int("slow_mover", cfg.SlowMover),
			zap.Int("nodes_time", cfg.NodesTime),
			zap.Bool("ponder", cfg.Ponder),
		)
		if err := httpSrv.ListenAndServe(cfg.ListenAddr); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	if err := httpSrv.Shutdown(); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
	_ = logger.Sync()
}
