package svc

import (
	"context"
	"time"

	"bbs/config"
	"bbs/internal/engagement"
	"bbs/internal/infra/cache"
	"bbs/internal/infra/db"
	"bbs/internal/middleware"

	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceContext struct {
	Config     *config.Config
	DB         *gorm.DB
	Cache      *cache.RedisCache // 可能为 nil：Redis 不可用时限流和黑名单降级
	Engagement *engagement.Service

	tracerProvider *trace.TracerProvider
}

// NewServiceContext 这里是所有初始化的总入口
func NewServiceContext(cfg *config.Config) (*ServiceContext, error) {
	dbConn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	s := New(cfg, dbConn, nil)

	rdb, err := cache.New(cfg)
	if err != nil {
		zap.L().Warn("Redis connection failed, continuing without Redis", zap.Error(err))
	} else {
		zap.L().Info("Redis connected successfully")
		s.Cache = rdb
	}

	if cfg.JaegerEndpoint != "" {
		tp, err := middleware.InitTracer("college-bbs", cfg.JaegerEndpoint, cfg.AppEnv)
		if err != nil {
			zap.L().Warn("failed to init tracer", zap.Error(err))
		} else {
			s.tracerProvider = tp
		}
	}

	return s, nil
}

// New 用已经建好的连接组装 ServiceContext，测试里直接用它
func New(cfg *config.Config, dbConn *gorm.DB, rdb *cache.RedisCache) *ServiceContext {
	return &ServiceContext{
		Config: cfg,
		DB:     dbConn,
		Cache:  rdb,
		Engagement: engagement.NewService(dbConn, engagement.Options{
			UnlikePolicy: engagement.ParseUnlikePolicy(cfg.UnlikeRacePolicy),
		}),
	}
}

func (s *ServiceContext) Close() {
	if s.tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.tracerProvider.Shutdown(ctx); err != nil {
			zap.L().Error("Tracer shutdown error", zap.Error(err))
		}
	}

	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			zap.L().Error("Redis close error", zap.Error(err))
		}
	}

	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	zap.L().Info("resources closed")
}
