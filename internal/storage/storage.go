package storage

import (
	"context"

	"cv-agent-go/internal/config"
	"cv-agent-go/internal/logger"
)

// Storage 按配置开关组装的存储聚合
// Redis和MinIO都是可选的，关闭时对应指针为nil，调用方需判空
type Storage struct {
	Redis *Redis
	MinIO *MinIO
}

// NewStorage 初始化启用的存储组件
// 任一已启用组件初始化失败都视为致命错误
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	if cfg.Redis.Enabled {
		r, err := NewRedisAdapter(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		s.Redis = r
	} else {
		logger.Info().Msg("Redis未启用，跳过去重与结果缓存")
	}

	if cfg.MinIO.Enabled {
		m, err := NewMinIO(ctx, &cfg.MinIO)
		if err != nil {
			return nil, err
		}
		s.MinIO = m
	} else {
		logger.Info().Msg("MinIO未启用，解析产物不落对象存储")
	}

	return s, nil
}

// Close 释放底层连接
func (s *Storage) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
}
