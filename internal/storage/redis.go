package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cv-agent-go/internal/config"
	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/logger"
	"cv-agent-go/internal/processor"
	"cv-agent-go/internal/types"
)

// Redis 去重与解析结果缓存
type Redis struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisAdapter 创建Redis适配器并验证连通性
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}

	opts := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeoutSeconds > 0 {
		opts.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}
	if cfg.ReadTimeoutSeconds > 0 {
		opts.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		opts.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis %s 失败: %w", cfg.Address, err)
	}

	logger.Info().Str("address", cfg.Address).Int("db", cfg.DB).Msg("Redis适配器初始化成功")
	return &Redis{client: client, cfg: cfg}, nil
}

// Close 关闭连接池
func (r *Redis) Close() error {
	return r.client.Close()
}

// Ping 健康检查
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// md5ExpireDuration 去重记录的过期时间
func (r *Redis) md5ExpireDuration() time.Duration {
	days := r.cfg.MD5RecordExpireDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

// cacheExpireDuration 解析结果缓存的过期时间
func (r *Redis) cacheExpireDuration() time.Duration {
	days := r.cfg.RecordCacheExpireDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// CheckAndAddParsedTextMD5 原子地检查并登记解析文本MD5
// 返回true表示该文本此前已处理过
func (r *Redis) CheckAndAddParsedTextMD5(ctx context.Context, md5Hex string) (bool, error) {
	key := constants.ParsedTextMD5SetKey + ":" + md5Hex
	set, err := r.client.SetNX(ctx, key, "1", r.md5ExpireDuration()).Result()
	if err != nil {
		return false, fmt.Errorf("登记解析文本MD5失败: %w", err)
	}
	return !set, nil
}

// GetCachedRecord 按规范化文本MD5读取缓存的解析结果，未命中返回nil
func (r *Redis) GetCachedRecord(ctx context.Context, md5Hex string) (*types.ResumeRecord, error) {
	key := constants.RecordCacheKeyPrefix + md5Hex
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取解析结果缓存失败: %w", err)
	}

	var record types.ResumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		// 缓存损坏按未命中处理，同时清掉脏数据
		logger.Warn().Err(err).Str("key", key).Msg("解析结果缓存损坏，已删除")
		r.client.Del(ctx, key)
		return nil, nil
	}
	return &record, nil
}

// SetCachedRecord 写入解析结果缓存
func (r *Redis) SetCachedRecord(ctx context.Context, md5Hex string, record *types.ResumeRecord) error {
	if record == nil {
		return nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}
	key := constants.RecordCacheKeyPrefix + md5Hex
	if err := r.client.Set(ctx, key, data, r.cacheExpireDuration()).Err(); err != nil {
		return fmt.Errorf("写入解析结果缓存失败: %w", err)
	}
	return nil
}

var _ processor.RecordCache = (*Redis)(nil)
var _ processor.Deduper = (*Redis)(nil)
