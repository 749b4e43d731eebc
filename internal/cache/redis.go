package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vms-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "vms"
	pingTimeout   = 3 * time.Second
)

type store struct {
	client *redis.Client
	prefix string
}

// 未初始化或连接失败时为空，所有读写退化为未命中
var current = &store{prefix: defaultPrefix}

// InitRedis 连接 Redis 并 Ping；失败时保持禁用状态并返回错误
func InitRedis(cfg *config.RedisConfig) error {
	current = &store{prefix: defaultPrefix}
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), ":")
	if prefix == "" {
		prefix = defaultPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}
	current = &store{client: client, prefix: prefix}
	return nil
}

// Close 关闭连接
func Close() error {
	if current.client == nil {
		return nil
	}
	err := current.client.Close()
	current = &store{prefix: current.prefix}
	return err
}

// Enabled Redis 是否可用
func Enabled() bool {
	return current.client != nil
}

// Client 原始客户端，限流等需要 Lua 的场景使用；未启用返回 nil
func Client() *redis.Client {
	return current.client
}

// Key 以 ":" 拼接业务 key，不含全局前缀
func Key(parts ...interface{}) string {
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		var s string
		switch v := part.(type) {
		case string:
			s = strings.TrimSpace(v)
		case uint:
			s = strconv.FormatUint(uint64(v), 10)
		case int64:
			s = strconv.FormatInt(v, 10)
		default:
			s = fmt.Sprint(v)
		}
		if s != "" {
			items = append(items, s)
		}
	}
	return strings.Join(items, ":")
}

func (s *store) fullKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.prefix
	}
	return s.prefix + ":" + key
}

// GetJSON 读取并反序列化，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	s := current
	if s.client == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, s.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 序列化写入，ttl<=0 表示不过期
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s := current
	if s.client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, s.fullKey(key), payload, ttl).Err()
}

// Del 删除
func Del(ctx context.Context, key string) error {
	s := current
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, s.fullKey(key)).Err()
}
