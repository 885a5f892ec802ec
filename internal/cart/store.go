package cart

import (
	"context"
	"sync"
	"time"

	"github.com/petmart-next/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Store 匿名购物车快照存储。
// Load 永不向调用方抛错：槽位缺失、内容损坏或版本未知时回退空状态；
// Save/Drop 的失败仅记录日志，内存中的状态始终是权威副本。
// 同一槽位的并发写入不做协调，后写者胜出。
type Store interface {
	Load(ctx context.Context, key string) *State
	Save(ctx context.Context, key string, state *State)
	Drop(ctx context.Context, key string)
}

// RedisStore 基于 Redis 的快照存储
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 创建 Redis 快照存储
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "pm"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) slot(key string) string {
	return s.prefix + ":cart:session:" + key
}

// Load 读取快照，任何异常均回退空购物车
func (s *RedisStore) Load(ctx context.Context, key string) *State {
	if s.client == nil || key == "" {
		return NewState()
	}
	data, err := s.client.Get(ctx, s.slot(key)).Bytes()
	if err == redis.Nil {
		return NewState()
	}
	if err != nil {
		logger.Warnw("cart_snapshot_load_failed", "key", key, "error", err)
		return NewState()
	}
	state, err := DecodeSnapshot(data)
	if err != nil {
		logger.Warnw("cart_snapshot_corrupt", "key", key, "error", err)
		return NewState()
	}
	return state
}

// Save 写入快照，失败仅记录日志
func (s *RedisStore) Save(ctx context.Context, key string, state *State) {
	if s.client == nil || key == "" {
		return
	}
	data, err := EncodeSnapshot(state)
	if err != nil {
		logger.Errorw("cart_snapshot_encode_failed", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, s.slot(key), data, s.ttl).Err(); err != nil {
		logger.Warnw("cart_snapshot_save_failed", "key", key, "error", err)
	}
}

// Drop 删除快照槽位，失败仅记录日志
func (s *RedisStore) Drop(ctx context.Context, key string) {
	if s.client == nil || key == "" {
		return
	}
	if err := s.client.Del(ctx, s.slot(key)).Err(); err != nil {
		logger.Warnw("cart_snapshot_drop_failed", "key", key, "error", err)
	}
}

// MemoryStore 内存快照存储，供测试及未启用 Redis 时使用
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemoryStore 创建内存快照存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// Load 读取快照，缺失或损坏时回退空购物车
func (s *MemoryStore) Load(ctx context.Context, key string) *State {
	s.mu.Lock()
	data, ok := s.slots[key]
	s.mu.Unlock()
	if !ok {
		return NewState()
	}
	state, err := DecodeSnapshot(data)
	if err != nil {
		logger.Warnw("cart_snapshot_corrupt", "key", key, "error", err)
		return NewState()
	}
	return state
}

// Save 写入快照
func (s *MemoryStore) Save(ctx context.Context, key string, state *State) {
	data, err := EncodeSnapshot(state)
	if err != nil {
		logger.Errorw("cart_snapshot_encode_failed", "key", key, "error", err)
		return
	}
	s.mu.Lock()
	s.slots[key] = data
	s.mu.Unlock()
}

// Drop 删除快照槽位
func (s *MemoryStore) Drop(ctx context.Context, key string) {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
}

// Corrupt 将槽位内容替换为任意字节，仅供测试损坏回退路径使用
func (s *MemoryStore) Corrupt(key string, data []byte) {
	s.mu.Lock()
	s.slots[key] = data
	s.mu.Unlock()
}
