package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/petmart-next/internal/cache"
	"github.com/petmart-next/internal/config"
	"github.com/petmart-next/internal/logger"

	"github.com/redis/go-redis/v9"
)

// loginAttemptScript 滑动窗口计数：窗口内累计次数超限后进入封禁期。
// KEYS[1] 计数键，ARGV[1] 窗口秒数，ARGV[2] 最大尝试次数，ARGV[3] 封禁秒数。
// 返回 1 表示放行，0 表示已被限流。
var loginAttemptScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
end
if count > tonumber(ARGV[2]) then
  redis.call('EXPIRE', KEYS[1], tonumber(ARGV[3]))
  return 0
end
return 1
`)

// LoginRateLimiter 登录限流器。
// Redis 不可用时退化为放行，仅记录告警。
type LoginRateLimiter struct {
	cfg config.LoginRateLimitConfig
}

// NewLoginRateLimiter 创建登录限流器
func NewLoginRateLimiter(cfg config.LoginRateLimitConfig) *LoginRateLimiter {
	return &LoginRateLimiter{cfg: cfg}
}

// Allow 记录一次登录尝试并判断是否放行
func (l *LoginRateLimiter) Allow(ctx context.Context, scope, identity, clientIP string) error {
	if l == nil || l.cfg.MaxAttempts <= 0 || l.cfg.WindowSeconds <= 0 {
		return nil
	}
	if !cache.Enabled() {
		return nil
	}

	blockSeconds := l.cfg.BlockSeconds
	if blockSeconds <= 0 {
		blockSeconds = l.cfg.WindowSeconds
	}
	key := fmt.Sprintf("%s:%s", cache.Prefix(), l.buildKey(scope, identity, clientIP))
	result, err := loginAttemptScript.Run(ctx, cache.Client(), []string{key},
		l.cfg.WindowSeconds, l.cfg.MaxAttempts, blockSeconds).Int()
	if err != nil {
		logger.Warnw("login_rate_limit_check_failed", "key", key, "error", err)
		return nil
	}
	if result == 0 {
		return ErrTooManyAttempts
	}
	return nil
}

// Reset 登录成功后清除计数
func (l *LoginRateLimiter) Reset(ctx context.Context, scope, identity, clientIP string) {
	if l == nil || !cache.Enabled() {
		return
	}
	key := l.buildKey(scope, identity, clientIP)
	if err := cache.Del(ctx, key); err != nil {
		logger.Warnw("login_rate_limit_reset_failed", "key", key, "error", err)
	}
}

func (l *LoginRateLimiter) buildKey(scope, identity, clientIP string) string {
	identity = strings.ToLower(strings.TrimSpace(identity))
	return fmt.Sprintf("login_attempts:%s:%s:%s", scope, identity, clientIP)
}
