package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func lockKey(userID uuid.UUID) string {
	return fmt.Sprintf("sms:dispatch:user:%s", userID)
}

// lockUser takes the per-user batch lock. Without redis, or when redis is
// unreachable, it proceeds unlocked and relies on the row claim.
func (s *service) lockUser(ctx context.Context, userID uuid.UUID) (func(), bool) {
	if s.redis == nil {
		return func() {}, true
	}

	key := lockKey(userID)
	token := uuid.NewString()
	acquired, err := s.redis.SetNX(ctx, key, token, s.opts.LockTTL).Result()
	if err != nil {
		s.logger.Warn("dispatch lock unavailable", zap.String("key", key), zap.Error(err))
		return func() {}, true
	}
	if !acquired {
		return nil, false
	}

	return func() {
		if err := unlockScript.Run(context.WithoutCancel(ctx), s.redis, []string{key}, token).Err(); err != nil {
			s.logger.Warn("failed to release dispatch lock", zap.String("key", key), zap.Error(err))
		}
	}, true
}
