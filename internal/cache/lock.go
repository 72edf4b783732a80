package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrLockTimeout 在等待期限內沒有取得鎖
var ErrLockTimeout = errors.New("cache: lock wait timed out")

// lockRetryInterval 為 SetNX 失敗後的重試間隔
var lockRetryInterval = 50 * time.Millisecond

// Locker 以 Redis SET NX 實作的簡易分散式互斥鎖
type Locker struct {
	cache Cache
	ttl   time.Duration
	wait  time.Duration
}

// NewLocker ttl 為鎖的自動過期時間，wait 為最長等待時間
func NewLocker(c Cache, ttl, wait time.Duration) *Locker {
	return &Locker{cache: c, ttl: ttl, wait: wait}
}

// Lock 取得 key 的鎖並回傳釋放函式
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.cache.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// releaseScript 比對 token 與刪除必須在 Redis 端一次完成
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// release 只刪除自己持有的鎖；鎖已過期被他人取得時不動作
func (l *Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	l.cache.Eval(ctx, releaseScript, []string{key}, token)
}
