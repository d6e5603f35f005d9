package rdx

import (
	"time"

	"pulsefit/globals"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long an advisory lock can outlive a crashed holder.
const lockTTL = 5 * time.Second

// releaseScript frees the lock only while the caller's token is still
// stored, so a holder that outlived the TTL cannot delete its successor's
// lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// AcquireLock takes the cross-process advisory lock for a booking key and
// returns the token ReleaseLock needs. An empty token with a nil error
// means the lock is held elsewhere; callers surface "retry" to the client
// rather than wait.
func AcquireLock(key string) (string, error) {
	token := uuid.NewString()
	ok, err := RdxSetNX("lock:"+key, token, lockTTL)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

func ReleaseLock(key, token string) {
	_ = releaseScript.Run(globals.Ctx, Conn, []string{"lock:" + key}, token).Err()
}
