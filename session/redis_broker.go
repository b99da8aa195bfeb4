package session

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "session:token:"

// GET-compare-DEL in one round trip so validation and consumption cannot be
// interleaved by a concurrent caller.
const consumeScript = `
local stored = redis.call("GET", KEYS[1])
if stored == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`

var consumeLua = redis.NewScript(consumeScript)

var _ Broker = (*RedisBroker)(nil)

// RedisBroker stores session tokens in Redis, keyed by the opaque token
// string with the owning user ID as value.
type RedisBroker struct {
	client redis.UniversalClient
}

func NewRedisBroker(client redis.UniversalClient) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Issue(ctx context.Context, token string, userID int, ttl time.Duration) error {
	key := keyPrefix + token
	if err := b.client.Set(ctx, key, strconv.Itoa(userID), ttl).Err(); err != nil {
		return errors.Wrap(err, "[RedisBroker.Issue] SET session token")
	}
	log.Debug().Int("user_id", userID).Msg("session token stored")
	return nil
}

func (b *RedisBroker) ValidateAndConsume(ctx context.Context, token string, userID int) (bool, error) {
	key := keyPrefix + token
	res, err := consumeLua.Run(ctx, b.client, []string{key}, strconv.Itoa(userID)).Int64()
	if err != nil {
		return false, errors.Wrap(err, "[RedisBroker.ValidateAndConsume] run consume script")
	}
	consumed := res == 1
	log.Debug().Bool("consumed", consumed).Msg("session token consumption attempted")
	return consumed, nil
}

func (b *RedisBroker) Delete(ctx context.Context, token string) (bool, error) {
	key := keyPrefix + token
	count, err := b.client.Del(ctx, key).Result()
	if err != nil {
		return false, errors.Wrap(err, "[RedisBroker.Delete] DEL session token")
	}
	return count > 0, nil
}
