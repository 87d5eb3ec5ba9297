package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// Resolution results are cached per device with a short TTL so a fleet of
// devices polling every few seconds does not hammer Postgres. The cache is
// best-effort: any redis failure degrades to a direct resolution.
const resolutionTTL = 15 * time.Second

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func resolutionKey(deviceID int) string {
	return fmt.Sprintf("lumen:resolution:%d", deviceID)
}

// CacheResolution stores a serialized resolution result for a device.
func CacheResolution(ctx context.Context, deviceID int, payload []byte) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, resolutionKey(deviceID), payload, resolutionTTL).Err(); err != nil {
		log.Warn().Err(err).Int("device_id", deviceID).Msg("failed to cache resolution")
	}
}

// GetCachedResolution returns the cached payload for a device, or false when
// absent or redis is unreachable.
func GetCachedResolution(ctx context.Context, deviceID int) ([]byte, bool) {
	if Rdb == nil {
		return nil, false
	}
	payload, err := Rdb.Get(ctx, resolutionKey(deviceID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Int("device_id", deviceID).Msg("resolution cache read failed")
		}
		return nil, false
	}
	return payload, true
}

// InvalidateResolution drops one device's cached result, used when that
// device's assignments change.
func InvalidateResolution(ctx context.Context, deviceID int) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Del(ctx, resolutionKey(deviceID)).Err(); err != nil {
		log.Warn().Err(err).Int("device_id", deviceID).Msg("resolution cache invalidation failed")
	}
}

const pairingTTL = 5 * time.Minute

func pairingKey(code string) string {
	return fmt.Sprintf("lumen:pairing:%s", code)
}

// StorePairingCode maps a short-lived pairing code to a device id. The TV
// client exchanges the code for a device token within the TTL.
func StorePairingCode(ctx context.Context, code string, deviceID int) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, pairingKey(code), deviceID, pairingTTL).Err(); err != nil {
		log.Warn().Err(err).Int("device_id", deviceID).Msg("failed to store pairing code")
	}
}

// ConsumePairingCode resolves and deletes a pairing code, returning the
// device id it was issued for. Single use.
func ConsumePairingCode(ctx context.Context, code string) (int, bool) {
	if Rdb == nil {
		return 0, false
	}
	deviceID, err := Rdb.Get(ctx, pairingKey(code)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("pairing code lookup failed")
		}
		return 0, false
	}
	Rdb.Del(ctx, pairingKey(code))
	return deviceID, true
}

// InvalidateAllResolutions drops every cached result, used when a campaign
// mutation may affect an unknown set of devices.
func InvalidateAllResolutions(ctx context.Context) {
	if Rdb == nil {
		return
	}
	iter := Rdb.Scan(ctx, 0, "lumen:resolution:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := Rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Str("key", iter.Val()).Msg("resolution cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("resolution cache scan failed")
	}
}
