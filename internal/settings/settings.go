package settings

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const settingsKey = "site:settings"

// defaults are returned whenever a key is unset or the store is
// unreachable. Reads must keep working without Redis.
var defaults = map[string]string{
	"theme":              "dark",
	"maintenance_banner": "",
}

// Store keeps small whitelisted site preferences in a Redis hash.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get returns all settings, filling gaps (or a dead store) with defaults.
func (s *Store) Get(ctx context.Context) map[string]string {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}

	stored, err := s.rdb.HGetAll(ctx, settingsKey).Result()
	if err != nil {
		log.Printf("settings: store unavailable, serving defaults: %v", err)
		return out
	}

	for k, v := range stored {
		if _, known := defaults[k]; known {
			out[k] = v
		}
	}
	return out
}

// SetAll updates whitelisted keys in one write. Any unknown key rejects
// the whole batch before anything is stored.
func (s *Store) SetAll(ctx context.Context, kv map[string]string) error {
	for k := range kv {
		if _, known := defaults[k]; !known {
			return fmt.Errorf("unknown setting %q", k)
		}
	}
	if len(kv) == 0 {
		return nil
	}

	pairs := make([]any, 0, len(kv)*2)
	for k, v := range kv {
		pairs = append(pairs, k, v)
	}
	return s.rdb.HSet(ctx, settingsKey, pairs...).Err()
}
