package contact

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "contact:token:"

// TokenStore issues single-use form tokens with a TTL. A submission must
// present a token that was handed out for a page load and not yet spent.
type TokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenStore(rdb *redis.Client, ttl time.Duration) *TokenStore {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &TokenStore{rdb: rdb, ttl: ttl}
}

// Issue mints a fresh token and records it. A failed record is logged, not
// surfaced: Consume fails open for unrecorded tokens, so the form keeps
// working through a store outage.
func (s *TokenStore) Issue(ctx context.Context) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)

	if err := s.rdb.Set(ctx, tokenKeyPrefix+token, 1, s.ttl).Err(); err != nil {
		log.Printf("contact: token store unavailable, issuing unrecorded token: %v", err)
	}
	return token, nil
}

// Consume spends a token, reporting whether it was valid. A token is valid
// at most once. If Redis is down the check fails open so the form keeps
// working without its bookkeeping.
func (s *TokenStore) Consume(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	err := s.rdb.GetDel(ctx, tokenKeyPrefix+token).Err()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("contact: token store unavailable, accepting token: %v", err)
		return true
	}
	return true
}
