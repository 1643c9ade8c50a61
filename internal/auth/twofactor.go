package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	codeKeyPrefix    = "auth:2fa:code:"
	attemptKeyPrefix = "auth:2fa:attempts:"

	// maxCodeAttempts bounds guesses per issued code.
	maxCodeAttempts = 5
)

// CodeStore keeps second-factor codes in Redis with a TTL. Each session
// gets its own random code; a configured development code may override the
// comparison outside production.
type CodeStore struct {
	rdb     *redis.Client
	ttl     time.Duration
	devCode string
}

func NewCodeStore(rdb *redis.Client, ttl time.Duration, devCode string) *CodeStore {
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &CodeStore{rdb: rdb, ttl: ttl, devCode: devCode}
}

// Issue generates a 6-digit code for the session and stores it.
func (s *CodeStore) Issue(ctx context.Context, sessionToken string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, codeKeyPrefix+sessionToken, code, s.ttl)
	pipe.Del(ctx, attemptKeyPrefix+sessionToken)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks code against the stored value for the session. The stored
// code is deleted on success; attempts are counted and capped.
func (s *CodeStore) Verify(ctx context.Context, sessionToken, code string) (bool, error) {
	if s.devCode != "" && subtle.ConstantTimeCompare([]byte(code), []byte(s.devCode)) == 1 {
		return true, nil
	}

	attempts, err := s.rdb.Incr(ctx, attemptKeyPrefix+sessionToken).Result()
	if err != nil {
		return false, err
	}
	if attempts == 1 {
		s.rdb.Expire(ctx, attemptKeyPrefix+sessionToken, s.ttl)
	}
	if attempts > maxCodeAttempts {
		return false, nil
	}

	stored, err := s.rdb.Get(ctx, codeKeyPrefix+sessionToken).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	s.rdb.Del(ctx, codeKeyPrefix+sessionToken, attemptKeyPrefix+sessionToken)
	return true, nil
}
