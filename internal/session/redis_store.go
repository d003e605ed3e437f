package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

// RedisStore persists the credential as four keys, mirroring the four entries
// the browser client kept in local storage: access token, refresh token,
// serialized profile, and numeric expiry epoch. The refresh token is sealed
// before it touches Redis.
type RedisStore struct {
	client *redis.Client
	sealer *Sealer
	prefix string
	logger *zap.Logger
}

// NewRedisStore builds a Redis-backed store.
func NewRedisStore(client *redis.Client, sealer *Sealer, prefix string, logger *zap.Logger) *RedisStore {
	if prefix == "" {
		prefix = "portal:session"
	}
	return &RedisStore{client: client, sealer: sealer, prefix: prefix, logger: logger}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}

// Get returns the current credential. Any storage failure reads as absent.
func (s *RedisStore) Get(ctx context.Context) *domain.Credential {
	vals, err := s.client.MGet(ctx,
		s.key("access_token"),
		s.key("refresh_token"),
		s.key("profile"),
		s.key("expires_at"),
	).Result()
	if err != nil {
		s.logger.Debug("session read failed; treating as absent", zap.Error(err))
		return nil
	}

	access, _ := vals[0].(string)
	if access == "" {
		return nil
	}

	cred := &domain.Credential{AccessToken: access}

	if sealed, ok := vals[1].(string); ok && sealed != "" {
		plain, err := s.sealer.Open(sealed)
		if err != nil {
			s.logger.Warn("stored refresh token unreadable; dropping it", zap.Error(err))
		} else {
			cred.RefreshToken = plain
		}
	}

	if profile, ok := vals[2].(string); ok && profile != "" {
		if err := json.Unmarshal([]byte(profile), &cred.Subject); err != nil {
			s.logger.Warn("stored profile unreadable", zap.Error(err))
		}
	}

	if epoch, ok := vals[3].(string); ok && epoch != "" {
		if sec, err := strconv.ParseInt(epoch, 10, 64); err == nil && sec > 0 {
			cred.ExpiresAt = time.Unix(sec, 0)
		}
	}

	return cred
}

// IsExpired reports whether the stored credential is absent or past expiry.
func (s *RedisStore) IsExpired(ctx context.Context) bool {
	return credentialExpired(s.Get(ctx))
}

// Set persists a new credential, overwriting any previous session.
func (s *RedisStore) Set(ctx context.Context, cred domain.Credential) error {
	sealedRefresh := ""
	if cred.RefreshToken != "" {
		sealed, err := s.sealer.Seal(cred.RefreshToken)
		if err != nil {
			return err
		}
		sealedRefresh = sealed
	}

	profile, err := json.Marshal(cred.Subject)
	if err != nil {
		return err
	}

	epoch := ""
	if !cred.ExpiresAt.IsZero() {
		epoch = strconv.FormatInt(cred.ExpiresAt.Unix(), 10)
	}

	return s.client.MSet(ctx,
		s.key("access_token"), cred.AccessToken,
		s.key("refresh_token"), sealedRefresh,
		s.key("profile"), string(profile),
		s.key("expires_at"), epoch,
	).Err()
}

// Clear removes all session keys.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx,
		s.key("access_token"),
		s.key("refresh_token"),
		s.key("profile"),
		s.key("expires_at"),
	).Err()
}
