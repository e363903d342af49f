package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"

	"github.com/communityhq/community-service/internal/core/entity"
	"github.com/communityhq/community-service/internal/pkg/apperr"
	"github.com/communityhq/community-service/internal/pkg/applog"
)

// SessionStore keeps sessions as JSON values keyed by token, expired by Redis
// TTL so stale sessions vanish without a reaper.
type SessionStore struct {
	rdb       *redis.Client
	log       applog.AppLogger
	validator *validator.Validate
	cfg       Config
}

// NewSessionStore validates the Config, constructs a Redis client with
// optional TLS, and returns an initialized SessionStore.
func NewSessionStore(log applog.AppLogger, v *validator.Validate, cfg *Config) (*SessionStore, error) {
	if err := v.Struct(cfg); err != nil {
		log.Error("invalid redis config", "err", err)
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("invalid redis config"), apperr.WithCause(err))
	}
	return &SessionStore{rdb: newClient(cfg), log: log, validator: v, cfg: *cfg}, nil
}

func (ss *SessionStore) key(token string) string {
	return ss.cfg.KeyPrefix + ":session:" + token
}

// Put stores a session under its token for the given TTL.
func (ss *SessionStore) Put(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	if err := ss.validator.Struct(session); err != nil {
		return apperr.NewInvalidInputErr(apperr.WithMessage("invalid session"), apperr.WithCause(err))
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("failed to marshal session"), apperr.WithCause(err))
	}
	if err := ss.rdb.Set(ctx, ss.key(session.Token), payload, ttl).Err(); err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("redis SET session failed"), apperr.WithCause(err))
	}
	return nil
}

// Get loads the session for a token. Returns a not-found error when the token
// is unknown or already expired.
func (ss *SessionStore) Get(ctx context.Context, token string) (*entity.Session, error) {
	raw, err := ss.rdb.Get(ctx, ss.key(token)).Result()
	if err == redis.Nil {
		return nil, apperr.NewNotFoundErr(apperr.WithMessage("session not found"))
	}
	if err != nil {
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("redis GET session failed"), apperr.WithCause(err))
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("failed to unmarshal session"), apperr.WithCause(err))
	}
	return &session, nil
}

// Delete removes a session. Returns a not-found error when no session was
// stored for the token.
func (ss *SessionStore) Delete(ctx context.Context, token string) error {
	removed, err := ss.rdb.Del(ctx, ss.key(token)).Result()
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("redis DEL session failed"), apperr.WithCause(err))
	}
	if removed == 0 {
		return apperr.NewNotFoundErr(apperr.WithMessage("session not found"))
	}
	return nil
}
