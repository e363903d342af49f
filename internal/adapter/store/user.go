package store

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"

	"github.com/communityhq/community-service/internal/core/entity"
	"github.com/communityhq/community-service/internal/pkg/apperr"
	"github.com/communityhq/community-service/internal/pkg/applog"
)

// UserStore keeps users as JSON values keyed by name. Creation uses SET NX so
// a duplicate name is detected atomically.
//
// Concurrency: safe for concurrent use; it relies on the concurrency-safe
// go-redis client and single-key atomic commands.
type UserStore struct {
	rdb       *redis.Client
	log       applog.AppLogger
	validator *validator.Validate
	cfg       Config
}

// NewUserStore validates the Config, constructs a Redis client with optional
// TLS, and returns an initialized UserStore.
func NewUserStore(log applog.AppLogger, v *validator.Validate, cfg *Config) (*UserStore, error) {
	if err := v.Struct(cfg); err != nil {
		log.Error("invalid redis config", "err", err)
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("invalid redis config"), apperr.WithCause(err))
	}
	return &UserStore{rdb: newClient(cfg), log: log, validator: v, cfg: *cfg}, nil
}

func (us *UserStore) key(name string) string {
	return us.cfg.KeyPrefix + ":user:" + name
}

// Create stores a new user. Returns an already-exists error when the name is
// taken.
func (us *UserStore) Create(ctx context.Context, user *entity.User) error {
	if err := us.validator.Struct(user); err != nil {
		return apperr.NewInvalidInputErr(apperr.WithMessage("invalid user"), apperr.WithCause(err))
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("failed to marshal user"), apperr.WithCause(err))
	}

	created, err := us.rdb.SetNX(ctx, us.key(user.Name), payload, 0).Result()
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("redis SETNX user failed"), apperr.WithCause(err))
	}
	if !created {
		return apperr.NewAlreadyExistsErr(apperr.WithMessage("user \"" + user.Name + "\" already registered"))
	}
	return nil
}

// GetByName loads a user. Returns a not-found error for an unknown name.
func (us *UserStore) GetByName(ctx context.Context, name string) (*entity.User, error) {
	raw, err := us.rdb.Get(ctx, us.key(name)).Result()
	if err == redis.Nil {
		return nil, apperr.NewNotFoundErr(apperr.WithMessage("user \"" + name + "\" not found"))
	}
	if err != nil {
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("redis GET user failed"), apperr.WithCause(err))
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("failed to unmarshal user"), apperr.WithCause(err))
	}
	return &user, nil
}
