package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"

	"github.com/communityhq/community-service/internal/core/entity"
	"github.com/communityhq/community-service/internal/pkg/apperr"
	"github.com/communityhq/community-service/internal/pkg/applog"
)

// PostStore keeps posts as JSON values keyed by id, with a sorted-set index
// scored by creation time for newest-first listing.
type PostStore struct {
	rdb       *redis.Client
	log       applog.AppLogger
	validator *validator.Validate
	cfg       Config
}

// NewPostStore validates the Config, constructs a Redis client with optional
// TLS, and returns an initialized PostStore.
func NewPostStore(log applog.AppLogger, v *validator.Validate, cfg *Config) (*PostStore, error) {
	if err := v.Struct(cfg); err != nil {
		log.Error("invalid redis config", "err", err)
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("invalid redis config"), apperr.WithCause(err))
	}
	return &PostStore{rdb: newClient(cfg), log: log, validator: v, cfg: *cfg}, nil
}

func (ps *PostStore) key(id string) string {
	return ps.cfg.KeyPrefix + ":post:" + id
}

func (ps *PostStore) indexKey() string {
	return ps.cfg.KeyPrefix + ":posts:index"
}

// Create stores a new post and indexes it by creation time.
func (ps *PostStore) Create(ctx context.Context, post *entity.Post) error {
	if err := ps.validator.Struct(post); err != nil {
		return apperr.NewInvalidInputErr(apperr.WithMessage("invalid post"), apperr.WithCause(err))
	}

	payload, err := json.Marshal(post)
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("failed to marshal post"), apperr.WithCause(err))
	}

	created, err := ps.rdb.SetNX(ctx, ps.key(post.ID), payload, 0).Result()
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("redis SETNX post failed"), apperr.WithCause(err))
	}
	if !created {
		return apperr.NewAlreadyExistsErr(apperr.WithMessage("post " + post.ID + " already exists"))
	}

	err = ps.rdb.ZAdd(ctx, ps.indexKey(), &redis.Z{
		Score:  float64(post.CreatedAt.UnixMilli()),
		Member: post.ID,
	}).Err()
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("redis ZADD post index failed"), apperr.WithCause(err))
	}
	return nil
}

// Get loads a post by id. Returns a not-found error for an unknown id.
func (ps *PostStore) Get(ctx context.Context, id string) (*entity.Post, error) {
	raw, err := ps.rdb.Get(ctx, ps.key(id)).Result()
	if err == redis.Nil {
		return nil, apperr.NewNotFoundErr(apperr.WithMessage("post " + id + " not found"))
	}
	if err != nil {
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("redis GET post failed"), apperr.WithCause(err))
	}

	var post entity.Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("failed to unmarshal post"), apperr.WithCause(err))
	}
	return &post, nil
}

// List returns posts newest first. Posts whose index entry outlived the value
// (a crash between DEL and ZREM) are skipped.
func (ps *PostStore) List(ctx context.Context, offset, limit int64) ([]*entity.Post, error) {
	ids, err := ps.rdb.ZRevRange(ctx, ps.indexKey(), offset, offset+limit-1).Result()
	if err != nil {
		return nil, apperr.NewDataStoreErr(apperr.WithMessage("redis ZREVRANGE post index failed"), apperr.WithCause(err))
	}

	posts := make([]*entity.Post, 0, len(ids))
	for _, id := range ids {
		post, err := ps.Get(ctx, id)
		if err != nil {
			var ue *apperr.UserErr
			if errors.As(err, &ue) {
				ps.log.Warn("post indexed but missing; skipping", "id", id)
				continue
			}
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Update replaces an existing post's value. Returns a not-found error when
// the post does not exist.
func (ps *PostStore) Update(ctx context.Context, post *entity.Post) error {
	if err := ps.validator.Struct(post); err != nil {
		return apperr.NewInvalidInputErr(apperr.WithMessage("invalid post"), apperr.WithCause(err))
	}

	payload, err := json.Marshal(post)
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("failed to marshal post"), apperr.WithCause(err))
	}

	// XX: only set when the key already exists
	set, err := ps.rdb.SetXX(ctx, ps.key(post.ID), payload, 0).Result()
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("redis SETXX post failed"), apperr.WithCause(err))
	}
	if !set {
		return apperr.NewNotFoundErr(apperr.WithMessage("post " + post.ID + " not found"))
	}
	return nil
}

// Delete removes a post and its index entry.
func (ps *PostStore) Delete(ctx context.Context, id string) error {
	removed, err := ps.rdb.Del(ctx, ps.key(id)).Result()
	if err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("redis DEL post failed"), apperr.WithCause(err))
	}
	if removed == 0 {
		return apperr.NewNotFoundErr(apperr.WithMessage("post " + id + " not found"))
	}

	if err := ps.rdb.ZRem(ctx, ps.indexKey(), id).Err(); err != nil {
		return apperr.NewDataStoreErr(apperr.WithMessage("redis ZREM post index failed"), apperr.WithCause(err))
	}
	return nil
}
