package port

import (
	"context"
	"time"

	"github.com/communityhq/community-service/internal/core/entity"
)

// UserStore persists community users keyed by name.
type UserStore interface {
	Create(ctx context.Context, user *entity.User) error
	GetByName(ctx context.Context, name string) (*entity.User, error)
}

// SessionStore persists login sessions with an expiry.
type SessionStore interface {
	Put(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
}

// PostStore persists community posts.
type PostStore interface {
	Create(ctx context.Context, post *entity.Post) error
	Get(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, offset, limit int64) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
}
