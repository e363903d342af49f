package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/communityhq/community-service/internal/core/entity"
	"github.com/communityhq/community-service/internal/core/port"
	"github.com/communityhq/community-service/internal/pkg/apperr"
	"github.com/communityhq/community-service/internal/pkg/applog"
)

const defaultListLimit = 20

// PostService implements post CRUD on top of the post store.
type PostService struct {
	log       applog.AppLogger
	posts     port.PostStore
	validator *validator.Validate
}

func NewPostService(log applog.AppLogger, posts port.PostStore, v *validator.Validate) *PostService {
	return &PostService{log: log, posts: posts, validator: v}
}

// CreatePost stores a new post authored by the given user and returns it.
func (ps *PostService) CreatePost(ctx context.Context, author string, req *CreatePostRequest) (*entity.Post, error) {
	if err := ps.validator.Struct(req); err != nil {
		return nil, invalidInput(err)
	}

	now := time.Now().UTC()
	post := &entity.Post{
		ID:        uuid.NewString(),
		Author:    author,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ps.posts.Create(ctx, post); err != nil {
		ps.log.Error("failed to create post", "id", post.ID, "author", author, "err", err)
		return nil, passThrough(err, "failed to create post")
	}

	ps.log.Info("Created post", "id", post.ID, "author", author)
	return post, nil
}

// GetPost returns the post with the given id.
func (ps *PostService) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NewInvalidInputErr(apperr.WithMessage("post id must be a uuid"), apperr.WithCause(err))
	}

	post, err := ps.posts.Get(ctx, id)
	if err != nil {
		return nil, passThrough(err, "failed to load post")
	}
	return post, nil
}

// ListPosts returns posts newest first.
func (ps *PostService) ListPosts(ctx context.Context, offset, limit int64) ([]*entity.Post, error) {
	if offset < 0 || limit < 0 {
		return nil, apperr.NewInvalidInputErr(apperr.WithMessage("offset and limit must not be negative"))
	}
	if limit == 0 {
		limit = defaultListLimit
	}

	posts, err := ps.posts.List(ctx, offset, limit)
	if err != nil {
		return nil, passThrough(err, "failed to list posts")
	}
	return posts, nil
}

// UpdatePost replaces the title and body of an existing post. Only the author
// may update it.
func (ps *PostService) UpdatePost(ctx context.Context, author, id string, req *UpdatePostRequest) (*entity.Post, error) {
	if err := ps.validator.Struct(req); err != nil {
		return nil, invalidInput(err)
	}

	post, err := ps.posts.Get(ctx, id)
	if err != nil {
		return nil, passThrough(err, "failed to load post")
	}
	if post.Author != author {
		return nil, apperr.NewUserErr(apperr.WithCode("error.post.forbidden"), apperr.WithMessage("Only the author may modify a post."))
	}

	post.Title = req.Title
	post.Body = req.Body
	post.UpdatedAt = time.Now().UTC()
	if err := ps.posts.Update(ctx, post); err != nil {
		ps.log.Error("failed to update post", "id", id, "err", err)
		return nil, passThrough(err, "failed to update post")
	}

	ps.log.Info("Updated post", "id", id)
	return post, nil
}

// DeletePost removes an existing post. Only the author may delete it.
func (ps *PostService) DeletePost(ctx context.Context, author, id string) error {
	post, err := ps.posts.Get(ctx, id)
	if err != nil {
		return passThrough(err, "failed to load post")
	}
	if post.Author != author {
		return apperr.NewUserErr(apperr.WithCode("error.post.forbidden"), apperr.WithMessage("Only the author may modify a post."))
	}

	if err := ps.posts.Delete(ctx, id); err != nil {
		ps.log.Error("failed to delete post", "id", id, "err", err)
		return passThrough(err, "failed to delete post")
	}

	ps.log.Info("Deleted post", "id", id)
	return nil
}
