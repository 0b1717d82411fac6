package repository

import (
	"context"
	"time"

	"github.com/wallfeed/wallfeed/internal/model"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"gorm.io/gorm"
)

// PostRepository is the narrow persistence contract for wall posts.
type PostRepository interface {
	List(ctx context.Context, limit, offset int, sort string, authorID uint) ([]model.Post, error)
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	Save(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// List returns posts ordered by creation time with authors eagerly loaded.
// authorID of 0 means no author filter.
func (r *postRepository) List(ctx context.Context, limit, offset int, sort string, authorID uint) ([]model.Post, error) {
	logger.DebugWithContext(ctx, "Listing posts").
		Int("limit", limit).
		Int("offset", offset).
		String("sort", sort).
		Uint("author_id", authorID).
		Log()

	order := "created_at DESC"
	if sort == "ASC" {
		order = "created_at ASC"
	}

	query := r.db.WithContext(ctx).
		Preload("Author").
		Order(order).
		Limit(limit).
		Offset(offset)

	if authorID != 0 {
		query = query.Where("author_id = ?", authorID)
	}

	start := time.Now()
	var posts []model.Post
	if err := query.Find(&posts).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to list posts").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Posts listed").
		Int("returned_count", len(posts)).
		Duration(time.Since(start)).
		Log()

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post

	result := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Failed to get post by ID").
			Uint("post_id", id).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	logger.DebugWithContext(ctx, "Creating post").
		Uint("author_id", post.AuthorID).
		Int("image_count", len(post.Images)).
		Log()

	start := time.Now()
	// Omit Author so the loaded relation is never re-saved
	result := r.db.WithContext(ctx).Omit("Author").Create(post)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create post").
			Uint("author_id", post.AuthorID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Post created").
		Uint("post_id", post.ID).
		Uint("author_id", post.AuthorID).
		Duration(duration).
		Log()

	return nil
}

func (r *postRepository) Save(ctx context.Context, post *model.Post) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Omit("Author").Save(post)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to save post").
			Uint("post_id", post.ID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// Delete is idempotent: removing an absent id is not an error
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	logger.DebugWithContext(ctx, "Deleting post").
		Uint("post_id", id).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Delete(&model.Post{}, id)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete post").
			Uint("post_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Post delete completed").
		Uint("post_id", id).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}
