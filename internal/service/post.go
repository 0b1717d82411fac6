package service

import (
	"context"
	"errors"

	"github.com/wallfeed/wallfeed/internal/constants"
	"github.com/wallfeed/wallfeed/internal/dto"
	apperrors "github.com/wallfeed/wallfeed/internal/errors"
	"github.com/wallfeed/wallfeed/internal/model"
	"github.com/wallfeed/wallfeed/internal/repository"
	ctxutil "github.com/wallfeed/wallfeed/pkg/context"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"gorm.io/gorm"
)

type PostService struct {
	posts    repository.PostRepository
	profiles repository.ProfileRepository
	cache    *FeedCache
}

func NewPostService(posts repository.PostRepository, profiles repository.ProfileRepository, cache *FeedCache) *PostService {
	return &PostService{
		posts:    posts,
		profiles: profiles,
		cache:    cache,
	}
}

// List returns a feed page ordered by creation time with author snapshots
// attached, optionally restricted to one author.
func (s *PostService) List(ctx context.Context, params constants.FeedParams) ([]dto.PostResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "List")

	if cached := s.cache.Get(ctx, params); cached != nil {
		return cached, nil
	}

	posts, err := s.posts.List(ctx, params.Limit, params.Offset, params.Sort, params.UserID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list posts").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *dto.NewPostResponse(&posts[i]))
	}

	s.cache.Put(ctx, params, responses)

	return responses, nil
}

// Create publishes a post attributed to the resolved identity. The author
// must exist at creation time.
func (s *PostService) Create(ctx context.Context, authorID uint, text string, images []string) (*dto.PostResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Create")

	logger.InfoWithContext(ctx, "Creating post").
		Uint("author_id", authorID).
		Int("image_count", len(images)).
		Log()

	author, err := s.profiles.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to load post author").
			Uint("author_id", authorID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	post := &model.Post{
		Text:     text,
		Images:   model.ImageList(images),
		AuthorID: author.ID,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create post").
			Uint("author_id", authorID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Invalidate(ctx)

	post.Author = *author
	return dto.NewPostResponse(post), nil
}

// Update overwrites text and images independently: nil text keeps the
// body, nil images keeps the list, a non-nil images slice (even empty)
// fully replaces it. Author is never touched.
func (s *PostService) Update(ctx context.Context, id uint, text *string, images []string) (*dto.PostResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Update")

	logger.InfoWithContext(ctx, "Updating post").
		Uint("post_id", id).
		Bool("text_changed", text != nil).
		Bool("images_changed", images != nil).
		Log()

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to load post for update").
			Uint("post_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if text != nil {
		post.Text = *text
	}
	if images != nil {
		post.Images = model.ImageList(images)
	}

	if err := s.posts.Save(ctx, post); err != nil {
		logger.ErrorWithContext(ctx, "Failed to save post").
			Uint("post_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Invalidate(ctx)

	return dto.NewPostResponse(post), nil
}

// Delete removes the post if present; deleting an absent id is a no-op.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "Delete")

	logger.InfoWithContext(ctx, "Deleting post").
		Uint("post_id", id).
		Log()

	if err := s.posts.Delete(ctx, id); err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete post").
			Uint("post_id", id).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Invalidate(ctx)

	return nil
}
