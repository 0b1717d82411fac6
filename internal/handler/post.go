package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wallfeed/wallfeed/internal/constants"
	"github.com/wallfeed/wallfeed/internal/dto"
	apperrors "github.com/wallfeed/wallfeed/internal/errors"
	"github.com/wallfeed/wallfeed/internal/service"
	"github.com/wallfeed/wallfeed/internal/upload"
	ctxutil "github.com/wallfeed/wallfeed/pkg/context"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"github.com/wallfeed/wallfeed/pkg/validation"
)

type PostHandler struct {
	postService *service.PostService
	saver       *upload.Saver
}

func NewPostHandler(postService *service.PostService, saver *upload.Saver) *PostHandler {
	return &PostHandler{
		postService: postService,
		saver:       saver,
	}
}

func (h *PostHandler) List(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "List")

	params := constants.ParseFeedParams(c)

	posts, err := h.postService.List(ctx, params)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to list posts").
			Int("limit", params.Limit).
			Int("offset", params.Offset).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, posts)
}

// uploadedImages stores every file sent under the multipart "images"
// field and returns their generated filenames.
func (h *PostHandler) uploadedImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	return h.saver.SaveAll(files)
}

func (h *PostHandler) Create(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Create")

	authorID := c.GetUint(constants.GinKeyUserID)

	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid post create request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Некорректный запрос", validation.MessagesFromError(err)))
		return
	}

	images := append([]string{}, req.ExistingImages...)
	uploaded, err := h.uploadedImages(c)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Post image upload rejected").
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}
	images = append(images, uploaded...)

	post, err := h.postService.Create(ctx, authorID, req.Text, images)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to create post").
			Uint("author_id", authorID).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Update")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid post update request").
			Uint("post_id", id).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Некорректный запрос", validation.MessagesFromError(err)))
		return
	}

	// Images nil = untouched; kept filenames or fresh uploads replace the list.
	var images []string
	if req.ExistingImages != nil {
		images = append([]string{}, req.ExistingImages...)
	}
	uploaded, err := h.uploadedImages(c)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Post image upload rejected").
			Uint("post_id", id).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}
	if uploaded != nil {
		if images == nil {
			images = []string{}
		}
		images = append(images, uploaded...)
	}

	post, err := h.postService.Update(ctx, id, req.Text, images)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Failed to update post").
			Uint("post_id", id).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Delete")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(ctx, id); err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to delete post").
			Uint("post_id", id).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Пост удалён"))
}
