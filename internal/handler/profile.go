package handler

import (
	"net/http"
	"strconv"

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

type ProfileHandler struct {
	profileService *service.ProfileService
	saver          *upload.Saver
}

func NewProfileHandler(profileService *service.ProfileService, saver *upload.Saver) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		saver:          saver,
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Некорректный идентификатор", nil))
		return 0, false
	}
	return uint(id), true
}

func (h *ProfileHandler) Get(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Get")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(ctx, id)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Failed to fetch profile").
			Uint("profile_id", id).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Create(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Create")

	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid profile create request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Некорректный запрос", validation.MessagesFromError(err)))
		return
	}

	profile, err := h.profileService.Create(ctx, &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.ErrorWithContext(ctx, "Failed to create profile").
			String("email", req.Email).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Update")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid profile update request").
			Uint("profile_id", id).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Некорректный запрос", validation.MessagesFromError(err)))
		return
	}

	profile, err := h.profileService.Update(ctx, id, &req)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Failed to update profile").
			Uint("profile_id", id).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateAvatar accepts a single multipart image under the "file" field
// and stores its generated filename on the profile.
func (h *ProfileHandler) UpdateAvatar(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "UpdateAvatar")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		logger.WarnWithContext(ctx, "Avatar upload without file").
			Uint("profile_id", id).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Файл не найден в запросе", nil))
		return
	}

	filename, err := h.saver.Save(file)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Avatar upload rejected").
			Uint("profile_id", id).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	profile, err := h.profileService.UpdateAvatar(ctx, id, filename)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		logger.WarnWithContext(ctx, "Failed to update avatar").
			Uint("profile_id", id).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "Avatar updated").
		Uint("profile_id", id).
		String("filename", filename).
		Log()

	c.JSON(http.StatusOK, profile)
}
