package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wallfeed/wallfeed/internal/constants"
	"github.com/wallfeed/wallfeed/internal/dto"
	apperrors "github.com/wallfeed/wallfeed/internal/errors"
	"github.com/wallfeed/wallfeed/internal/service"
	ctxutil "github.com/wallfeed/wallfeed/pkg/context"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"github.com/wallfeed/wallfeed/pkg/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles new user registration
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid registration request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Некорректный запрос", validation.MessagesFromError(err)))
		return
	}

	logger.InfoWithContext(ctx, "Registration attempt").
		String("email", req.Email).
		Log()

	response, err := h.authService.Register(ctx, req.Email, req.Password)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("email", req.Email).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "User registered").
		String("email", req.Email).
		Uint("user_id", response.User.ID).
		Log()

	c.JSON(http.StatusCreated, response)
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Некорректный запрос", validation.MessagesFromError(err)))
		return
	}

	logger.InfoWithContext(ctx, "Login attempt").
		String("email", req.Email).
		Log()

	response, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("email", req.Email).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	logger.InfoWithContext(ctx, "User logged in").
		String("email", req.Email).
		Uint("user_id", response.User.ID).
		Log()

	c.JSON(http.StatusOK, response)
}
