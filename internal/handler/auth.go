package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/schedulebob/auth/internal/constants"
	"github.com/schedulebob/auth/internal/dto"
	apperrors "github.com/schedulebob/auth/internal/errors"
	ctxutil "github.com/schedulebob/auth/pkg/context"
	"github.com/schedulebob/auth/pkg/logger"
)

// AuthService is the use case surface the auth endpoints call.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.AccessTokenResponse, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login expects the body already validated by ValidationMiddleware.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), constants.ModuleHandler, "Login")

	value, _ := c.Get(constants.GinKeyValidatedBody)
	req, ok := value.(*dto.LoginRequest)
	if !ok {
		writeError(c, apperrors.ErrValidation)
		return
	}

	response, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RefreshToken reads the refresh token from "Authorization: Bearer <token>".
// Any other header shape is rejected before the service is called.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), constants.ModuleHandler, "RefreshToken")

	refreshToken, ok := strings.CutPrefix(c.GetHeader(constants.HeaderAuthorization), constants.BearerPrefix)
	if !ok {
		logger.WarnWithContext(ctx, "Refresh rejected, bad authorization header").Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadTokenFormat, http.StatusBadRequest))
		return
	}

	response, err := h.authService.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me echoes the identity the authenticator attached, or 401 without one.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := ctxutil.IdentityFrom(c.Request.Context())
	if !ok {
		writeError(c, apperrors.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		Subject: identity.Subject,
		Role:    identity.Role,
	})
}

func writeError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), status))
}
