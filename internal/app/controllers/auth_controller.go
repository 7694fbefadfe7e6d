package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/middleware"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
	"github.com/hkmu/coursehub/internal/pkg/auth"
)

// AuthController handles the JSON API auth endpoints. Sign-in itself happens
// on the web surface through the OAuth redirect flow; the API only mints
// bearer tokens from an existing session and reports the caller's identity.
type AuthController struct {
	jwtService *auth.JWTService
}

// NewAuthController creates a new AuthController.
func NewAuthController(jwtService *auth.JWTService) *AuthController {
	return &AuthController{jwtService: jwtService}
}

// IssueToken mints a bearer token for the signed-in session user. Routes
// behind SessionLoad only; guests get 401.
// POST /api/v1/auth/token
func (ctrl *AuthController) IssueToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	token, expiresIn, err := ctrl.jwtService.GenerateToken(user)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}))
}

// Me returns the authenticated caller's identity.
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SessionUser{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Photo:   user.Photo,
		IsAdmin: user.IsAdmin,
	}))
}
