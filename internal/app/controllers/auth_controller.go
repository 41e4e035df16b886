package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/siswa-api/internal/app/models/dto"
	"github.com/sekolahku/siswa-api/internal/app/services"
	"github.com/sekolahku/siswa-api/internal/middleware"
	"github.com/sekolahku/siswa-api/internal/pkg/auth"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login authenticates a user and returns an access token
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("Invalid request body."))
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while logging in.")
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Me returns the authenticated caller's profile
func (c *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserIDKey)

	user, err := c.authService.Me(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while fetching the profile.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Logout revokes the presented access token
func (c *AuthController) Logout(ctx *gin.Context) {
	tokenString, err := auth.ExtractBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthenticated."))
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), tokenString); err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while logging out.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Successfully logged out."))
}
