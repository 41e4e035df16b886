package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/siswa-api/internal/app/models/dto"
	"github.com/sekolahku/siswa-api/internal/app/services"
	"github.com/sekolahku/siswa-api/internal/middleware"
)

// UserController handles user management endpoints
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// parseID reads the numeric path id; an unparsable id behaves like a
// record that does not exist
func parseID(ctx *gin.Context, notFoundMessage string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(notFoundMessage))
		return 0, false
	}
	return id, true
}

// Index returns all users
func (c *UserController) Index(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while fetching users.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// Show returns one user by ID
func (c *UserController) Show(ctx *gin.Context) {
	id, ok := parseID(ctx, "User not found.")
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while fetching the user.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Store creates a new user
func (c *UserController) Store(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("Invalid request body."))
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while creating the user.")
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Update overwrites a user's name and email, and the password when supplied
func (c *UserController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "User not found.")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("Invalid request body."))
		return
	}

	user, err := c.userService.UpdateUser(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while updating the user.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Destroy deletes a user
func (c *UserController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx, "User not found.")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while deleting the user.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User deleted successfully."))
}
