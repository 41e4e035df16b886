package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sekolahku/siswa-api/internal/app/controllers"
	"github.com/sekolahku/siswa-api/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public routes ---
	api.POST("/login", authController.Login)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.GET("/me", authController.Me)
		authenticated.POST("/logout", authController.Logout)

		users := authenticated.Group("/users")
		{
			users.GET("", userController.Index)
			users.GET("/:id", userController.Show)
			users.POST("", userController.Store)
			users.PUT("/:id", userController.Update)
			users.DELETE("/:id", userController.Destroy)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.Index)
			students.GET("/:id", studentController.Show)
			students.POST("", studentController.Store)
			students.PUT("/:id", studentController.Update)
			students.DELETE("/:id", studentController.Destroy)
		}
	}
}
