package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campusadmit/internal/app/controllers"
	"github.com/yigit/campusadmit/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	admissionController *controllers.AdmissionController,
	contactController *controllers.ContactController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	v1.GET("/courses", courseController.ListActive)
	v1.GET("/courses/:id", courseController.Get)
	v1.POST("/admissions/simple", admissionController.CreateSimple)
	v1.POST("/contact", contactController.Create)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/auth/profile", authController.UpdateProfile)
		authenticated.PUT("/auth/change-password", authController.ChangePassword)

		authenticated.POST("/admissions", admissionController.Submit)
		authenticated.GET("/admissions/my-applications", admissionController.ListMine)
		authenticated.GET("/admissions/:id", admissionController.Get)
	}

	// --- Admin routes ---
	admin := authenticated.Group("")
	admin.Use(authMiddleware.AdminOnly())
	{
		admin.GET("/courses/admin", courseController.ListAll)
		admin.POST("/courses", courseController.Create)
		admin.PUT("/courses/:id", courseController.Update)
		admin.PUT("/courses/:id/toggle-status", courseController.ToggleStatus)
		admin.DELETE("/courses/:id", courseController.Delete)

		admin.GET("/admissions/admin", admissionController.ListAll)
		admin.PUT("/admissions/:id/status", admissionController.UpdateStatus)
		admin.DELETE("/admissions/:id", admissionController.Delete)

		adminPanel := admin.Group("/admin")
		{
			adminPanel.GET("/stats", userController.Stats)
			adminPanel.GET("/users", userController.ListUsers)
			adminPanel.PUT("/users/:id/toggle-status", userController.ToggleStatus)

			adminPanel.GET("/simple-admissions", admissionController.ListSimple)
			adminPanel.PUT("/simple-admissions/:id/status", admissionController.UpdateSimpleStatus)
			adminPanel.DELETE("/simple-admissions/:id", admissionController.DeleteSimple)

			adminPanel.GET("/contacts", contactController.List)
			adminPanel.PUT("/contacts/:id", contactController.Update)
			adminPanel.DELETE("/contacts/:id", contactController.Delete)
		}
	}
}
