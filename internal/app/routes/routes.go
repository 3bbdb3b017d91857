package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/app/controllers"
	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/middleware"
)

// SetupRouter configures all application routes. Paths keep a trailing
// slash; gin's trailing-slash redirect folds the bare form onto them.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	opportunityController *controllers.OpportunityController,
	manageController *controllers.ManageController,
	notificationController *controllers.NotificationController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Session resolution runs on every route so public pages can greet a
	// signed-in visitor too.
	router.Use(authMiddleware.SessionAuth())

	// --- Public routes ---
	router.GET("/", authController.Home)
	router.GET("/register/", authController.ShowRegister)
	router.POST("/register/", authController.Register)

	accounts := router.Group("/accounts")
	{
		accounts.GET("/login/", authController.ShowLogin)
		accounts.POST("/login/", authController.Login)
		accounts.POST("/logout/", authController.Logout)
	}

	// --- Student routes ---
	student := router.Group("")
	student.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(models.RoleStudent))
	{
		student.GET("/list/", opportunityController.List)
		student.GET("/opportunity/:id/", opportunityController.Detail)
		student.POST("/opportunity/:id/save_toggle/", opportunityController.SaveToggle)
		student.POST("/opportunity/:id/apply/", opportunityController.Apply)
		student.GET("/notifications/", notificationController.Feed)
		student.GET("/profile/", profileController.Show)
		student.POST("/profile/", profileController.Update)
	}

	// --- Lecturer routes ---
	manage := router.Group("/manage")
	manage.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(models.RoleLecturer))
	{
		manage.GET("/", manageController.Index)
		manage.GET("/create/", manageController.ShowCreate)
		manage.POST("/create/", manageController.Create)
		manage.GET("/:id/edit/", manageController.ShowEdit)
		manage.POST("/:id/edit/", manageController.Update)
		manage.GET("/:id/delete/", manageController.ConfirmDelete)
		manage.POST("/:id/delete/", manageController.Delete)
		manage.GET("/:id/applications/", manageController.Applications)
	}
}
