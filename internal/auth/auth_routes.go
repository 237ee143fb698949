package auth

import (
	"github.com/cricboard/cricboard/config"
	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAuthRoutes mounts authentication endpoints under /auth.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewAuthRepository(db)
	controller := NewAuthController(repo, appConfig)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/refresh-token", controller.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
		{
			protected.GET("/me", controller.GetProfile)
			protected.POST("/logout", controller.Logout)
		}
	}
}
