package tournament

import (
	"github.com/cricboard/cricboard/config"
	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterTournamentRoutes mounts tournament endpoints under /tournaments.
func RegisterTournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewTournamentRepository(db)
	controller := NewTournamentController(repo)

	group := router.Group("/tournaments")
	{
		group.GET("", controller.ListTournaments)
		group.GET("/:id", controller.GetTournament)

		protected := group.Group("")
		protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
		{
			protected.POST("", controller.CreateTournament)
			protected.GET("/mine", controller.ListMyTournaments)
			protected.PUT("/:id", controller.UpdateTournament)
			protected.DELETE("/:id", controller.DeleteTournament)
		}
	}
}
