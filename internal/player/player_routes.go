package player

import (
	"github.com/cricboard/cricboard/config"
	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/internal/team"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterPlayerRoutes mounts player endpoints under /players.
func RegisterPlayerRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewPlayerRepository(db)
	teamRepo := team.NewTeamRepository(db)
	tournamentRepo := tournament.NewTournamentRepository(db)
	controller := NewPlayerController(repo, teamRepo, tournamentRepo)

	group := router.Group("/players")
	{
		group.GET("/:id", controller.GetPlayer)
		group.GET("/team/:teamId", controller.ListPlayersByTeam)

		protected := group.Group("")
		protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
		{
			protected.POST("", controller.CreatePlayer)
			protected.PUT("/:id", controller.UpdatePlayer)
			protected.DELETE("/:id", controller.DeletePlayer)
		}
	}
}
