package team

import (
	"github.com/cricboard/cricboard/config"
	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterTeamRoutes mounts team endpoints under /teams.
func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewTeamRepository(db)
	tournamentRepo := tournament.NewTournamentRepository(db)
	controller := NewTeamController(repo, tournamentRepo)

	group := router.Group("/teams")
	{
		group.GET("/:id", controller.GetTeam)
		group.GET("/tournament/:tournamentId", controller.ListTeamsByTournament)

		protected := group.Group("")
		protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
		{
			protected.POST("", controller.CreateTeam)
			protected.PUT("/:id", controller.UpdateTeam)
			protected.DELETE("/:id", controller.DeleteTeam)
		}
	}
}
