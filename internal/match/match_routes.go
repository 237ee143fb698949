package match

import (
	"github.com/cricboard/cricboard/config"
	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterMatchRoutes mounts fixture CRUD endpoints under /matches.
// Live scoring actions on /matches/:id/... are mounted by the scoring package.
func RegisterMatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewMatchRepository(db)
	tournamentRepo := tournament.NewTournamentRepository(db)
	controller := NewMatchController(repo, tournamentRepo)

	group := router.Group("/matches")
	{
		group.GET("/:id", controller.GetMatch)
		group.GET("/tournament/:tournamentId", controller.ListMatchesByTournament)

		protected := group.Group("")
		protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
		{
			protected.POST("", controller.CreateMatch)
			protected.PUT("/:id", controller.UpdateMatch)
			protected.DELETE("/:id", controller.DeleteMatch)
		}
	}
}
