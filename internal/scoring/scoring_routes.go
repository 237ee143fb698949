package scoring

import (
	"github.com/cricboard/cricboard/config"
	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterScoringRoutes mounts the live scoring actions on /matches/:id/...
// and the scorecard read on /scores. The service is built by the caller so
// the websocket layer can share it.
func RegisterScoringRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, service *ScoringService) {
	tournamentRepo := tournament.NewTournamentRepository(db)
	controller := NewScoringController(service, tournamentRepo)

	matches := router.Group("/matches")
	{
		matches.GET("/:id/detail", controller.GetMatchDetail)

		protected := matches.Group("")
		protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
		{
			protected.POST("/:id/toss", controller.RecordToss)
			protected.POST("/:id/start", controller.StartMatch)
			protected.POST("/:id/cancel", controller.CancelMatch)
			protected.POST("/:id/openers", controller.SetOpeners)
			protected.POST("/:id/batsman", controller.SetNextBatsman)
			protected.POST("/:id/bowler", controller.SetNextBowler)
			protected.POST("/:id/ball", controller.SubmitBall)
			protected.POST("/:id/wicket", controller.RecordWicket)
		}
	}

	scores := router.Group("/scores")
	{
		scores.GET("/match/:matchId", controller.GetScorecard)
	}
}
