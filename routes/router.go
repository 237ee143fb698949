package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/cricboard/cricboard/config"
	"github.com/cricboard/cricboard/internal/auth"
	"github.com/cricboard/cricboard/internal/live"
	"github.com/cricboard/cricboard/internal/match"
	"github.com/cricboard/cricboard/internal/player"
	"github.com/cricboard/cricboard/internal/scoring"
	"github.com/cricboard/cricboard/internal/team"
	"github.com/cricboard/cricboard/internal/tournament"
)

// SetupRoutes builds the gin engine with every feature mounted. The hub is
// created by the caller so it can be started alongside the server.
func SetupRoutes(db *gorm.DB, appConfig *config.Config, hub *live.Hub) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "cricboard",
			"docs":    "/swagger/index.html",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	scoringService := scoring.NewScoringService(scoring.NewScoringRepository(db), hub)

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	tournament.RegisterTournamentRoutes(api, db, appConfig)
	team.RegisterTeamRoutes(api, db, appConfig)
	player.RegisterPlayerRoutes(api, db, appConfig)
	match.RegisterMatchRoutes(api, db, appConfig)
	scoring.RegisterScoringRoutes(api, db, appConfig, scoringService)

	ws := r.Group("/ws")
	ws.GET("/matches/:id", live.ServeWS(hub, scoringService))

	return r
}
