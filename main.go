package main

import (
	"context"
	"log"

	"github.com/cricboard/cricboard/config"
	_ "github.com/cricboard/cricboard/docs"
	"github.com/cricboard/cricboard/internal/auth"
	"github.com/cricboard/cricboard/internal/live"
	"github.com/cricboard/cricboard/internal/match"
	"github.com/cricboard/cricboard/internal/player"
	"github.com/cricboard/cricboard/internal/scoring"
	"github.com/cricboard/cricboard/internal/team"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/cricboard/cricboard/routes"
)

// @title cricboard REST API
// @version 1.0
// @description Cricket tournament management with live ball-by-ball scoring.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&auth.User{}, &auth.RefreshToken{},
		&tournament.Tournament{},
		&team.Team{}, &player.Player{},
		&match.Match{}, &scoring.Innings{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	relay := live.NewRelay(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if relay != nil {
		defer relay.Close()
		log.Println("Live relay enabled via Redis Pub/Sub")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := live.NewHub(relay)
	go hub.Run(ctx)

	r := routes.SetupRoutes(config.DB, cfg, hub)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
