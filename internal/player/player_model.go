package player

import (
	"gorm.io/gorm"
)

// Player roles.
const (
	RoleBatsman      = "batsman"
	RoleBowler       = "bowler"
	RoleAllRounder   = "all-rounder"
	RoleWicketKeeper = "wicket-keeper"
)

// Player belongs to a team and is referenced by ID in scoring events.
type Player struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Role         string `json:"role" gorm:"not null;default:'batsman'"`
	JerseyNumber int    `json:"jersey_number"`
	BattingStyle string `json:"batting_style"`
	BowlingStyle string `json:"bowling_style"`
	TeamID       uint   `json:"team_id" gorm:"index;not null"`
}

type CreatePlayerRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Role         string `json:"role" binding:"required,oneof=batsman bowler all-rounder wicket-keeper"`
	JerseyNumber int    `json:"jersey_number" binding:"gte=0,lte=999"`
	BattingStyle string `json:"batting_style" binding:"max=50"`
	BowlingStyle string `json:"bowling_style" binding:"max=50"`
	TeamID       uint   `json:"team_id" binding:"required"`
}

type UpdatePlayerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=100"`
	Role         *string `json:"role" binding:"omitempty,oneof=batsman bowler all-rounder wicket-keeper"`
	JerseyNumber *int    `json:"jersey_number" binding:"omitempty,gte=0,lte=999"`
	BattingStyle *string `json:"batting_style" binding:"omitempty,max=50"`
	BowlingStyle *string `json:"bowling_style" binding:"omitempty,max=50"`
}
