package team

import (
	"gorm.io/gorm"
)

// Team belongs to a tournament and fields up to the match team size.
type Team struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	ShortName    string `json:"short_name" gorm:"size:10"`
	LogoURL      string `json:"logo_url"`
	CaptainName  string `json:"captain_name"`
	CoachName    string `json:"coach_name"`
	TournamentID uint   `json:"tournament_id" gorm:"index;not null"`
}

type CreateTeamRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	ShortName    string `json:"short_name" binding:"max=10"`
	LogoURL      string `json:"logo_url" binding:"omitempty,url"`
	CaptainName  string `json:"captain_name" binding:"max=100"`
	CoachName    string `json:"coach_name" binding:"max=100"`
	TournamentID uint   `json:"tournament_id" binding:"required"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	ShortName   *string `json:"short_name" binding:"omitempty,max=10"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,url"`
	CaptainName *string `json:"captain_name" binding:"omitempty,max=100"`
	CoachName   *string `json:"coach_name" binding:"omitempty,max=100"`
}
