package tournament

import (
	"time"

	"gorm.io/gorm"
)

// Tournament statuses.
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Match formats supported by the scoring engine. The format only seeds the
// default overs limit; organizers can override it per match.
const (
	FormatT20  = "T20"
	FormatODI  = "ODI"
	FormatTest = "Test"
)

// Tournament is the top-level container for teams and matches. The creating
// user is the organizer and the only account allowed to score its matches.
type Tournament struct {
	gorm.Model
	Name            string    `json:"name" gorm:"not null;index"`
	Description     string    `json:"description"`
	Format          string    `json:"format" gorm:"not null;default:'T20'"`
	Venue           string    `json:"venue"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Status          string    `json:"status" gorm:"not null;default:'upcoming';index"`
	CreatedByUserID uint      `json:"created_by_user_id" gorm:"index;not null"`
}

type CreateTournamentRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=150"`
	Description string    `json:"description" binding:"max=2000"`
	Format      string    `json:"format" binding:"required,oneof=T20 ODI Test"`
	Venue       string    `json:"venue" binding:"max=200"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type UpdateTournamentRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=3,max=150"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Venue       *string    `json:"venue" binding:"omitempty,max=200"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      *string    `json:"status" binding:"omitempty,oneof=upcoming active completed"`
}

// DefaultOversForFormat returns the overs limit a format implies.
// Test matches carry no overs limit and return 0.
func DefaultOversForFormat(format string) int {
	switch format {
	case FormatODI:
		return 50
	case FormatTest:
		return 0
	default:
		return 20
	}
}
