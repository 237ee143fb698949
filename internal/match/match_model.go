package match

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Match statuses.
const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Toss decisions.
const (
	TossDecisionBat  = "bat"
	TossDecisionBowl = "bowl"
)

// Result methods.
const (
	ResultByRuns    = "runs"
	ResultByWickets = "wickets"
	ResultTie       = "tie"
)

// Score is the flat live snapshot embedded in the match row. It is derived
// from the current innings record on every committed delivery.
type Score struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Overs   int `json:"overs"`
	Balls   int `json:"balls"`
}

// Extras totals for the current innings snapshot.
type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
}

// BallRecord is one entry in the chronological delivery log, legal or not.
type BallRecord struct {
	Innings     int    `json:"innings"`
	Over        int    `json:"over"`
	Ball        int    `json:"ball"`
	BatsmanID   uint   `json:"batsman_id"`
	BowlerID    uint   `json:"bowler_id"`
	Runs        int    `json:"runs"`
	ExtraType   string `json:"extra_type,omitempty"`
	ExtraRuns   int    `json:"extra_runs,omitempty"`
	Wicket      bool   `json:"wicket"`
	WicketType  string `json:"wicket_type,omitempty"`
	OutPlayerID uint   `json:"out_player_id,omitempty"`
	Legal       bool   `json:"legal"`
}

// BallHistory is a JSON array column of delivery records.
type BallHistory []BallRecord

// Value implements driver.Valuer.
func (bh BallHistory) Value() (driver.Value, error) {
	if bh == nil {
		bh = BallHistory{}
	}
	return json.Marshal(bh)
}

// Scan implements sql.Scanner.
func (bh *BallHistory) Scan(value interface{}) error {
	if value == nil {
		*bh = BallHistory{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, okStr := value.(string); okStr {
			bytes = []byte(s)
		} else {
			return errors.New("ball history: unsupported scan source")
		}
	}
	return json.Unmarshal(bytes, bh)
}

// Match is a fixture between two teams in a tournament.
type Match struct {
	gorm.Model
	TournamentID uint      `json:"tournament_id" gorm:"index;not null"`
	TeamAID      uint      `json:"team_a_id" gorm:"not null"`
	TeamBID      uint      `json:"team_b_id" gorm:"not null"`
	Venue        string    `json:"venue"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Status       string    `json:"status" gorm:"not null;default:'scheduled';index"`

	TossWinnerTeamID *uint  `json:"toss_winner_team_id"`
	TossDecision     string `json:"toss_decision"`

	CurrentInnings int `json:"current_innings" gorm:"default:0"`
	OversLimit     int `json:"overs_limit" gorm:"default:20"`
	TeamSize       int `json:"team_size" gorm:"default:11"`

	Score       Score       `json:"score" gorm:"embedded;embeddedPrefix:score_"`
	Extras      Extras      `json:"extras" gorm:"embedded;embeddedPrefix:extras_"`
	BallHistory BallHistory `json:"ball_history" gorm:"type:jsonb"`

	Target        *int  `json:"target"`
	BattingTeamID *uint `json:"batting_team_id"`
	BowlingTeamID *uint `json:"bowling_team_id"`

	WinnerTeamID    *uint  `json:"winner_team_id"`
	ResultMethod    string `json:"result_method"`
	ResultMargin    string `json:"result_margin"`
	PlayerOfMatchID *uint  `json:"player_of_match_id"`
}

type CreateMatchRequest struct {
	TournamentID uint      `json:"tournament_id" binding:"required"`
	TeamAID      uint      `json:"team_a_id" binding:"required"`
	TeamBID      uint      `json:"team_b_id" binding:"required"`
	Venue        string    `json:"venue" binding:"max=200"`
	ScheduledAt  time.Time `json:"scheduled_at" binding:"required"`
	OversLimit   int       `json:"overs_limit" binding:"omitempty,gte=1,lte=50"`
	TeamSize     int       `json:"team_size" binding:"omitempty,gte=2,lte=11"`
}

type UpdateMatchRequest struct {
	Venue           *string    `json:"venue" binding:"omitempty,max=200"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	OversLimit      *int       `json:"overs_limit" binding:"omitempty,gte=1,lte=50"`
	TeamSize        *int       `json:"team_size" binding:"omitempty,gte=2,lte=11"`
	PlayerOfMatchID *uint      `json:"player_of_match_id"`
}
