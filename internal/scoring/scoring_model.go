package scoring

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/cricboard/cricboard/internal/match"
	"gorm.io/gorm"
)

// Innings phases. Scoring is only accepted while the innings is in progress;
// the awaiting phases block ball events until the operator supplies the
// required player selection.
const (
	PhaseAwaitingOpeners = "awaiting_openers"
	PhaseInProgress      = "in_progress"
	PhaseAwaitingBatsman = "awaiting_batsman"
	PhaseAwaitingBowler  = "awaiting_bowler"
	PhaseClosed          = "closed"
)

// BatsmanStat is one batsman's in-innings stat line. Entries in the
// cumulative roster only ever grow; OnStrike is meaningful for the current
// pair only.
type BatsmanStat struct {
	PlayerID      uint   `json:"player_id"`
	Runs          int    `json:"runs"`
	Balls         int    `json:"balls"`
	Fours         int    `json:"fours"`
	Sixes         int    `json:"sixes"`
	OnStrike      bool   `json:"on_strike,omitempty"`
	Out           bool   `json:"out"`
	DismissalType string `json:"dismissal_type,omitempty"`
}

// BowlerStat is one bowler's in-innings stat line. Overs is always derived
// as Balls/6, never summed directly.
type BowlerStat struct {
	PlayerID uint `json:"player_id"`
	Balls    int  `json:"balls"`
	Overs    int  `json:"overs"`
	Runs     int  `json:"runs"`
	Wickets  int  `json:"wickets"`
}

// BatsmanList is a JSON array column of batsman stat lines.
type BatsmanList []BatsmanStat

// Value implements driver.Valuer.
func (l BatsmanList) Value() (driver.Value, error) {
	if l == nil {
		l = BatsmanList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *BatsmanList) Scan(value interface{}) error {
	return scanJSON(value, l, "batsman list")
}

// BowlerList is a JSON array column of bowler stat lines.
type BowlerList []BowlerStat

// Value implements driver.Valuer.
func (l BowlerList) Value() (driver.Value, error) {
	if l == nil {
		l = BowlerList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *BowlerList) Scan(value interface{}) error {
	return scanJSON(value, l, "bowler list")
}

// BallLog is a JSON array column of delivery records.
type BallLog []match.BallRecord

// Value implements driver.Valuer.
func (l BallLog) Value() (driver.Value, error) {
	if l == nil {
		l = BallLog{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *BallLog) Scan(value interface{}) error {
	return scanJSON(value, l, "ball log")
}

func scanJSON(value interface{}, dest interface{}, what string) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, okStr := value.(string)
		if !okStr {
			return errors.New(what + ": unsupported scan source")
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, dest)
}

// Innings is the authoritative per-innings scoring record, uniquely keyed by
// match + innings number. The flat snapshot on the match row is derived from
// this record on every commit.
type Innings struct {
	gorm.Model
	MatchID       uint `json:"match_id" gorm:"uniqueIndex:idx_innings_match_number;not null"`
	Number        int  `json:"number" gorm:"uniqueIndex:idx_innings_match_number;not null"`
	BattingTeamID uint `json:"batting_team_id" gorm:"not null"`
	BowlingTeamID uint `json:"bowling_team_id" gorm:"not null"`

	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Overs   int `json:"overs"`
	// Balls is the legal-ball count within the current over (0-5).
	Balls  int          `json:"balls"`
	Extras match.Extras `json:"extras" gorm:"embedded;embeddedPrefix:extras_"`

	Phase string `json:"phase" gorm:"not null;default:'awaiting_openers'"`

	// CurrentBatsmen holds exactly 0 or 2 entries.
	CurrentBatsmen BatsmanList `json:"current_batsmen" gorm:"type:jsonb"`
	// CurrentBowlerID is 0 while a bowler selection is pending.
	CurrentBowlerID  uint `json:"current_bowler_id"`
	PreviousBowlerID uint `json:"previous_bowler_id"`

	AllBatsmen BatsmanList `json:"all_batsmen" gorm:"type:jsonb"`
	AllBowlers BowlerList  `json:"all_bowlers" gorm:"type:jsonb"`
	BallByBall BallLog     `json:"ball_by_ball" gorm:"type:jsonb"`
}

// Striker returns a pointer into CurrentBatsmen for the on-strike batsman,
// or nil if the pair is incomplete.
func (inn *Innings) Striker() *BatsmanStat {
	for i := range inn.CurrentBatsmen {
		if inn.CurrentBatsmen[i].OnStrike {
			return &inn.CurrentBatsmen[i]
		}
	}
	return nil
}

// NonStriker returns a pointer into CurrentBatsmen for the off-strike
// batsman, or nil if the pair is incomplete.
func (inn *Innings) NonStriker() *BatsmanStat {
	for i := range inn.CurrentBatsmen {
		if !inn.CurrentBatsmen[i].OnStrike {
			return &inn.CurrentBatsmen[i]
		}
	}
	return nil
}

// CurrentBowler returns the current bowler's roster entry, or nil.
func (inn *Innings) CurrentBowler() *BowlerStat {
	if inn.CurrentBowlerID == 0 {
		return nil
	}
	return inn.FindBowler(inn.CurrentBowlerID)
}

// FindBatsman returns a pointer into the cumulative batting roster, or nil.
func (inn *Innings) FindBatsman(playerID uint) *BatsmanStat {
	for i := range inn.AllBatsmen {
		if inn.AllBatsmen[i].PlayerID == playerID {
			return &inn.AllBatsmen[i]
		}
	}
	return nil
}

// FindBowler returns a pointer into the cumulative bowling roster, or nil.
func (inn *Innings) FindBowler(playerID uint) *BowlerStat {
	for i := range inn.AllBowlers {
		if inn.AllBowlers[i].PlayerID == playerID {
			return &inn.AllBowlers[i]
		}
	}
	return nil
}

// LegalBalls is the total legal deliveries bowled this innings.
func (inn *Innings) LegalBalls() int {
	return inn.Overs*6 + inn.Balls
}
