package scoring

import (
	"errors"
	"fmt"

	"github.com/cricboard/cricboard/internal/match"
)

// ErrPlayersNotAssigned is returned when a ball event arrives while the
// striker, non-striker, or bowler slot is empty.
var ErrPlayersNotAssigned = errors.New("striker, non-striker and bowler must be assigned before scoring")

// ErrInningsNotInProgress is returned when a ball event arrives outside the
// in-progress phase.
var ErrInningsNotInProgress = errors.New("innings is not accepting deliveries")

// Delivery is the full effect of one processed ball event, expressed as a
// delta against the innings record. The aggregator folds it into the
// cumulative rosters; it is never a replacement snapshot.
type Delivery struct {
	Record match.BallRecord

	// Legal deliveries count toward the 6-ball over.
	Legal bool

	TeamRuns  int
	ExtraType string
	ExtraRuns int

	StrikerID    uint
	StrikerRuns  int
	StrikerBalls int
	StrikerFours int
	StrikerSixes int

	BowlerID      uint
	BowlerBalls   int
	BowlerRuns    int
	BowlerWickets int

	// RotateStrike is the run-parity swap; OverCompleted adds the
	// unconditional end-of-over swap. The two compose.
	RotateStrike  bool
	OverCompleted bool

	Wicket *WicketEvent
}

// ProcessBall computes the effect of one ball event against the current
// innings state. It is pure: the innings is only read, never mutated, and
// an error means no delta was produced.
func ProcessBall(inn *Innings, ev BallEvent) (Delivery, error) {
	if err := ev.Validate(); err != nil {
		return Delivery{}, err
	}
	if inn.Phase != PhaseInProgress {
		return Delivery{}, fmt.Errorf("%w: phase is %s", ErrInningsNotInProgress, inn.Phase)
	}

	striker := inn.Striker()
	nonStriker := inn.NonStriker()
	if striker == nil || nonStriker == nil || inn.CurrentBowlerID == 0 {
		return Delivery{}, ErrPlayersNotAssigned
	}

	if ev.Wicket != nil {
		if ev.Wicket.PlayerID != striker.PlayerID && ev.Wicket.PlayerID != nonStriker.PlayerID {
			return Delivery{}, fmt.Errorf("%w: dismissed player %d is not a current batsman", ErrInvalidEvent, ev.Wicket.PlayerID)
		}
	}

	d := Delivery{
		StrikerID: striker.PlayerID,
		BowlerID:  inn.CurrentBowlerID,
	}

	switch {
	case ev.Extra != nil && (ev.Extra.Type == ExtraWide || ev.Extra.Type == ExtraNoBall):
		// Not a legal delivery: no ball faced, no bowler ball. The runs are
		// charged to the bowler and to the extras bucket.
		d.TeamRuns = ev.Extra.Runs
		d.ExtraType = ev.Extra.Type
		d.ExtraRuns = ev.Extra.Runs
		d.BowlerRuns = ev.Extra.Runs

	case ev.Extra != nil:
		// Bye or leg-bye: a legal delivery faced by the striker, credited to
		// the team but to neither the striker nor the bowler.
		d.Legal = true
		d.TeamRuns = ev.Extra.Runs
		d.ExtraType = ev.Extra.Type
		d.ExtraRuns = ev.Extra.Runs
		d.StrikerBalls = 1
		d.BowlerBalls = 1
		d.RotateStrike = ev.Extra.Runs%2 == 1

	default:
		// Runs off the bat, possibly with a wicket (run-outs only).
		d.Legal = true
		d.TeamRuns = ev.Runs
		d.StrikerRuns = ev.Runs
		d.StrikerBalls = 1
		d.BowlerBalls = 1
		d.BowlerRuns = ev.Runs
		d.RotateStrike = ev.Runs%2 == 1
		if ev.Runs == 4 {
			d.StrikerFours = 1
		}
		if ev.Runs == 6 {
			d.StrikerSixes = 1
		}
	}

	if ev.Wicket != nil {
		w := *ev.Wicket
		d.Wicket = &w
		if BowlerCredited(ev.Wicket.Type) {
			d.BowlerWickets = 1
		}
	}

	d.OverCompleted = d.Legal && inn.Balls == 5

	d.Record = match.BallRecord{
		Innings:   inn.Number,
		Over:      inn.Overs,
		Ball:      inn.Balls + 1,
		BatsmanID: striker.PlayerID,
		BowlerID:  inn.CurrentBowlerID,
		Runs:      d.StrikerRuns,
		ExtraType: d.ExtraType,
		ExtraRuns: d.ExtraRuns,
		Legal:     d.Legal,
	}
	if d.Wicket != nil {
		d.Record.Wicket = true
		d.Record.WicketType = d.Wicket.Type
		d.Record.OutPlayerID = d.Wicket.PlayerID
	}

	return d, nil
}
