package scoring

import (
	"errors"
	"fmt"

	"github.com/cricboard/cricboard/internal/match"
)

// ErrUnknownExtraType guards the extras bucket switch in the merge path.
var ErrUnknownExtraType = errors.New("unknown extra type in delivery")

// MergeDelivery folds one delivery delta into the innings record. Roster
// entries are located by player id and summed, never replaced; an unknown
// player is appended with the delta as its initial line (not out). The
// caller holds the per-match lock.
func MergeDelivery(inn *Innings, d Delivery) error {
	inn.Runs += d.TeamRuns

	if d.ExtraType != "" {
		switch d.ExtraType {
		case ExtraWide:
			inn.Extras.Wides += d.ExtraRuns
		case ExtraNoBall:
			inn.Extras.NoBalls += d.ExtraRuns
		case ExtraBye:
			inn.Extras.Byes += d.ExtraRuns
		case ExtraLegBye:
			inn.Extras.LegByes += d.ExtraRuns
		default:
			return fmt.Errorf("%w: %q", ErrUnknownExtraType, d.ExtraType)
		}
	}

	mergeBatsman(&inn.AllBatsmen, d)
	mergeBatsman(&inn.CurrentBatsmen, d)
	mergeBowler(&inn.AllBowlers, d)

	if d.Legal {
		inn.Balls++
		if inn.Balls == 6 {
			inn.Overs++
			inn.Balls = 0
		}
	}

	// Parity swap first, then the unconditional end-of-over swap; the two
	// compose (an odd final run leaves the same batsman on strike for the
	// next over).
	if d.RotateStrike {
		rotateStrike(inn)
	}
	if d.OverCompleted {
		rotateStrike(inn)
	}

	if d.Wicket != nil {
		applyWicket(inn, *d.Wicket)
	}

	inn.BallByBall = append(inn.BallByBall, d.Record)
	return nil
}

func mergeBatsman(list *BatsmanList, d Delivery) {
	for i := range *list {
		if (*list)[i].PlayerID == d.StrikerID {
			(*list)[i].Runs += d.StrikerRuns
			(*list)[i].Balls += d.StrikerBalls
			(*list)[i].Fours += d.StrikerFours
			(*list)[i].Sixes += d.StrikerSixes
			return
		}
	}
	*list = append(*list, BatsmanStat{
		PlayerID: d.StrikerID,
		Runs:     d.StrikerRuns,
		Balls:    d.StrikerBalls,
		Fours:    d.StrikerFours,
		Sixes:    d.StrikerSixes,
	})
}

func mergeBowler(list *BowlerList, d Delivery) {
	for i := range *list {
		if (*list)[i].PlayerID == d.BowlerID {
			(*list)[i].Balls += d.BowlerBalls
			(*list)[i].Runs += d.BowlerRuns
			(*list)[i].Wickets += d.BowlerWickets
			(*list)[i].Overs = (*list)[i].Balls / 6
			return
		}
	}
	*list = append(*list, BowlerStat{
		PlayerID: d.BowlerID,
		Balls:    d.BowlerBalls,
		Overs:    d.BowlerBalls / 6,
		Runs:     d.BowlerRuns,
		Wickets:  d.BowlerWickets,
	})
}

func rotateStrike(inn *Innings) {
	if len(inn.CurrentBatsmen) != 2 {
		return
	}
	inn.CurrentBatsmen[0].OnStrike = !inn.CurrentBatsmen[0].OnStrike
	inn.CurrentBatsmen[1].OnStrike = !inn.CurrentBatsmen[1].OnStrike
}

// applyWicket flags the dismissed batsman out in the cumulative roster and
// removes them from the current pair. The vacated end is implied by the
// remaining batsman's strike flag.
func applyWicket(inn *Innings, w WicketEvent) {
	inn.Wickets++

	if entry := inn.FindBatsman(w.PlayerID); entry != nil {
		entry.Out = true
		entry.DismissalType = w.Type
		entry.OnStrike = false
	}

	remaining := inn.CurrentBatsmen[:0]
	for _, b := range inn.CurrentBatsmen {
		if b.PlayerID != w.PlayerID {
			remaining = append(remaining, b)
		}
	}
	inn.CurrentBatsmen = remaining
}

// SyncMatchSnapshot recomputes the flat match-row snapshot from the innings
// record. The two are written in the same transaction so readers never see
// them disagree.
func SyncMatchSnapshot(m *match.Match, inn *Innings) {
	m.Score = match.Score{
		Runs:    inn.Runs,
		Wickets: inn.Wickets,
		Overs:   inn.Overs,
		Balls:   inn.Balls,
	}
	m.Extras = inn.Extras
	m.CurrentInnings = inn.Number
}
