package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	strikerID    = uint(1)
	nonStrikerID = uint(2)
	reserveID    = uint(3)
	bowlerID     = uint(30)
	bowler2ID    = uint(31)
)

func newTestInnings() *Innings {
	return &Innings{
		MatchID:       1,
		Number:        1,
		BattingTeamID: 10,
		BowlingTeamID: 20,
		Phase:         PhaseInProgress,
		CurrentBatsmen: BatsmanList{
			{PlayerID: strikerID, OnStrike: true},
			{PlayerID: nonStrikerID},
		},
		CurrentBowlerID: bowlerID,
		AllBatsmen: BatsmanList{
			{PlayerID: strikerID},
			{PlayerID: nonStrikerID},
		},
		AllBowlers: BowlerList{{PlayerID: bowlerID}},
		BallByBall: BallLog{},
	}
}

// playBall processes and merges one event, failing the test on error.
func playBall(t *testing.T, inn *Innings, ev BallEvent) Delivery {
	t.Helper()
	d, err := ProcessBall(inn, ev)
	require.NoError(t, err)
	require.NoError(t, MergeDelivery(inn, d))
	return d
}

func TestProcessBallRunsOffBat(t *testing.T) {
	tests := []struct {
		name       string
		runs       int
		wantRotate bool
		wantFours  int
		wantSixes  int
	}{
		{"dot ball", 0, false, 0, 0},
		{"single rotates strike", 1, true, 0, 0},
		{"two runs keeps strike", 2, false, 0, 0},
		{"three runs rotates strike", 3, true, 0, 0},
		{"boundary four", 4, false, 1, 0},
		{"five runs rotates strike", 5, true, 0, 0},
		{"six over the rope", 6, false, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inn := newTestInnings()
			d, err := ProcessBall(inn, BallEvent{Runs: tt.runs})
			require.NoError(t, err)

			assert.True(t, d.Legal)
			assert.Equal(t, tt.runs, d.TeamRuns)
			assert.Equal(t, strikerID, d.StrikerID)
			assert.Equal(t, tt.runs, d.StrikerRuns)
			assert.Equal(t, 1, d.StrikerBalls)
			assert.Equal(t, tt.wantFours, d.StrikerFours)
			assert.Equal(t, tt.wantSixes, d.StrikerSixes)
			assert.Equal(t, tt.wantRotate, d.RotateStrike)
			assert.Equal(t, 1, d.BowlerBalls)
			assert.Equal(t, tt.runs, d.BowlerRuns)
			assert.Empty(t, d.ExtraType)
			assert.Nil(t, d.Wicket)
		})
	}
}

func TestProcessBallRunsOffBatOutOfRange(t *testing.T) {
	inn := newTestInnings()
	_, err := ProcessBall(inn, BallEvent{Runs: 7})
	assert.ErrorIs(t, err, ErrInvalidEvent)
	_, err = ProcessBall(inn, BallEvent{Runs: -1})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestProcessBallWideAndNoBall(t *testing.T) {
	for _, extraType := range []string{ExtraWide, ExtraNoBall} {
		t.Run(extraType, func(t *testing.T) {
			inn := newTestInnings()
			d, err := ProcessBall(inn, BallEvent{Extra: &ExtraEvent{Type: extraType, Runs: 1}})
			require.NoError(t, err)

			assert.False(t, d.Legal, "wides and no-balls do not count toward the over")
			assert.Equal(t, 1, d.TeamRuns)
			assert.Equal(t, extraType, d.ExtraType)
			assert.Equal(t, 1, d.ExtraRuns)
			assert.Zero(t, d.StrikerRuns)
			assert.Zero(t, d.StrikerBalls, "no ball faced on a wide/no-ball")
			assert.Zero(t, d.BowlerBalls, "no bowler ball on a wide/no-ball")
			assert.Equal(t, 1, d.BowlerRuns, "runs conceded are still charged")
			assert.False(t, d.RotateStrike)
			assert.False(t, d.OverCompleted)
		})
	}
}

func TestProcessBallByesAndLegByes(t *testing.T) {
	for _, extraType := range []string{ExtraBye, ExtraLegBye} {
		t.Run(extraType, func(t *testing.T) {
			inn := newTestInnings()
			d, err := ProcessBall(inn, BallEvent{Extra: &ExtraEvent{Type: extraType, Runs: 2}})
			require.NoError(t, err)

			assert.True(t, d.Legal, "byes and leg-byes are legal deliveries")
			assert.Equal(t, 2, d.TeamRuns)
			assert.Equal(t, 2, d.ExtraRuns)
			assert.Zero(t, d.StrikerRuns, "credited to the team, not the batsman")
			assert.Equal(t, 1, d.StrikerBalls, "counts as a ball faced")
			assert.Equal(t, 1, d.BowlerBalls)
			assert.Zero(t, d.BowlerRuns, "not charged to the bowler")
			assert.False(t, d.RotateStrike)
		})
	}
}

func TestProcessBallOddByeRotatesStrike(t *testing.T) {
	inn := newTestInnings()
	d, err := ProcessBall(inn, BallEvent{Extra: &ExtraEvent{Type: ExtraBye, Runs: 1}})
	require.NoError(t, err)
	assert.True(t, d.RotateStrike, "the batsmen physically crossed")
}

func TestProcessBallWicket(t *testing.T) {
	t.Run("bowled credits the bowler", func(t *testing.T) {
		inn := newTestInnings()
		d, err := ProcessBall(inn, BallEvent{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: strikerID}})
		require.NoError(t, err)

		assert.True(t, d.Legal)
		require.NotNil(t, d.Wicket)
		assert.Equal(t, 1, d.BowlerWickets)
		assert.Equal(t, 1, d.StrikerBalls)
		assert.Zero(t, d.TeamRuns)
	})

	t.Run("run out is not credited to the bowler", func(t *testing.T) {
		inn := newTestInnings()
		d, err := ProcessBall(inn, BallEvent{Runs: 1, Wicket: &WicketEvent{Type: WicketRunOut, PlayerID: nonStrikerID}})
		require.NoError(t, err)

		assert.Zero(t, d.BowlerWickets)
		assert.Equal(t, 1, d.TeamRuns, "completed runs before the run out still count")
		assert.Equal(t, 1, d.StrikerRuns)
		assert.True(t, d.RotateStrike)
	})

	t.Run("runs with a non-run-out dismissal are rejected", func(t *testing.T) {
		inn := newTestInnings()
		_, err := ProcessBall(inn, BallEvent{Runs: 2, Wicket: &WicketEvent{Type: WicketCaught, PlayerID: strikerID}})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("dismissed player must be a current batsman", func(t *testing.T) {
		inn := newTestInnings()
		_, err := ProcessBall(inn, BallEvent{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: 99}})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("wicket plus extra is rejected", func(t *testing.T) {
		inn := newTestInnings()
		_, err := ProcessBall(inn, BallEvent{
			Extra:  &ExtraEvent{Type: ExtraWide, Runs: 1},
			Wicket: &WicketEvent{Type: WicketStumped, PlayerID: strikerID},
		})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})
}

func TestProcessBallRejectsWithoutPlayers(t *testing.T) {
	t.Run("no batsmen assigned", func(t *testing.T) {
		inn := newTestInnings()
		inn.CurrentBatsmen = BatsmanList{}
		_, err := ProcessBall(inn, BallEvent{Runs: 1})
		assert.ErrorIs(t, err, ErrPlayersNotAssigned)
	})

	t.Run("no bowler assigned", func(t *testing.T) {
		inn := newTestInnings()
		inn.CurrentBowlerID = 0
		_, err := ProcessBall(inn, BallEvent{Runs: 1})
		assert.ErrorIs(t, err, ErrPlayersNotAssigned)
	})
}

func TestProcessBallRejectsOutsideInProgress(t *testing.T) {
	for _, phase := range []string{PhaseAwaitingOpeners, PhaseAwaitingBatsman, PhaseAwaitingBowler, PhaseClosed} {
		t.Run(phase, func(t *testing.T) {
			inn := newTestInnings()
			inn.Phase = phase
			_, err := ProcessBall(inn, BallEvent{Runs: 1})
			assert.ErrorIs(t, err, ErrInningsNotInProgress)
		})
	}
}

func TestOverCompletion(t *testing.T) {
	inn := newTestInnings()

	for i := 0; i < 5; i++ {
		d := playBall(t, inn, BallEvent{Runs: 0})
		assert.False(t, d.OverCompleted)
	}

	// A wide on ball six does not complete the over.
	d, err := ProcessBall(inn, BallEvent{Extra: &ExtraEvent{Type: ExtraWide, Runs: 1}})
	require.NoError(t, err)
	assert.False(t, d.OverCompleted)
	require.NoError(t, MergeDelivery(inn, d))

	d = playBall(t, inn, BallEvent{Runs: 0})
	assert.True(t, d.OverCompleted)
	assert.Equal(t, 1, inn.Overs)
	assert.Zero(t, inn.Balls)
	assert.Equal(t, nonStrikerID, inn.Striker().PlayerID, "strike rotates unconditionally at the end of an over")
}

func TestOverCompletionOddLastBallKeepsStriker(t *testing.T) {
	inn := newTestInnings()
	for i := 0; i < 5; i++ {
		playBall(t, inn, BallEvent{Runs: 0})
	}

	// A single off the last ball: parity swap and over swap compose, so the
	// same batsman keeps the strike into the next over.
	d := playBall(t, inn, BallEvent{Runs: 1})
	assert.True(t, d.RotateStrike)
	assert.True(t, d.OverCompleted)
	assert.Equal(t, strikerID, inn.Striker().PlayerID)
}

// The first three end-to-end scenarios: boundary, single, over completion.
func TestScoringSequenceFirstOver(t *testing.T) {
	inn := newTestInnings()

	// Ball 1: a boundary four. Strike does not rotate.
	playBall(t, inn, BallEvent{Runs: 4})
	assert.Equal(t, 4, inn.Runs)
	a := inn.FindBatsman(strikerID)
	require.NotNil(t, a)
	assert.Equal(t, 4, a.Runs)
	assert.Equal(t, 1, a.Balls)
	assert.Equal(t, 1, a.Fours)
	assert.Equal(t, 1, inn.LegalBalls())
	assert.Equal(t, strikerID, inn.Striker().PlayerID)

	// Ball 2: a single. Strike rotates.
	playBall(t, inn, BallEvent{Runs: 1})
	assert.Equal(t, 5, inn.Runs)
	assert.Equal(t, 5, a.Runs)
	assert.Equal(t, 2, a.Balls)
	assert.Equal(t, 2, inn.LegalBalls())
	assert.Equal(t, nonStrikerID, inn.Striker().PlayerID)

	// Balls 3-6: dots to close the over.
	for i := 0; i < 3; i++ {
		playBall(t, inn, BallEvent{Runs: 0})
	}
	d := playBall(t, inn, BallEvent{Runs: 0})
	assert.True(t, d.OverCompleted)
	assert.Equal(t, 1, inn.Overs)
	assert.Zero(t, inn.Balls)
}

// Replaying a recorded ball history from an empty innings reproduces the
// final totals and stat lines exactly.
func TestReplayReproducesInnings(t *testing.T) {
	inn := newTestInnings()

	events := []BallEvent{
		{Runs: 4},
		{Runs: 1},
		{Extra: &ExtraEvent{Type: ExtraWide, Runs: 1}},
		{Runs: 0},
		{Runs: 6},
		{Extra: &ExtraEvent{Type: ExtraLegBye, Runs: 1}},
		{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: strikerID}},
	}

	for i, ev := range events {
		d, err := ProcessBall(inn, ev)
		require.NoError(t, err, "event %d", i)
		require.NoError(t, MergeDelivery(inn, d))

		if d.Wicket != nil {
			// Mimic the state machine: the incoming batsman takes the
			// vacated end.
			onStrike := !inn.CurrentBatsmen[0].OnStrike
			inn.CurrentBatsmen = append(inn.CurrentBatsmen, BatsmanStat{PlayerID: reserveID, OnStrike: onStrike})
			inn.AllBatsmen = append(inn.AllBatsmen, BatsmanStat{PlayerID: reserveID})
		}
		if d.OverCompleted {
			inn.CurrentBowlerID = bowler2ID
			inn.AllBowlers = append(inn.AllBowlers, BowlerStat{PlayerID: bowler2ID})
		}
	}

	// Replay from empty state using only the recorded log.
	replayed := newTestInnings()
	for _, rec := range inn.BallByBall {
		ev := BallEvent{Runs: rec.Runs}
		if rec.ExtraType != "" {
			ev = BallEvent{Extra: &ExtraEvent{Type: rec.ExtraType, Runs: rec.ExtraRuns}}
		}
		if rec.Wicket {
			ev.Wicket = &WicketEvent{Type: rec.WicketType, PlayerID: rec.OutPlayerID}
		}

		d, err := ProcessBall(replayed, ev)
		require.NoError(t, err)
		require.NoError(t, MergeDelivery(replayed, d))

		if d.Wicket != nil {
			onStrike := !replayed.CurrentBatsmen[0].OnStrike
			replayed.CurrentBatsmen = append(replayed.CurrentBatsmen, BatsmanStat{PlayerID: reserveID, OnStrike: onStrike})
			replayed.AllBatsmen = append(replayed.AllBatsmen, BatsmanStat{PlayerID: reserveID})
		}
		if d.OverCompleted {
			replayed.CurrentBowlerID = bowler2ID
			replayed.AllBowlers = append(replayed.AllBowlers, BowlerStat{PlayerID: bowler2ID})
		}
	}

	assert.Equal(t, inn.Runs, replayed.Runs)
	assert.Equal(t, inn.Wickets, replayed.Wickets)
	assert.Equal(t, inn.Overs, replayed.Overs)
	assert.Equal(t, inn.Balls, replayed.Balls)
	assert.Equal(t, inn.Extras, replayed.Extras)
	assert.Equal(t, inn.AllBatsmen, replayed.AllBatsmen)
	assert.Equal(t, inn.AllBowlers, replayed.AllBowlers)
}

// Invariant: roster runs plus extras always equal the innings total.
func TestRunsInvariantAfterEveryBall(t *testing.T) {
	inn := newTestInnings()

	events := []BallEvent{
		{Runs: 2},
		{Extra: &ExtraEvent{Type: ExtraNoBall, Runs: 1}},
		{Runs: 3},
		{Extra: &ExtraEvent{Type: ExtraBye, Runs: 4}},
		{Runs: 6},
		{Runs: 0},
	}

	for _, ev := range events {
		playBall(t, inn, ev)

		batRuns := 0
		for _, b := range inn.AllBatsmen {
			batRuns += b.Runs
		}
		extras := inn.Extras.Wides + inn.Extras.NoBalls + inn.Extras.Byes + inn.Extras.LegByes
		assert.Equal(t, inn.Runs, batRuns+extras)

		bowlerBalls := 0
		for _, b := range inn.AllBowlers {
			bowlerBalls += b.Balls
		}
		assert.Equal(t, inn.LegalBalls(), bowlerBalls)
	}
}
