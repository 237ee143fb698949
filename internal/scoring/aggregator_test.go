package scoring

import (
	"testing"

	"github.com/cricboard/cricboard/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDeliverySumsIntoRoster(t *testing.T) {
	inn := newTestInnings()

	// Two distinct singles by the same batsman: the roster entry is summed,
	// never replaced.
	for i := 0; i < 2; i++ {
		d := Delivery{
			Legal:        true,
			TeamRuns:     1,
			StrikerID:    strikerID,
			StrikerRuns:  1,
			StrikerBalls: 1,
			BowlerID:     bowlerID,
			BowlerBalls:  1,
			BowlerRuns:   1,
		}
		require.NoError(t, MergeDelivery(inn, d))
	}

	entry := inn.FindBatsman(strikerID)
	require.NotNil(t, entry)
	assert.Equal(t, 2, entry.Runs)
	assert.Equal(t, 2, entry.Balls)

	bowler := inn.FindBowler(bowlerID)
	require.NotNil(t, bowler)
	assert.Equal(t, 2, bowler.Balls)
	assert.Equal(t, 2, bowler.Runs)
	assert.Equal(t, 2, inn.Runs)
	assert.Len(t, inn.BallByBall, 2, "each merge appends its own log entry")
}

func TestMergeDeliveryAppendsUnknownPlayers(t *testing.T) {
	inn := newTestInnings()
	inn.AllBatsmen = BatsmanList{}
	inn.AllBowlers = BowlerList{}

	d := Delivery{
		Legal:        true,
		TeamRuns:     4,
		StrikerID:    strikerID,
		StrikerRuns:  4,
		StrikerBalls: 1,
		StrikerFours: 1,
		BowlerID:     bowlerID,
		BowlerBalls:  1,
		BowlerRuns:   4,
	}
	require.NoError(t, MergeDelivery(inn, d))

	require.Len(t, inn.AllBatsmen, 1)
	assert.Equal(t, strikerID, inn.AllBatsmen[0].PlayerID)
	assert.False(t, inn.AllBatsmen[0].Out, "first sight appends as not out")
	require.Len(t, inn.AllBowlers, 1)
	assert.Equal(t, 4, inn.AllBowlers[0].Runs)
}

func TestMergeDeliveryRostersAreMonotone(t *testing.T) {
	inn := newTestInnings()

	prev := BatsmanStat{}
	for i := 0; i < 12; i++ {
		playBall(t, inn, BallEvent{Runs: 2})
		cur := *inn.FindBatsman(strikerID)
		assert.GreaterOrEqual(t, cur.Runs, prev.Runs)
		assert.GreaterOrEqual(t, cur.Balls, prev.Balls)
		prev = cur
	}
}

func TestMergeDeliveryBowlerOversDerivedFromBalls(t *testing.T) {
	inn := newTestInnings()

	for i := 0; i < 7; i++ {
		d := Delivery{
			Legal:       true,
			StrikerID:   strikerID,
			BowlerID:    bowlerID,
			BowlerBalls: 1,
		}
		d.StrikerBalls = 1
		require.NoError(t, MergeDelivery(inn, d))
	}

	bowler := inn.FindBowler(bowlerID)
	require.NotNil(t, bowler)
	assert.Equal(t, 7, bowler.Balls)
	assert.Equal(t, 1, bowler.Overs, "overs are floor(balls/6), never summed")
}

func TestMergeDeliveryExtrasBuckets(t *testing.T) {
	tests := []struct {
		extraType string
		want      func(e match.Extras) int
	}{
		{ExtraWide, func(e match.Extras) int { return e.Wides }},
		{ExtraNoBall, func(e match.Extras) int { return e.NoBalls }},
		{ExtraBye, func(e match.Extras) int { return e.Byes }},
		{ExtraLegBye, func(e match.Extras) int { return e.LegByes }},
	}

	for _, tt := range tests {
		t.Run(tt.extraType, func(t *testing.T) {
			inn := newTestInnings()
			d := Delivery{
				TeamRuns:  2,
				ExtraType: tt.extraType,
				ExtraRuns: 2,
				StrikerID: strikerID,
				BowlerID:  bowlerID,
			}
			require.NoError(t, MergeDelivery(inn, d))
			assert.Equal(t, 2, tt.want(inn.Extras))
		})
	}
}

func TestMergeDeliveryUnknownExtraType(t *testing.T) {
	inn := newTestInnings()
	err := MergeDelivery(inn, Delivery{ExtraType: "overthrow", StrikerID: strikerID, BowlerID: bowlerID})
	assert.ErrorIs(t, err, ErrUnknownExtraType)
}

func TestApplyWicketRemovesBatsmanAndFlagsRoster(t *testing.T) {
	inn := newTestInnings()

	d, err := ProcessBall(inn, BallEvent{Wicket: &WicketEvent{Type: WicketCaught, PlayerID: strikerID}})
	require.NoError(t, err)
	require.NoError(t, MergeDelivery(inn, d))

	assert.Equal(t, 1, inn.Wickets)
	require.Len(t, inn.CurrentBatsmen, 1)
	assert.Equal(t, nonStrikerID, inn.CurrentBatsmen[0].PlayerID)

	entry := inn.FindBatsman(strikerID)
	require.NotNil(t, entry)
	assert.True(t, entry.Out)
	assert.Equal(t, WicketCaught, entry.DismissalType)
}

func TestSyncMatchSnapshot(t *testing.T) {
	inn := newTestInnings()
	playBall(t, inn, BallEvent{Runs: 4})
	playBall(t, inn, BallEvent{Extra: &ExtraEvent{Type: ExtraWide, Runs: 1}})
	playBall(t, inn, BallEvent{Runs: 1})

	m := &match.Match{}
	SyncMatchSnapshot(m, inn)

	assert.Equal(t, inn.Runs, m.Score.Runs)
	assert.Equal(t, inn.Wickets, m.Score.Wickets)
	assert.Equal(t, inn.Overs, m.Score.Overs)
	assert.Equal(t, inn.Balls, m.Score.Balls)
	assert.Equal(t, inn.Extras, m.Extras)
	assert.Equal(t, inn.Number, m.CurrentInnings)
}
