package scoring

import (
	"testing"
	"time"

	"github.com/cricboard/cricboard/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

// fakeRepo is an in-memory ScoringRepository. Reads hand out copies so the
// service mutates nothing until it commits, mirroring the database.
type fakeRepo struct {
	matches map[uint]*match.Match
	innings map[uint]map[int]*Innings
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		matches: make(map[uint]*match.Match),
		innings: make(map[uint]map[int]*Innings),
		nextID:  1,
	}
}

func (r *fakeRepo) GetMatch(id uint) (*match.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) GetInnings(matchID uint, number int) (*Innings, error) {
	inn, ok := r.innings[matchID][number]
	if !ok {
		return nil, nil
	}
	cp := *inn
	return &cp, nil
}

func (r *fakeRepo) ListInnings(matchID uint) ([]Innings, error) {
	var out []Innings
	for n := 1; ; n++ {
		inn, ok := r.innings[matchID][n]
		if !ok {
			break
		}
		out = append(out, *inn)
	}
	return out, nil
}

func (r *fakeRepo) SaveMatch(m *match.Match) error {
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

func (r *fakeRepo) Commit(m *match.Match, innings ...*Innings) error {
	cp := *m
	r.matches[m.ID] = &cp
	for _, inn := range innings {
		if r.innings[inn.MatchID] == nil {
			r.innings[inn.MatchID] = make(map[int]*Innings)
		}
		icp := *inn
		r.innings[inn.MatchID][inn.Number] = &icp
	}
	return nil
}

func (r *fakeRepo) addMatch(oversLimit, teamSize int) uint {
	id := r.nextID
	r.nextID++
	r.matches[id] = &match.Match{
		Model:        gormModel(id),
		TournamentID: 1,
		TeamAID:      teamA,
		TeamBID:      teamB,
		ScheduledAt:  time.Now(),
		Status:       match.StatusScheduled,
		OversLimit:   oversLimit,
		TeamSize:     teamSize,
		BallHistory:  match.BallHistory{},
	}
	return id
}

type publishedEvent struct {
	MatchID uint
	Event   string
	Payload interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(matchID uint, event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{MatchID: matchID, Event: event, Payload: payload})
}

func (p *fakePublisher) eventTypes() []string {
	types := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		types = append(types, ev.Event)
	}
	return types
}

const (
	teamA = uint(10)
	teamB = uint(20)
)

// Team A batsmen 1-3, bowlers of team B 30-32; team B batsmen 21-23,
// bowlers of team A 40-42. Team size 3 keeps all-out scenarios short.
func newTestService(oversLimit, teamSize int) (*ScoringService, *fakeRepo, *fakePublisher, uint) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	svc := NewScoringService(repo, pub)
	matchID := repo.addMatch(oversLimit, teamSize)
	return svc, repo, pub, matchID
}

// startLiveMatch runs toss + start + openers so the first ball is accepted.
func startLiveMatch(t *testing.T, svc *ScoringService, matchID uint) {
	t.Helper()
	_, err := svc.RecordToss(matchID, teamA, match.TossDecisionBat)
	require.NoError(t, err)
	_, _, err = svc.StartMatch(matchID)
	require.NoError(t, err)
	_, err = svc.SetOpeners(matchID, 1, 2, 30)
	require.NoError(t, err)
}

func TestRecordToss(t *testing.T) {
	t.Run("winner elects to bat", func(t *testing.T) {
		svc, _, _, matchID := newTestService(2, 3)
		m, err := svc.RecordToss(matchID, teamA, match.TossDecisionBat)
		require.NoError(t, err)
		assert.Equal(t, teamA, *m.BattingTeamID)
		assert.Equal(t, teamB, *m.BowlingTeamID)
	})

	t.Run("winner elects to bowl", func(t *testing.T) {
		svc, _, _, matchID := newTestService(2, 3)
		m, err := svc.RecordToss(matchID, teamA, match.TossDecisionBowl)
		require.NoError(t, err)
		assert.Equal(t, teamB, *m.BattingTeamID)
		assert.Equal(t, teamA, *m.BowlingTeamID)
	})

	t.Run("team not in the match is rejected", func(t *testing.T) {
		svc, _, _, matchID := newTestService(2, 3)
		_, err := svc.RecordToss(matchID, 99, match.TossDecisionBat)
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})

	t.Run("toss on a live match is rejected", func(t *testing.T) {
		svc, _, _, matchID := newTestService(2, 3)
		startLiveMatch(t, svc, matchID)
		_, err := svc.RecordToss(matchID, teamA, match.TossDecisionBat)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown match", func(t *testing.T) {
		svc, _, _, _ := newTestService(2, 3)
		_, err := svc.RecordToss(999, teamA, match.TossDecisionBat)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestStartMatch(t *testing.T) {
	t.Run("start requires a recorded toss", func(t *testing.T) {
		svc, _, _, matchID := newTestService(2, 3)
		_, _, err := svc.StartMatch(matchID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("start opens innings 1 awaiting openers", func(t *testing.T) {
		svc, _, pub, matchID := newTestService(2, 3)
		_, err := svc.RecordToss(matchID, teamA, match.TossDecisionBat)
		require.NoError(t, err)

		m, inn, err := svc.StartMatch(matchID)
		require.NoError(t, err)
		assert.Equal(t, match.StatusLive, m.Status)
		assert.Equal(t, 1, m.CurrentInnings)
		assert.Equal(t, PhaseAwaitingOpeners, inn.Phase)
		assert.Equal(t, teamA, inn.BattingTeamID)
		assert.Contains(t, pub.eventTypes(), EventMatchStarted)
	})

	t.Run("ball before openers is rejected", func(t *testing.T) {
		svc, _, _, matchID := newTestService(2, 3)
		_, err := svc.RecordToss(matchID, teamA, match.TossDecisionBat)
		require.NoError(t, err)
		_, _, err = svc.StartMatch(matchID)
		require.NoError(t, err)

		_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 1})
		assert.ErrorIs(t, err, ErrInningsNotInProgress)
	})
}

func TestSetOpeners(t *testing.T) {
	svc, _, _, matchID := newTestService(2, 3)
	_, err := svc.RecordToss(matchID, teamA, match.TossDecisionBat)
	require.NoError(t, err)
	_, _, err = svc.StartMatch(matchID)
	require.NoError(t, err)

	t.Run("striker and non-striker must differ", func(t *testing.T) {
		_, err := svc.SetOpeners(matchID, 1, 1, 30)
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})

	t.Run("openers unblock scoring", func(t *testing.T) {
		inn, err := svc.SetOpeners(matchID, 1, 2, 30)
		require.NoError(t, err)
		assert.Equal(t, PhaseInProgress, inn.Phase)
		assert.Equal(t, uint(1), inn.Striker().PlayerID)

		_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 4})
		assert.NoError(t, err)
	})

	t.Run("openers twice is rejected", func(t *testing.T) {
		_, err := svc.SetOpeners(matchID, 1, 2, 30)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestWicketBlocksUntilBatsmanSelected(t *testing.T) {
	svc, _, _, matchID := newTestService(2, 3)
	startLiveMatch(t, svc, matchID)

	_, inn, err := svc.SubmitBall(matchID, BallEvent{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: 1}})
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingBatsman, inn.Phase)
	assert.Equal(t, 1, inn.Wickets)

	_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 1})
	assert.ErrorIs(t, err, ErrInningsNotInProgress)

	t.Run("a batsman who already batted cannot return", func(t *testing.T) {
		_, err := svc.SetNextBatsman(matchID, 1)
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})

	inn2, err := svc.SetNextBatsman(matchID, 3)
	require.NoError(t, err)
	assert.Equal(t, PhaseInProgress, inn2.Phase)
	assert.Equal(t, uint(3), inn2.Striker().PlayerID, "the incoming batsman takes the vacated striker end")

	_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 1})
	assert.NoError(t, err)
}

func TestOverCompletionRequiresNewBowler(t *testing.T) {
	svc, _, _, matchID := newTestService(2, 3)
	startLiveMatch(t, svc, matchID)

	var inn *Innings
	var err error
	for i := 0; i < 6; i++ {
		_, inn, err = svc.SubmitBall(matchID, BallEvent{Runs: 0})
		require.NoError(t, err)
	}
	assert.Equal(t, PhaseAwaitingBowler, inn.Phase)
	assert.Equal(t, uint(30), inn.PreviousBowlerID)
	assert.Zero(t, inn.CurrentBowlerID)

	_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 0})
	assert.ErrorIs(t, err, ErrInningsNotInProgress)

	t.Run("same bowler cannot bowl consecutive overs", func(t *testing.T) {
		_, err := svc.SetNextBowler(matchID, 30)
		assert.ErrorIs(t, err, ErrConsecutiveOver)
	})

	inn, err = svc.SetNextBowler(matchID, 31)
	require.NoError(t, err)
	assert.Equal(t, PhaseInProgress, inn.Phase)

	_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 0})
	assert.NoError(t, err)
}

func TestInningsHandoverByOvers(t *testing.T) {
	svc, repo, pub, matchID := newTestService(1, 3)
	startLiveMatch(t, svc, matchID)

	// Six singles: 6 runs, and the single over is exhausted.
	var m *match.Match
	var inn *Innings
	var err error
	for i := 0; i < 6; i++ {
		m, inn, err = svc.SubmitBall(matchID, BallEvent{Runs: 1})
		require.NoError(t, err)
	}

	require.NotNil(t, m.Target)
	assert.Equal(t, 7, *m.Target, "target is innings-1 runs plus one")
	assert.Equal(t, 2, m.CurrentInnings)
	assert.Equal(t, teamB, *m.BattingTeamID, "roles swap for innings 2")
	assert.Equal(t, teamA, *m.BowlingTeamID)
	assert.Equal(t, match.Score{}, m.Score, "snapshot resets for the new innings")
	assert.Empty(t, m.BallHistory)

	assert.Equal(t, 2, inn.Number)
	assert.Equal(t, PhaseAwaitingOpeners, inn.Phase)

	first, err := repo.GetInnings(matchID, 1)
	require.NoError(t, err)
	assert.Equal(t, PhaseClosed, first.Phase)
	assert.Equal(t, 6, first.Runs)

	assert.Contains(t, pub.eventTypes(), EventInningsCompleted)
}

func TestInningsHandoverByAllOut(t *testing.T) {
	svc, repo, _, matchID := newTestService(5, 3)
	startLiveMatch(t, svc, matchID)

	_, _, err := svc.SubmitBall(matchID, BallEvent{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: 1}})
	require.NoError(t, err)
	_, err = svc.SetNextBatsman(matchID, 3)
	require.NoError(t, err)

	// Second wicket: team size 3 means 2 wickets is all out.
	m, inn, err := svc.SubmitBall(matchID, BallEvent{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: 3}})
	require.NoError(t, err)

	assert.Equal(t, 2, m.CurrentInnings)
	assert.Equal(t, 2, inn.Number)
	require.NotNil(t, m.Target)
	assert.Equal(t, 1, *m.Target)

	first, err := repo.GetInnings(matchID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Wickets)
	assert.Equal(t, PhaseClosed, first.Phase)
}

// setupChase closes innings 1 at 6 runs (target 7) and opens innings 2.
func setupChase(t *testing.T, svc *ScoringService, matchID uint) {
	t.Helper()
	startLiveMatch(t, svc, matchID)
	for i := 0; i < 6; i++ {
		_, _, err := svc.SubmitBall(matchID, BallEvent{Runs: 1})
		require.NoError(t, err)
	}
	_, err := svc.SetOpeners(matchID, 21, 22, 40)
	require.NoError(t, err)
}

func TestMatchEndTargetReached(t *testing.T) {
	svc, _, pub, matchID := newTestService(1, 3)
	setupChase(t, svc, matchID)

	_, _, err := svc.SubmitBall(matchID, BallEvent{Runs: 6})
	require.NoError(t, err)
	m, inn, err := svc.SubmitBall(matchID, BallEvent{Runs: 1})
	require.NoError(t, err)

	assert.Equal(t, match.StatusCompleted, m.Status)
	require.NotNil(t, m.WinnerTeamID)
	assert.Equal(t, teamB, *m.WinnerTeamID)
	assert.Equal(t, match.ResultByWickets, m.ResultMethod)
	assert.Equal(t, "won by 2 wickets", m.ResultMargin)
	assert.Equal(t, PhaseClosed, inn.Phase)
	assert.Contains(t, pub.eventTypes(), EventMatchCompleted)

	t.Run("no scoring after completion", func(t *testing.T) {
		_, _, err := svc.SubmitBall(matchID, BallEvent{Runs: 1})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestMatchEndAllOutShortOfTarget(t *testing.T) {
	svc, _, _, matchID := newTestService(1, 3)
	setupChase(t, svc, matchID)

	_, _, err := svc.SubmitBall(matchID, BallEvent{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: 21}})
	require.NoError(t, err)
	_, err = svc.SetNextBatsman(matchID, 23)
	require.NoError(t, err)

	m, _, err := svc.SubmitBall(matchID, BallEvent{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: 23}})
	require.NoError(t, err)

	assert.Equal(t, match.StatusCompleted, m.Status)
	require.NotNil(t, m.WinnerTeamID)
	assert.Equal(t, teamA, *m.WinnerTeamID, "the bowling side defends the target")
	assert.Equal(t, match.ResultByRuns, m.ResultMethod)
	assert.Equal(t, "won by 6 runs", m.ResultMargin)
}

func TestMatchEndOversExhaustedShortOfTarget(t *testing.T) {
	svc, _, _, matchID := newTestService(1, 3)
	setupChase(t, svc, matchID)

	// Five dots then a single: 1 run off the over, target 7 never reached.
	var m *match.Match
	var err error
	for i := 0; i < 5; i++ {
		_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 0})
		require.NoError(t, err)
	}
	m, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 1})
	require.NoError(t, err)

	assert.Equal(t, match.StatusCompleted, m.Status)
	require.NotNil(t, m.WinnerTeamID)
	assert.Equal(t, teamA, *m.WinnerTeamID)
	assert.Equal(t, "won by 5 runs", m.ResultMargin)
}

func TestMatchEndTie(t *testing.T) {
	svc, _, _, matchID := newTestService(1, 3)
	setupChase(t, svc, matchID)

	// Six singles: innings closes on the overs limit at 6, one short of the
	// 7-run target. Target minus one is a tie.
	var m *match.Match
	var err error
	for i := 0; i < 6; i++ {
		m, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 1})
		require.NoError(t, err)
	}

	assert.Equal(t, match.StatusCompleted, m.Status)
	assert.Nil(t, m.WinnerTeamID)
	assert.Equal(t, match.ResultTie, m.ResultMethod)
	assert.Equal(t, "match tied", m.ResultMargin)
}

func TestTargetReachedOnLastWicketBallIsAWin(t *testing.T) {
	svc, _, _, matchID := newTestService(1, 3)
	setupChase(t, svc, matchID)

	_, _, err := svc.SubmitBall(matchID, BallEvent{Runs: 6})
	require.NoError(t, err)
	_, _, err = svc.SubmitBall(matchID, BallEvent{Wicket: &WicketEvent{Type: WicketBowled, PlayerID: 21}})
	require.NoError(t, err)
	_, err = svc.SetNextBatsman(matchID, 23)
	require.NoError(t, err)

	// A run-out that completes the winning run while the last wicket falls:
	// the target condition is evaluated first, so the batting side wins.
	m, _, err := svc.SubmitBall(matchID, BallEvent{
		Runs:   1,
		Wicket: &WicketEvent{Type: WicketRunOut, PlayerID: 22},
	})
	require.NoError(t, err)

	assert.Equal(t, match.StatusCompleted, m.Status)
	require.NotNil(t, m.WinnerTeamID)
	assert.Equal(t, teamB, *m.WinnerTeamID)
	assert.Equal(t, match.ResultByWickets, m.ResultMethod)
}

func TestCancelMatch(t *testing.T) {
	t.Run("cancel a live match stops scoring", func(t *testing.T) {
		svc, _, pub, matchID := newTestService(2, 3)
		startLiveMatch(t, svc, matchID)

		m, err := svc.CancelMatch(matchID)
		require.NoError(t, err)
		assert.Equal(t, match.StatusCancelled, m.Status)
		assert.Contains(t, pub.eventTypes(), EventMatchCancelled)

		_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 1})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("a completed match cannot be cancelled", func(t *testing.T) {
		svc, _, _, matchID := newTestService(1, 3)
		setupChase(t, svc, matchID)
		_, _, err := svc.SubmitBall(matchID, BallEvent{Runs: 6})
		require.NoError(t, err)
		_, _, err = svc.SubmitBall(matchID, BallEvent{Runs: 1})
		require.NoError(t, err)

		_, err = svc.CancelMatch(matchID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestScoreUpdatePublishedOnEveryBall(t *testing.T) {
	svc, _, pub, matchID := newTestService(2, 3)
	startLiveMatch(t, svc, matchID)

	before := len(pub.events)
	_, _, err := svc.SubmitBall(matchID, BallEvent{Runs: 4})
	require.NoError(t, err)

	require.Greater(t, len(pub.events), before)
	last := pub.events[len(pub.events)-1]
	assert.Equal(t, EventScoreUpdated, last.Event)
	update, ok := last.Payload.(ScoreUpdate)
	require.True(t, ok)
	assert.Equal(t, 4, update.Innings.Runs)
	assert.Equal(t, 4, update.Ball.Runs)
}

func TestExplicitWicketEndpointRoutesThroughEngine(t *testing.T) {
	svc, _, _, matchID := newTestService(2, 3)
	startLiveMatch(t, svc, matchID)

	_, inn, err := svc.RecordWicket(matchID, 1, WicketCaught, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, inn.Wickets)
	entry := inn.FindBatsman(1)
	require.NotNil(t, entry)
	assert.True(t, entry.Out)
	assert.Equal(t, WicketCaught, entry.DismissalType)
	require.Len(t, inn.BallByBall, 1, "the dismissal is one atomic ball event")
	assert.True(t, inn.BallByBall[0].Wicket)
}
