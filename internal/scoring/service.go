package scoring

import (
	"errors"
	"fmt"

	"github.com/cricboard/cricboard/internal/match"
)

// Broadcast event types published on match commits.
const (
	EventScoreUpdated     = "score.updated"
	EventMatchStarted     = "match.started"
	EventInningsCompleted = "innings.completed"
	EventMatchCompleted   = "match.completed"
	EventMatchCancelled   = "match.cancelled"
)

// Service-level errors. Controllers map these onto HTTP statuses.
var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrInningsNotFound   = errors.New("innings not found")
	ErrInvalidTransition = errors.New("action is not valid in the current match state")
	ErrConsecutiveOver   = errors.New("a bowler cannot bowl two consecutive overs")
	ErrInvalidSelection  = errors.New("invalid player selection")
)

// Publisher delivers committed state transitions to match subscribers.
// Publishing is fire-and-forget: transport failures never roll back a commit.
type Publisher interface {
	Publish(matchID uint, event string, payload interface{})
}

// NopPublisher discards all events.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(uint, string, interface{}) {}

// ScoreUpdate is the payload broadcast after every committed delivery.
type ScoreUpdate struct {
	Match   *match.Match     `json:"match"`
	Innings *Innings         `json:"innings"`
	Ball    match.BallRecord `json:"ball"`
}

// MatchSnapshot is the full authoritative state sent to late joiners and
// returned by the match-detail read.
type MatchSnapshot struct {
	Match   *match.Match `json:"match"`
	Innings []Innings    `json:"innings"`
}

// ScoringService sequences the ball event processor across overs, innings
// and match completion. Every mutating method holds the per-match lock for
// its whole duration, so each match is single-writer.
type ScoringService struct {
	repo      ScoringRepository
	locks     *MatchLocks
	publisher Publisher
}

// NewScoringService creates a new scoring service
func NewScoringService(repo ScoringRepository, publisher Publisher) *ScoringService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &ScoringService{
		repo:      repo,
		locks:     NewMatchLocks(),
		publisher: publisher,
	}
}

func (s *ScoringService) loadMatch(matchID uint) (*match.Match, error) {
	m, err := s.repo.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

func (s *ScoringService) loadCurrentInnings(m *match.Match) (*Innings, error) {
	if m.CurrentInnings == 0 {
		return nil, fmt.Errorf("%w: the match has not started", ErrInningsNotFound)
	}
	inn, err := s.repo.GetInnings(m.ID, m.CurrentInnings)
	if err != nil {
		return nil, err
	}
	if inn == nil {
		return nil, ErrInningsNotFound
	}
	return inn, nil
}

// RecordToss records the toss outcome on a scheduled match and fixes the
// batting/bowling roles for innings 1.
func (s *ScoringService) RecordToss(matchID, winnerTeamID uint, decision string) (*match.Match, error) {
	defer s.locks.Lock(matchID)()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != match.StatusScheduled {
		return nil, fmt.Errorf("%w: toss requires a scheduled match, status is %s", ErrInvalidTransition, m.Status)
	}
	if winnerTeamID != m.TeamAID && winnerTeamID != m.TeamBID {
		return nil, fmt.Errorf("%w: team %d is not playing this match", ErrInvalidSelection, winnerTeamID)
	}
	if decision != match.TossDecisionBat && decision != match.TossDecisionBowl {
		return nil, fmt.Errorf("%w: toss decision must be %q or %q", ErrInvalidSelection, match.TossDecisionBat, match.TossDecisionBowl)
	}

	loser := m.TeamAID
	if winnerTeamID == m.TeamAID {
		loser = m.TeamBID
	}

	batting, bowling := winnerTeamID, loser
	if decision == match.TossDecisionBowl {
		batting, bowling = loser, winnerTeamID
	}

	winner := winnerTeamID
	m.TossWinnerTeamID = &winner
	m.TossDecision = decision
	m.BattingTeamID = &batting
	m.BowlingTeamID = &bowling

	if err := s.repo.SaveMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// StartMatch moves a scheduled match with a recorded toss to live and opens
// innings 1 awaiting its openers.
func (s *ScoringService) StartMatch(matchID uint) (*match.Match, *Innings, error) {
	defer s.locks.Lock(matchID)()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, nil, err
	}
	if m.Status != match.StatusScheduled {
		return nil, nil, fmt.Errorf("%w: start requires a scheduled match, status is %s", ErrInvalidTransition, m.Status)
	}
	if m.TossWinnerTeamID == nil || m.BattingTeamID == nil || m.BowlingTeamID == nil {
		return nil, nil, fmt.Errorf("%w: the toss must be recorded before the match starts", ErrInvalidTransition)
	}

	m.Status = match.StatusLive
	m.CurrentInnings = 1
	m.Score = match.Score{}
	m.Extras = match.Extras{}
	m.BallHistory = match.BallHistory{}

	inn := &Innings{
		MatchID:        m.ID,
		Number:         1,
		BattingTeamID:  *m.BattingTeamID,
		BowlingTeamID:  *m.BowlingTeamID,
		Phase:          PhaseAwaitingOpeners,
		CurrentBatsmen: BatsmanList{},
		AllBatsmen:     BatsmanList{},
		AllBowlers:     BowlerList{},
		BallByBall:     BallLog{},
	}

	if err := s.repo.Commit(m, inn); err != nil {
		return nil, nil, err
	}

	s.publisher.Publish(m.ID, EventMatchStarted, MatchSnapshot{Match: m, Innings: []Innings{*inn}})
	return m, inn, nil
}

// CancelMatch is absorbing from any pre-completed status. No further
// scoring is processed afterwards.
func (s *ScoringService) CancelMatch(matchID uint) (*match.Match, error) {
	defer s.locks.Lock(matchID)()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Status == match.StatusCompleted || m.Status == match.StatusCancelled {
		return nil, fmt.Errorf("%w: a %s match cannot be cancelled", ErrInvalidTransition, m.Status)
	}

	m.Status = match.StatusCancelled
	if err := s.repo.SaveMatch(m); err != nil {
		return nil, err
	}

	s.publisher.Publish(m.ID, EventMatchCancelled, MatchSnapshot{Match: m})
	return m, nil
}

// SetOpeners supplies the opening pair and the first bowler, the only exit
// from the awaiting_openers phase.
func (s *ScoringService) SetOpeners(matchID, strikerID, nonStrikerID, bowlerID uint) (*Innings, error) {
	defer s.locks.Lock(matchID)()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != match.StatusLive {
		return nil, fmt.Errorf("%w: match is not live", ErrInvalidTransition)
	}

	inn, err := s.loadCurrentInnings(m)
	if err != nil {
		return nil, err
	}
	if inn.Phase != PhaseAwaitingOpeners {
		return nil, fmt.Errorf("%w: innings is not awaiting openers", ErrInvalidTransition)
	}
	if strikerID == 0 || nonStrikerID == 0 || bowlerID == 0 {
		return nil, fmt.Errorf("%w: striker, non-striker and bowler are all required", ErrInvalidSelection)
	}
	if strikerID == nonStrikerID {
		return nil, fmt.Errorf("%w: striker and non-striker must differ", ErrInvalidSelection)
	}

	inn.CurrentBatsmen = BatsmanList{
		{PlayerID: strikerID, OnStrike: true},
		{PlayerID: nonStrikerID},
	}
	inn.AllBatsmen = append(inn.AllBatsmen,
		BatsmanStat{PlayerID: strikerID},
		BatsmanStat{PlayerID: nonStrikerID},
	)
	inn.CurrentBowlerID = bowlerID
	inn.AllBowlers = append(inn.AllBowlers, BowlerStat{PlayerID: bowlerID})
	inn.Phase = PhaseInProgress

	if err := s.repo.Commit(m, inn); err != nil {
		return nil, err
	}
	return inn, nil
}

// SetNextBatsman supplies the incoming batsman after a wicket. The new
// batsman takes the vacated end.
func (s *ScoringService) SetNextBatsman(matchID, playerID uint) (*Innings, error) {
	defer s.locks.Lock(matchID)()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != match.StatusLive {
		return nil, fmt.Errorf("%w: match is not live", ErrInvalidTransition)
	}

	inn, err := s.loadCurrentInnings(m)
	if err != nil {
		return nil, err
	}
	if inn.Phase != PhaseAwaitingBatsman {
		return nil, fmt.Errorf("%w: innings is not awaiting a batsman", ErrInvalidTransition)
	}
	if playerID == 0 {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidSelection)
	}
	if inn.FindBatsman(playerID) != nil {
		return nil, fmt.Errorf("%w: player %d has already batted this innings", ErrInvalidSelection, playerID)
	}
	if len(inn.CurrentBatsmen) != 1 {
		return nil, fmt.Errorf("%w: no vacant batting slot", ErrInvalidTransition)
	}

	onStrike := !inn.CurrentBatsmen[0].OnStrike
	inn.CurrentBatsmen = append(inn.CurrentBatsmen, BatsmanStat{PlayerID: playerID, OnStrike: onStrike})
	inn.AllBatsmen = append(inn.AllBatsmen, BatsmanStat{PlayerID: playerID})

	// A wicket on the last ball of an over leaves both prompts pending; the
	// batsman comes first, then the next over's bowler.
	if inn.CurrentBowlerID == 0 {
		inn.Phase = PhaseAwaitingBowler
	} else {
		inn.Phase = PhaseInProgress
	}

	if err := s.repo.Commit(m, inn); err != nil {
		return nil, err
	}
	return inn, nil
}

// SetNextBowler confirms the next over's bowler, enforcing the
// no-consecutive-overs rule.
func (s *ScoringService) SetNextBowler(matchID, playerID uint) (*Innings, error) {
	defer s.locks.Lock(matchID)()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != match.StatusLive {
		return nil, fmt.Errorf("%w: match is not live", ErrInvalidTransition)
	}

	inn, err := s.loadCurrentInnings(m)
	if err != nil {
		return nil, err
	}
	if inn.Phase != PhaseAwaitingBowler {
		return nil, fmt.Errorf("%w: innings is not awaiting a bowler", ErrInvalidTransition)
	}
	if playerID == 0 {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidSelection)
	}
	if playerID == inn.PreviousBowlerID {
		return nil, ErrConsecutiveOver
	}

	inn.CurrentBowlerID = playerID
	if inn.FindBowler(playerID) == nil {
		inn.AllBowlers = append(inn.AllBowlers, BowlerStat{PlayerID: playerID})
	}
	inn.Phase = PhaseInProgress

	if err := s.repo.Commit(m, inn); err != nil {
		return nil, err
	}
	return inn, nil
}

// SubmitBall is the single scoring entry point: it processes one ball event,
// merges the delta, applies over/innings/match transitions and commits the
// match snapshot and innings record as one unit.
func (s *ScoringService) SubmitBall(matchID uint, ev BallEvent) (*match.Match, *Innings, error) {
	defer s.locks.Lock(matchID)()

	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, nil, err
	}
	if m.Status != match.StatusLive {
		return nil, nil, fmt.Errorf("%w: match is not live", ErrInvalidTransition)
	}

	inn, err := s.loadCurrentInnings(m)
	if err != nil {
		return nil, nil, err
	}

	d, err := ProcessBall(inn, ev)
	if err != nil {
		return nil, nil, err
	}
	if err := MergeDelivery(inn, d); err != nil {
		return nil, nil, err
	}

	m.BallHistory = append(m.BallHistory, d.Record)

	allOut := inn.Wickets >= m.TeamSize-1
	oversDone := m.OversLimit > 0 && inn.Overs >= m.OversLimit
	inningsOver := allOut || oversDone

	// Match-end conditions, evaluated in order after every committed ball.
	// The target check comes first, so reaching the target on the same ball
	// as the last wicket is still a win for the batting side.
	var matchOver bool
	if m.Target != nil {
		switch {
		case inn.Runs >= *m.Target:
			matchOver = true
			m.WinnerTeamID = m.BattingTeamID
			m.ResultMethod = match.ResultByWickets
			m.ResultMargin = fmt.Sprintf("won by %d wickets", m.TeamSize-1-inn.Wickets)
		case inningsOver && inn.Runs == *m.Target-1:
			matchOver = true
			m.WinnerTeamID = nil
			m.ResultMethod = match.ResultTie
			m.ResultMargin = "match tied"
		case inningsOver:
			matchOver = true
			m.WinnerTeamID = m.BowlingTeamID
			m.ResultMethod = match.ResultByRuns
			m.ResultMargin = fmt.Sprintf("won by %d runs", *m.Target-1-inn.Runs)
		}
	}

	var secondInnings *Innings

	switch {
	case matchOver:
		inn.Phase = PhaseClosed
		inn.CurrentBowlerID = 0
		m.Status = match.StatusCompleted
		SyncMatchSnapshot(m, inn)

	case inningsOver:
		// Innings 1 closes: set the target, swap roles and open innings 2.
		inn.Phase = PhaseClosed
		inn.CurrentBowlerID = 0

		target := inn.Runs + 1
		m.Target = &target
		m.BattingTeamID, m.BowlingTeamID = m.BowlingTeamID, m.BattingTeamID
		m.CurrentInnings = 2
		m.Score = match.Score{}
		m.Extras = match.Extras{}
		m.BallHistory = match.BallHistory{}

		secondInnings = &Innings{
			MatchID:        m.ID,
			Number:         2,
			BattingTeamID:  *m.BattingTeamID,
			BowlingTeamID:  *m.BowlingTeamID,
			Phase:          PhaseAwaitingOpeners,
			CurrentBatsmen: BatsmanList{},
			AllBatsmen:     BatsmanList{},
			AllBowlers:     BowlerList{},
			BallByBall:     BallLog{},
		}

	default:
		if d.Wicket != nil {
			inn.Phase = PhaseAwaitingBatsman
		}
		if d.OverCompleted {
			if inn.Phase == PhaseInProgress {
				inn.Phase = PhaseAwaitingBowler
			}
			inn.PreviousBowlerID = inn.CurrentBowlerID
			inn.CurrentBowlerID = 0
		}
		SyncMatchSnapshot(m, inn)
	}

	innings := []*Innings{inn}
	if secondInnings != nil {
		innings = append(innings, secondInnings)
	}
	if err := s.repo.Commit(m, innings...); err != nil {
		return nil, nil, err
	}

	s.publisher.Publish(m.ID, EventScoreUpdated, ScoreUpdate{Match: m, Innings: inn, Ball: d.Record})
	if matchOver {
		s.publisher.Publish(m.ID, EventMatchCompleted, MatchSnapshot{Match: m, Innings: []Innings{*inn}})
	} else if secondInnings != nil {
		s.publisher.Publish(m.ID, EventInningsCompleted, MatchSnapshot{Match: m, Innings: []Innings{*inn, *secondInnings}})
	}

	if secondInnings != nil {
		return m, secondInnings, nil
	}
	return m, inn, nil
}

// RecordWicket is the explicit dismissal endpoint. It wraps the dismissal
// in a ball event and routes it through the same processor as every other
// delivery, so a wicket stays one atomic commit.
func (s *ScoringService) RecordWicket(matchID, playerID uint, wicketType string, runs int) (*match.Match, *Innings, error) {
	return s.SubmitBall(matchID, BallEvent{
		Runs:   runs,
		Wicket: &WicketEvent{Type: wicketType, PlayerID: playerID},
	})
}

// Scorecard returns the innings records for a match ordered by number.
func (s *ScoringService) Scorecard(matchID uint) ([]Innings, error) {
	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListInnings(m.ID)
}

// Snapshot returns the full authoritative state for a match, used for
// late-joining subscribers and the match-detail read.
func (s *ScoringService) Snapshot(matchID uint) (*MatchSnapshot, error) {
	m, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	innings, err := s.repo.ListInnings(m.ID)
	if err != nil {
		return nil, err
	}
	return &MatchSnapshot{Match: m, Innings: innings}, nil
}
