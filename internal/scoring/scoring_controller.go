package scoring

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/cricboard/cricboard/pkg/responses"
	"github.com/gin-gonic/gin"
)

// ScoringController exposes the live scoring actions. Every write checks
// that the caller organizes the match's tournament before it reaches the
// state machine.
type ScoringController struct {
	service        *ScoringService
	tournamentRepo tournament.TournamentRepository
}

// NewScoringController creates a new scoring controller
func NewScoringController(service *ScoringService, tournamentRepo tournament.TournamentRepository) *ScoringController {
	return &ScoringController{service: service, tournamentRepo: tournamentRepo}
}

type TossRequest struct {
	WinnerTeamID uint   `json:"winner_team_id" binding:"required"`
	Decision     string `json:"decision" binding:"required,oneof=bat bowl"`
}

type OpenersRequest struct {
	StrikerID    uint `json:"striker_id" binding:"required"`
	NonStrikerID uint `json:"non_striker_id" binding:"required"`
	BowlerID     uint `json:"bowler_id" binding:"required"`
}

type PlayerSelectionRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

type WicketRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=bowled caught lbw run_out stumped hit_wicket"`
	Runs     int    `json:"runs" binding:"gte=0,lte=6"`
}

func matchIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps state machine errors onto HTTP statuses:
// malformed input is 400, out-of-order actions are 409, missing records 404.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMatchNotFound), errors.Is(err, ErrInningsNotFound):
		responses.NotFound(c, "Match")
	case errors.Is(err, ErrInvalidEvent), errors.Is(err, ErrInvalidSelection):
		responses.BadRequest(c, err.Error())
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrConsecutiveOver),
		errors.Is(err, ErrInningsNotInProgress),
		errors.Is(err, ErrPlayersNotAssigned):
		responses.Conflict(c, err.Error())
	default:
		responses.InternalServerError(c, "Failed to apply scoring action")
	}
}

// requireOrganizer checks the caller owns the tournament the match belongs
// to. It writes the error response itself and returns false on failure.
func (sc *ScoringController) requireOrganizer(c *gin.Context, matchID uint) bool {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return false
	}

	snap, err := sc.service.Snapshot(matchID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}

	t, err := sc.tournamentRepo.GetByID(snap.Match.TournamentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return false
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return false
	}
	if t.CreatedByUserID != userID {
		responses.Forbidden(c, "Only the tournament organizer can score this match")
		return false
	}
	return true
}

// RecordToss godoc
// @Summary Record the toss outcome (organizer only)
// @Tags scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param body body TossRequest true "Toss payload"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/toss [post]
func (sc *ScoringController) RecordToss(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if !sc.requireOrganizer(c, matchID) {
		return
	}

	var req TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	m, err := sc.service.RecordToss(matchID, req.WinnerTeamID, req.Decision)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Toss recorded", m)
}

// StartMatch godoc
// @Summary Start a match after the toss (organizer only)
// @Tags scoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/start [post]
func (sc *ScoringController) StartMatch(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if !sc.requireOrganizer(c, matchID) {
		return
	}

	m, inn, err := sc.service.StartMatch(matchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Match started", MatchSnapshot{Match: m, Innings: []Innings{*inn}})
}

// CancelMatch godoc
// @Summary Cancel a match (organizer only)
// @Tags scoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/cancel [post]
func (sc *ScoringController) CancelMatch(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if !sc.requireOrganizer(c, matchID) {
		return
	}

	m, err := sc.service.CancelMatch(matchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Match cancelled", m)
}

// SetOpeners godoc
// @Summary Select the opening batsmen and first bowler (organizer only)
// @Tags scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param body body OpenersRequest true "Openers payload"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/openers [post]
func (sc *ScoringController) SetOpeners(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if !sc.requireOrganizer(c, matchID) {
		return
	}

	var req OpenersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	inn, err := sc.service.SetOpeners(matchID, req.StrikerID, req.NonStrikerID, req.BowlerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Openers selected", inn)
}

// SetNextBatsman godoc
// @Summary Select the incoming batsman after a wicket (organizer only)
// @Tags scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param body body PlayerSelectionRequest true "Batsman payload"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/batsman [post]
func (sc *ScoringController) SetNextBatsman(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if !sc.requireOrganizer(c, matchID) {
		return
	}

	var req PlayerSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	inn, err := sc.service.SetNextBatsman(matchID, req.PlayerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Batsman selected", inn)
}

// SetNextBowler godoc
// @Summary Select the next over's bowler (organizer only)
// @Tags scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param body body PlayerSelectionRequest true "Bowler payload"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/bowler [post]
func (sc *ScoringController) SetNextBowler(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if !sc.requireOrganizer(c, matchID) {
		return
	}

	var req PlayerSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	inn, err := sc.service.SetNextBowler(matchID, req.PlayerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Bowler selected", inn)
}

// SubmitBall godoc
// @Summary Submit one ball event (organizer only)
// @Tags scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param body body BallEvent true "Ball event"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/ball [post]
func (sc *ScoringController) SubmitBall(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if !sc.requireOrganizer(c, matchID) {
		return
	}

	var ev BallEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	m, inn, err := sc.service.SubmitBall(matchID, ev)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Ball recorded", MatchSnapshot{Match: m, Innings: []Innings{*inn}})
}

// RecordWicket godoc
// @Summary Record a dismissal (organizer only)
// @Tags scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param body body WicketRequest true "Wicket payload"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/wicket [post]
func (sc *ScoringController) RecordWicket(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if !sc.requireOrganizer(c, matchID) {
		return
	}

	var req WicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	m, inn, err := sc.service.RecordWicket(matchID, req.PlayerID, req.Type, req.Runs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Wicket recorded", MatchSnapshot{Match: m, Innings: []Innings{*inn}})
}

// GetMatchDetail godoc
// @Summary Get a match with all its innings records
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/detail [get]
func (sc *ScoringController) GetMatchDetail(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	snap, err := sc.service.Snapshot(matchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", snap)
}

// GetScorecard godoc
// @Summary Get the innings records for a match ordered by number
// @Tags scoring
// @Produce json
// @Param matchId path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /scores/match/{matchId} [get]
func (sc *ScoringController) GetScorecard(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("matchId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	innings, err := sc.service.Scorecard(uint(matchID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", innings)
}
