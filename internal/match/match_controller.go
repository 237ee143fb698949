package match

import (
	"net/http"
	"strconv"

	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/cricboard/cricboard/pkg/responses"
	"github.com/gin-gonic/gin"
)

// MatchController handles match scheduling CRUD. Live scoring actions live in
// the scoring package; this controller only manages the fixture itself.
type MatchController struct {
	repo           MatchRepository
	tournamentRepo tournament.TournamentRepository
}

// NewMatchController creates a new match controller
func NewMatchController(repo MatchRepository, tournamentRepo tournament.TournamentRepository) *MatchController {
	return &MatchController{repo: repo, tournamentRepo: tournamentRepo}
}

func (mc *MatchController) requireOrganizer(c *gin.Context, tournamentID uint) bool {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return false
	}

	t, err := mc.tournamentRepo.GetByID(tournamentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return false
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return false
	}
	if t.CreatedByUserID != userID {
		responses.Forbidden(c, "Only the tournament organizer can manage its matches")
		return false
	}
	return true
}

// CreateMatch godoc
// @Summary Schedule a match (organizer only)
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMatchRequest true "Match payload"
// @Success 201 {object} responses.SuccessResponse
// @Router /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if req.TeamAID == req.TeamBID {
		responses.BadRequest(c, "A match requires two distinct teams")
		return
	}

	if !mc.requireOrganizer(c, req.TournamentID) {
		return
	}

	t, _ := mc.tournamentRepo.GetByID(req.TournamentID)
	oversLimit := req.OversLimit
	if oversLimit == 0 && t != nil {
		oversLimit = tournament.DefaultOversForFormat(t.Format)
	}
	if oversLimit == 0 {
		oversLimit = 20
	}
	teamSize := req.TeamSize
	if teamSize == 0 {
		teamSize = 11
	}

	m := &Match{
		TournamentID: req.TournamentID,
		TeamAID:      req.TeamAID,
		TeamBID:      req.TeamBID,
		Venue:        req.Venue,
		ScheduledAt:  req.ScheduledAt,
		Status:       StatusScheduled,
		OversLimit:   oversLimit,
		TeamSize:     teamSize,
		BallHistory:  BallHistory{},
	}

	if err := mc.repo.Create(m); err != nil {
		responses.InternalServerError(c, "Failed to create match")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Match scheduled", m)
}

// GetMatch godoc
// @Summary Get a match by ID
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	m, err := mc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", m)
}

// ListMatchesByTournament godoc
// @Summary List matches in a tournament
// @Tags matches
// @Produce json
// @Param tournamentId path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/tournament/{tournamentId} [get]
func (mc *MatchController) ListMatchesByTournament(c *gin.Context) {
	tournamentID, err := strconv.ParseUint(c.Param("tournamentId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	matches, err := mc.repo.ListByTournament(uint(tournamentID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", matches)
}

// UpdateMatch godoc
// @Summary Update fixture details (organizer only)
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param body body UpdateMatchRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	m, err := mc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}

	if !mc.requireOrganizer(c, m.TournamentID) {
		return
	}

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	// Overs limit and team size are frozen once play starts.
	if m.Status != StatusScheduled && (req.OversLimit != nil || req.TeamSize != nil) {
		responses.Conflict(c, "Overs limit and team size cannot change after the match starts")
		return
	}

	if req.Venue != nil {
		m.Venue = *req.Venue
	}
	if req.ScheduledAt != nil {
		m.ScheduledAt = *req.ScheduledAt
	}
	if req.OversLimit != nil {
		m.OversLimit = *req.OversLimit
	}
	if req.TeamSize != nil {
		m.TeamSize = *req.TeamSize
	}
	if req.PlayerOfMatchID != nil {
		m.PlayerOfMatchID = req.PlayerOfMatchID
	}

	if err := mc.repo.Update(m); err != nil {
		responses.InternalServerError(c, "Failed to update match")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Match updated", m)
}

// DeleteMatch godoc
// @Summary Delete a scheduled match (organizer only)
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	m, err := mc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}

	if !mc.requireOrganizer(c, m.TournamentID) {
		return
	}

	if m.Status == StatusLive {
		responses.Conflict(c, "A live match cannot be deleted; cancel it first")
		return
	}

	if err := mc.repo.Delete(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete match")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Match deleted", nil)
}
