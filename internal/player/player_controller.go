package player

import (
	"net/http"
	"strconv"

	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/internal/team"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/cricboard/cricboard/pkg/responses"
	"github.com/gin-gonic/gin"
)

// PlayerController handles player CRUD within a team.
type PlayerController struct {
	repo           PlayerRepository
	teamRepo       team.TeamRepository
	tournamentRepo tournament.TournamentRepository
}

// NewPlayerController creates a new player controller
func NewPlayerController(repo PlayerRepository, teamRepo team.TeamRepository, tournamentRepo tournament.TournamentRepository) *PlayerController {
	return &PlayerController{repo: repo, teamRepo: teamRepo, tournamentRepo: tournamentRepo}
}

// requireTeamOrganizer resolves the team's tournament and checks the caller
// is its organizer. It writes the error response itself and returns false
// on failure.
func (pc *PlayerController) requireTeamOrganizer(c *gin.Context, teamID uint) bool {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return false
	}

	t, err := pc.teamRepo.GetByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return false
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return false
	}

	tour, err := pc.tournamentRepo.GetByID(t.TournamentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return false
	}
	if tour == nil {
		responses.NotFound(c, "Tournament")
		return false
	}
	if tour.CreatedByUserID != userID {
		responses.Forbidden(c, "Only the tournament organizer can manage its players")
		return false
	}
	return true
}

// CreatePlayer godoc
// @Summary Add a player to a team (organizer only)
// @Tags players
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePlayerRequest true "Player payload"
// @Success 201 {object} responses.SuccessResponse
// @Router /players [post]
func (pc *PlayerController) CreatePlayer(c *gin.Context) {
	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if !pc.requireTeamOrganizer(c, req.TeamID) {
		return
	}

	p := &Player{
		Name:         req.Name,
		Role:         req.Role,
		JerseyNumber: req.JerseyNumber,
		BattingStyle: req.BattingStyle,
		BowlingStyle: req.BowlingStyle,
		TeamID:       req.TeamID,
	}

	if err := pc.repo.Create(p); err != nil {
		responses.InternalServerError(c, "Failed to create player")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Player created", p)
}

// GetPlayer godoc
// @Summary Get a player by ID
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /players/{id} [get]
func (pc *PlayerController) GetPlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return
	}

	p, err := pc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if p == nil {
		responses.NotFound(c, "Player")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", p)
}

// ListPlayersByTeam godoc
// @Summary List players on a team
// @Tags players
// @Produce json
// @Param teamId path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /players/team/{teamId} [get]
func (pc *PlayerController) ListPlayersByTeam(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("teamId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	players, err := pc.repo.ListByTeam(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list players")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", players)
}

// UpdatePlayer godoc
// @Summary Update a player (organizer only)
// @Tags players
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Param body body UpdatePlayerRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse
// @Router /players/{id} [put]
func (pc *PlayerController) UpdatePlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return
	}

	p, err := pc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if p == nil {
		responses.NotFound(c, "Player")
		return
	}

	if !pc.requireTeamOrganizer(c, p.TeamID) {
		return
	}

	var req UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	if req.JerseyNumber != nil {
		p.JerseyNumber = *req.JerseyNumber
	}
	if req.BattingStyle != nil {
		p.BattingStyle = *req.BattingStyle
	}
	if req.BowlingStyle != nil {
		p.BowlingStyle = *req.BowlingStyle
	}

	if err := pc.repo.Update(p); err != nil {
		responses.InternalServerError(c, "Failed to update player")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Player updated", p)
}

// DeletePlayer godoc
// @Summary Delete a player (organizer only)
// @Tags players
// @Produce json
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /players/{id} [delete]
func (pc *PlayerController) DeletePlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return
	}

	p, err := pc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if p == nil {
		responses.NotFound(c, "Player")
		return
	}

	if !pc.requireTeamOrganizer(c, p.TeamID) {
		return
	}

	if err := pc.repo.Delete(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete player")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Player deleted", nil)
}
