package team

import (
	"net/http"
	"strconv"

	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/internal/tournament"
	"github.com/cricboard/cricboard/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TeamController handles team CRUD within a tournament.
type TeamController struct {
	repo           TeamRepository
	tournamentRepo tournament.TournamentRepository
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository, tournamentRepo tournament.TournamentRepository) *TeamController {
	return &TeamController{repo: repo, tournamentRepo: tournamentRepo}
}

// requireOrganizer loads the tournament and checks the caller owns it.
// It writes the error response itself and returns false on failure.
func (tc *TeamController) requireOrganizer(c *gin.Context, tournamentID uint) bool {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return false
	}

	t, err := tc.tournamentRepo.GetByID(tournamentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return false
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return false
	}
	if t.CreatedByUserID != userID {
		responses.Forbidden(c, "Only the tournament organizer can manage its teams")
		return false
	}
	return true
}

// CreateTeam godoc
// @Summary Add a team to a tournament (organizer only)
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTeamRequest true "Team payload"
// @Success 201 {object} responses.SuccessResponse
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if !tc.requireOrganizer(c, req.TournamentID) {
		return
	}

	t := &Team{
		Name:         req.Name,
		ShortName:    req.ShortName,
		LogoURL:      req.LogoURL,
		CaptainName:  req.CaptainName,
		CoachName:    req.CoachName,
		TournamentID: req.TournamentID,
	}

	if err := tc.repo.Create(t); err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Team created", t)
}

// GetTeam godoc
// @Summary Get a team by ID
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", t)
}

// ListTeamsByTournament godoc
// @Summary List teams in a tournament
// @Tags teams
// @Produce json
// @Param tournamentId path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/tournament/{tournamentId} [get]
func (tc *TeamController) ListTeamsByTournament(c *gin.Context) {
	tournamentID, err := strconv.ParseUint(c.Param("tournamentId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	teams, err := tc.repo.ListByTournament(uint(tournamentID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", teams)
}

// UpdateTeam godoc
// @Summary Update a team (organizer only)
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param body body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if !tc.requireOrganizer(c, t.TournamentID) {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.ShortName != nil {
		t.ShortName = *req.ShortName
	}
	if req.LogoURL != nil {
		t.LogoURL = *req.LogoURL
	}
	if req.CaptainName != nil {
		t.CaptainName = *req.CaptainName
	}
	if req.CoachName != nil {
		t.CoachName = *req.CoachName
	}

	if err := tc.repo.Update(t); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Team updated", t)
}

// DeleteTeam godoc
// @Summary Delete a team (organizer only)
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if !tc.requireOrganizer(c, t.TournamentID) {
		return
	}

	if err := tc.repo.Delete(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Team deleted", nil)
}
