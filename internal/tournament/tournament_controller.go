package tournament

import (
	"net/http"
	"strconv"

	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TournamentController handles tournament CRUD.
type TournamentController struct {
	repo TournamentRepository
}

// NewTournamentController creates a new tournament controller
func NewTournamentController(repo TournamentRepository) *TournamentController {
	return &TournamentController{repo: repo}
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// CreateTournament godoc
// @Summary Create a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTournamentRequest true "Tournament payload"
// @Success 201 {object} responses.SuccessResponse
// @Router /tournaments [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if req.EndDate.Before(req.StartDate) {
		responses.BadRequest(c, "End date must not be before start date")
		return
	}

	t := &Tournament{
		Name:            req.Name,
		Description:     req.Description,
		Format:          req.Format,
		Venue:           req.Venue,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          StatusUpcoming,
		CreatedByUserID: userID,
	}

	if err := tc.repo.Create(t); err != nil {
		responses.InternalServerError(c, "Failed to create tournament")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Tournament created", t)
}

// ListTournaments godoc
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse
// @Router /tournaments [get]
func (tc *TournamentController) ListTournaments(c *gin.Context) {
	page, pageSize := parsePagination(c)

	tournaments, total, err := tc.repo.List(page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list tournaments")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "", tournaments, total, page, pageSize)
}

// ListMyTournaments godoc
// @Summary List tournaments created by the authenticated organizer
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.PaginatedResponse
// @Router /tournaments/mine [get]
func (tc *TournamentController) ListMyTournaments(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	page, pageSize := parsePagination(c)
	tournaments, total, err := tc.repo.ListByOrganizer(userID, page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list tournaments")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "", tournaments, total, page, pageSize)
}

// GetTournament godoc
// @Summary Get a tournament by ID
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /tournaments/{id} [get]
func (tc *TournamentController) GetTournament(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", t)
}

// UpdateTournament godoc
// @Summary Update a tournament (organizer only)
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Param body body UpdateTournamentRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse
// @Router /tournaments/{id} [put]
func (tc *TournamentController) UpdateTournament(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	if t.CreatedByUserID != userID {
		responses.Forbidden(c, "Only the tournament organizer can update it")
		return
	}

	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Venue != nil {
		t.Venue = *req.Venue
	}
	if req.StartDate != nil {
		t.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = *req.EndDate
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if t.EndDate.Before(t.StartDate) {
		responses.BadRequest(c, "End date must not be before start date")
		return
	}

	if err := tc.repo.Update(t); err != nil {
		responses.InternalServerError(c, "Failed to update tournament")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Tournament updated", t)
}

// DeleteTournament godoc
// @Summary Delete a tournament (organizer only)
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /tournaments/{id} [delete]
func (tc *TournamentController) DeleteTournament(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return
	}

	t, err := tc.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	if t.CreatedByUserID != userID {
		responses.Forbidden(c, "Only the tournament organizer can delete it")
		return
	}

	if err := tc.repo.Delete(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete tournament")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Tournament deleted", nil)
}
