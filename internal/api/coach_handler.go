package api

import (
	"errors"
	"net/http"

	"github.com/toseg1/promethia-v2-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// CoachHandler holds the coach roster service dependency.
type CoachHandler struct {
	coachService service.CoachService
}

func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

type AddAthleteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AddAthlete godoc
// @Summary Add an athlete to the coach's roster
// @Description Links an existing athlete account to the authenticated coach by email.
// @Tags Coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddAthleteRequest true "Athlete's email"
// @Success 200 {object} UserResponse "Athlete linked"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "No athlete with this email"
// @Failure 409 {object} gin.H "Athlete already managed by another coach"
// @Router /coach/athletes [post]
func (h *CoachHandler) AddAthlete(c *gin.Context) {
	var req AddAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	coachID, ok := actorIDFromContext(c)
	if !ok {
		return
	}

	athlete, err := h.coachService.AddAthleteByEmail(c.Request.Context(), coachID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRosterAthleteNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRosterNotAnAthlete):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRosterAlreadyCoached):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add athlete.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(athlete))
}

// ListAthletes godoc
// @Summary List the coach's athletes
// @Tags Coach
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /coach/athletes [get]
func (h *CoachHandler) ListAthletes(c *gin.Context) {
	coachID, ok := actorIDFromContext(c)
	if !ok {
		return
	}

	athletes, err := h.coachService.ListAthletes(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve athletes.")
		return
	}

	c.JSON(http.StatusOK, MapUsersToResponse(athletes))
}
