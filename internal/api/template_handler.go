package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/toseg1/promethia-v2-sub001/internal/domain"
	"github.com/toseg1/promethia-v2-sub001/internal/plan"
	"github.com/toseg1/promethia-v2-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler holds the plan template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// --- DTOs ---

type SaveTemplateRequest struct {
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Blocks      []plan.Block `json:"blocks" binding:"required"`
}

// TemplateResponse returns template metadata plus, on single loads, the
// builder blocks decoded from the stored record.
type TemplateResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Record      *plan.Record `json:"record,omitempty"`
	Blocks      []plan.Block `json:"blocks,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// MapTemplateToResponse converts a domain.PlanTemplate to a TemplateResponse DTO.
func MapTemplateToResponse(tpl *domain.PlanTemplate, blocks []plan.Block) TemplateResponse {
	if tpl == nil {
		return TemplateResponse{}
	}
	record := tpl.Record
	return TemplateResponse{
		ID:          tpl.ID.Hex(),
		Name:        tpl.Name,
		Description: tpl.Description,
		Record:      &record,
		Blocks:      blocks,
		CreatedAt:   tpl.CreatedAt,
		UpdatedAt:   tpl.UpdatedAt,
	}
}

// --- Handler Methods ---

// SaveTemplate godoc
// @Summary Save a plan template
// @Description Encodes the submitted builder blocks and stores them as a reusable template.
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body SaveTemplateRequest true "Template details"
// @Success 201 {object} TemplateResponse "Template created"
// @Failure 400 {object} gin.H "Invalid input or empty plan"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /coach/templates [post]
func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	coachID, ok := actorIDFromContext(c)
	if !ok {
		return
	}

	tpl, err := h.templateService.SaveTemplate(c.Request.Context(), coachID, req.Name, req.Description, req.Blocks)
	if err != nil {
		if errors.Is(err, service.ErrTemplateEmpty) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save template.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapTemplateToResponse(tpl, nil))
}

// ListTemplates godoc
// @Summary List the coach's plan templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TemplateResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /coach/templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	coachID, ok := actorIDFromContext(c)
	if !ok {
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve templates.")
		return
	}

	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = MapTemplateToResponse(&templates[i], nil)
	}
	c.JSON(http.StatusOK, responses)
}

// LoadTemplate godoc
// @Summary Load a plan template into the builder
// @Description Returns the template with its record decoded into builder blocks with fresh IDs.
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} TemplateResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Template not found"
// @Router /coach/templates/{id} [get]
func (h *TemplateHandler) LoadTemplate(c *gin.Context) {
	coachID, ok := actorIDFromContext(c)
	if !ok {
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	tpl, blocks, err := h.templateService.LoadTemplate(c.Request.Context(), coachID, templateID)
	if err != nil {
		mapTemplateServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapTemplateToResponse(tpl, blocks))
}

// DeleteTemplate godoc
// @Summary Delete a plan template
// @Tags Templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204 "Template deleted"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Template not found"
// @Router /coach/templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	coachID, ok := actorIDFromContext(c)
	if !ok {
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), coachID, templateID); err != nil {
		mapTemplateServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func mapTemplateServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process template request.")
	}
}
