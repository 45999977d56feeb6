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

// EventHandler holds the event service dependency.
type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// --- DTOs ---

// CreateEventRequest is the payload for scheduling a calendar event. Blocks
// are only meaningful for training events; other kinds ignore them.
type CreateEventRequest struct {
	Kind      plan.EventKind `json:"kind" binding:"required"`
	Title     string         `json:"title" binding:"required"`
	Date      string         `json:"date" binding:"required"`
	Time      string         `json:"time"`
	Sport     string         `json:"sport"`
	Location  string         `json:"location"`
	Distance  string         `json:"distance"`
	Notes     string         `json:"notes"`
	AthleteID string         `json:"athleteId"` // Required when a coach schedules for an athlete
	PlanName  string         `json:"planName"`
	Blocks    []plan.Block   `json:"blocks"`
}

// UpdateEventRequest is the sparse update payload: blank fields leave the
// stored values unchanged.
type UpdateEventRequest struct {
	Title    string       `json:"title"`
	Date     string       `json:"date"`
	Time     string       `json:"time"`
	Sport    string       `json:"sport"`
	Location string       `json:"location"`
	Distance string       `json:"distance"`
	Notes    string       `json:"notes"`
	PlanName string       `json:"planName"`
	Blocks   []plan.Block `json:"blocks"`
}

// EventResponse is the DTO for returning event details. Blocks carries the
// builder tree decoded from the stored plan record on single-event reads.
type EventResponse struct {
	ID            string         `json:"id"`
	CoachID       string         `json:"coachId,omitempty"`
	AthleteID     string         `json:"athleteId"`
	Kind          plan.EventKind `json:"kind"`
	Title         string         `json:"title"`
	Date          string         `json:"date,omitempty"`
	Sport         string         `json:"sport,omitempty"`
	Location      string         `json:"location,omitempty"`
	Distance      string         `json:"distance,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	TrainingData  *plan.Record   `json:"training_data,omitempty"`
	Blocks        []plan.Block   `json:"blocks,omitempty"`
	HasAttachment bool           `json:"hasAttachment"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type ConfirmAttachmentRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type AttachmentUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// MapEventToResponse converts a domain.Event to an EventResponse DTO.
func MapEventToResponse(e *domain.Event, blocks []plan.Block) EventResponse {
	if e == nil {
		return EventResponse{}
	}
	resp := EventResponse{
		ID:            e.ID.Hex(),
		AthleteID:     e.AthleteID.Hex(),
		Kind:          e.Kind,
		Title:         e.Title,
		Date:          e.Date,
		Sport:         e.Sport,
		Location:      e.Location,
		Distance:      e.Distance,
		Notes:         e.Notes,
		TrainingData:  e.TrainingData,
		Blocks:        blocks,
		HasAttachment: e.AttachmentKey != "",
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.CoachID != primitive.NilObjectID {
		resp.CoachID = e.CoachID.Hex()
	}
	return resp
}

// --- Handler Methods ---

// CreateEvent godoc
// @Summary Schedule a calendar event
// @Description Creates a training, race, or custom event. Training events carry the encoded plan record built from the submitted blocks.
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event details"
// @Success 201 {object} EventResponse "Event created"
// @Failure 400 {object} gin.H "Invalid input (validation error or unsupported kind)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (athlete not managed by this coach)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actorID, ok := actorIDFromContext(c)
	if !ok {
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), actorID, plan.EventInput{
		Kind:      req.Kind,
		Title:     req.Title,
		Date:      req.Date,
		Time:      req.Time,
		Sport:     req.Sport,
		Location:  req.Location,
		Distance:  req.Distance,
		Notes:     req.Notes,
		AthleteID: req.AthleteID,
		PlanName:  req.PlanName,
		Blocks:    req.Blocks,
	})
	if err != nil {
		mapEventServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapEventToResponse(event, nil))
}

// GetEvent godoc
// @Summary Get a single event
// @Description Retrieves an event with the builder blocks decoded from its stored plan record.
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Event not found"
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	actorID, ok := actorIDFromContext(c)
	if !ok {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format.")
		return
	}

	event, blocks, err := h.eventService.GetEvent(c.Request.Context(), actorID, eventID)
	if err != nil {
		mapEventServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapEventToResponse(event, blocks))
}

// ListEvents godoc
// @Summary List calendar events
// @Description Lists an athlete's events over an optional date range. Coaches pass athleteId; athletes get their own calendar.
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param athleteId query string false "Athlete ID (coaches only)"
// @Param from query string false "Range start (inclusive)"
// @Param to query string false "Range end (exclusive)"
// @Success 200 {array} EventResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden"
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	actorID, ok := actorIDFromContext(c)
	if !ok {
		return
	}

	athleteID := primitive.NilObjectID
	if hex := c.Query("athleteId"); hex != "" {
		var err error
		athleteID, err = primitive.ObjectIDFromHex(hex)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid athlete ID format.")
			return
		}
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), actorID, athleteID, c.Query("from"), c.Query("to"))
	if err != nil {
		mapEventServiceError(c, err)
		return
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = MapEventToResponse(&events[i], nil)
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies a sparse update; blank fields are left unchanged. Submitted blocks replace the stored plan record whole.
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} EventResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Event not found"
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actorID, ok := actorIDFromContext(c)
	if !ok {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format.")
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), actorID, eventID, plan.EventInput{
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Sport:    req.Sport,
		Location: req.Location,
		Distance: req.Distance,
		Notes:    req.Notes,
		PlanName: req.PlanName,
		Blocks:   req.Blocks,
	})
	if err != nil {
		mapEventServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapEventToResponse(event, nil))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags Events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204 "Event deleted"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Event not found"
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	actorID, ok := actorIDFromContext(c)
	if !ok {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format.")
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), actorID, eventID); err != nil {
		mapEventServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestAttachmentUpload godoc
// @Summary Request a presigned upload URL for an event attachment
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body AttachmentUploadRequest true "Content type of the file"
// @Success 200 {object} service.UploadURLResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Event not found"
// @Router /events/{id}/attachment/upload-url [post]
func (h *EventHandler) RequestAttachmentUpload(c *gin.Context) {
	var req AttachmentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actorID, ok := actorIDFromContext(c)
	if !ok {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format.")
		return
	}

	resp, err := h.eventService.RequestAttachmentUpload(c.Request.Context(), actorID, eventID, req.ContentType)
	if err != nil {
		mapEventServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmAttachment godoc
// @Summary Confirm a completed attachment upload
// @Tags Events
// @Accept json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body ConfirmAttachmentRequest true "Object key returned by the upload-url endpoint"
// @Success 204 "Attachment recorded"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Event not found"
// @Router /events/{id}/attachment/confirm [post]
func (h *EventHandler) ConfirmAttachment(c *gin.Context) {
	var req ConfirmAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actorID, ok := actorIDFromContext(c)
	if !ok {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format.")
		return
	}

	if err := h.eventService.ConfirmAttachment(c.Request.Context(), actorID, eventID, req.ObjectKey); err != nil {
		mapEventServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAttachmentURL godoc
// @Summary Get a presigned download URL for an event attachment
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} gin.H "downloadUrl"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Event or attachment not found"
// @Router /events/{id}/attachment [get]
func (h *EventHandler) GetAttachmentURL(c *gin.Context) {
	actorID, ok := actorIDFromContext(c)
	if !ok {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid event ID format.")
		return
	}

	url, err := h.eventService.GetAttachmentDownloadURL(c.Request.Context(), actorID, eventID)
	if err != nil {
		mapEventServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// --- Helpers ---

// actorIDFromContext reads the authenticated user's ObjectID, aborting with
// the appropriate status on failure.
func actorIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// mapEventServiceError translates event service errors to HTTP statuses.
func mapEventServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrNoAttachment):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAthleteNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEventAccessDenied),
		errors.Is(err, service.ErrAthleteNotManaged),
		errors.Is(err, service.ErrAthleteNotRole):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, plan.ErrUnsupportedEventKind):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process event request.")
	}
}
