package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/dto"
	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/service"
	"github.com/emanuelbartolo/BoardGameApp/pkg/middleware"
	"github.com/emanuelbartolo/BoardGameApp/pkg/response"
)

// EventHandler handles game-night event requests
type EventHandler struct {
	events   service.EventService
	notifier notify.Notifier
}

// NewEventHandler creates a new event handler
func NewEventHandler(events service.EventService, notifier notify.Notifier) *EventHandler {
	return &EventHandler{events: events, notifier: notifier}
}

// Create handles POST /api/v1/groups/:groupID/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), groupScope(c),
		req.Title, req.Date, req.Time, req.Location, middleware.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(event))
}

// List handles GET /api/v1/groups/:groupID/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context(), groupScope(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(events))
}

// Watch handles GET /api/v1/groups/:groupID/events/watch
func (h *EventHandler) Watch(c *gin.Context) {
	scope := groupScope(c)
	streamSnapshots(c, h.notifier, notify.EventsChannel(scope.GroupID()),
		func(ctx context.Context) ([]*domain.Event, error) {
			return h.events.ListEvents(ctx, scope)
		})
}

// Delete handles DELETE /api/v1/groups/:groupID/events/:eventID
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.DeleteEvent(c.Request.Context(), groupScope(c), c.Param("eventID")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// SetAttendance handles POST /api/v1/groups/:groupID/events/:eventID/attendance
func (h *EventHandler) SetAttendance(c *gin.Context) {
	var req dto.SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	event, err := h.events.SetAttendance(c.Request.Context(), groupScope(c),
		c.Param("eventID"), middleware.Username(c), *req.Attending)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(event))
}
