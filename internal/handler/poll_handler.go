package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/internal/dto"
	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/service"
	"github.com/emanuelbartolo/BoardGameApp/pkg/middleware"
	"github.com/emanuelbartolo/BoardGameApp/pkg/response"
)

// PollHandler handles date-poll requests. Poll deletion is admin-gated here;
// voting is open to every group member with no attendance gate.
type PollHandler struct {
	polls    service.PollService
	policy   service.AdminPolicy
	notifier notify.Notifier
}

// NewPollHandler creates a new poll handler
func NewPollHandler(polls service.PollService, policy service.AdminPolicy, notifier notify.Notifier) *PollHandler {
	return &PollHandler{polls: polls, policy: policy, notifier: notifier}
}

// Create handles POST /api/v1/groups/:groupID/polls
func (h *PollHandler) Create(c *gin.Context) {
	var req dto.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	poll, err := h.polls.CreatePoll(c.Request.Context(), groupScope(c),
		req.Title, req.Dates, middleware.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(poll))
}

// List handles GET /api/v1/groups/:groupID/polls
func (h *PollHandler) List(c *gin.Context) {
	polls, err := h.polls.List(c.Request.Context(), groupScope(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(polls))
}

// Watch handles GET /api/v1/groups/:groupID/polls/watch
func (h *PollHandler) Watch(c *gin.Context) {
	scope := groupScope(c)
	streamSnapshots(c, h.notifier, notify.PollsChannel(scope.GroupID()),
		func(ctx context.Context) ([]*domain.Poll, error) {
			return h.polls.List(ctx, scope)
		})
}

// ToggleOptionVote handles POST /api/v1/groups/:groupID/polls/:pollID/options/:index/vote
func (h *PollHandler) ToggleOptionVote(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Option index must be a number"))
		return
	}

	poll, err := h.polls.ToggleOptionVote(c.Request.Context(), groupScope(c),
		c.Param("pollID"), index, middleware.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(poll))
}

// Delete handles DELETE /api/v1/groups/:groupID/polls/:pollID (admin only)
func (h *PollHandler) Delete(c *gin.Context) {
	if !h.policy.IsAdmin(middleware.Username(c)) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can delete polls"))
		return
	}

	if err := h.polls.DeletePoll(c.Request.Context(), groupScope(c), c.Param("pollID")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}
