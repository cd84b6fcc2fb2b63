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

// ShortlistHandler handles shortlist requests. Curate and decurate are
// admin-gated here, not in the engine; the attendance gate is likewise
// checked here before a new vote goes in.
type ShortlistHandler struct {
	shortlist  service.ShortlistService
	attendance service.AttendanceService
	policy     service.AdminPolicy
	notifier   notify.Notifier
}

// NewShortlistHandler creates a new shortlist handler
func NewShortlistHandler(shortlist service.ShortlistService, attendance service.AttendanceService, policy service.AdminPolicy, notifier notify.Notifier) *ShortlistHandler {
	return &ShortlistHandler{
		shortlist:  shortlist,
		attendance: attendance,
		policy:     policy,
		notifier:   notifier,
	}
}

// List handles GET /api/v1/groups/:groupID/shortlist
func (h *ShortlistHandler) List(c *gin.Context) {
	ranked, err := h.shortlist.List(c.Request.Context(), groupScope(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(ranked))
}

// Watch handles GET /api/v1/groups/:groupID/shortlist/watch, streaming a
// ranked snapshot on every change
func (h *ShortlistHandler) Watch(c *gin.Context) {
	scope := groupScope(c)
	streamSnapshots(c, h.notifier, notify.ShortlistChannel(scope.GroupID()),
		func(ctx context.Context) ([]domain.RankedEntry, error) {
			return h.shortlist.List(ctx, scope)
		})
}

// Curate handles POST /api/v1/groups/:groupID/shortlist (admin only)
func (h *ShortlistHandler) Curate(c *gin.Context) {
	username := middleware.Username(c)
	if !h.policy.IsAdmin(username) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can curate the shortlist"))
		return
	}

	var req dto.CurateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	entry, err := h.shortlist.Curate(c.Request.Context(), groupScope(c), req.ItemID, req.Metadata, username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(entry))
}

// Decurate handles DELETE /api/v1/groups/:groupID/shortlist/:itemID
// (admin only)
func (h *ShortlistHandler) Decurate(c *gin.Context) {
	if !h.policy.IsAdmin(middleware.Username(c)) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can remove shortlist entries"))
		return
	}

	if err := h.shortlist.Decurate(c.Request.Context(), groupScope(c), c.Param("itemID")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// ToggleVote handles POST /api/v1/groups/:groupID/shortlist/:itemID/vote.
// Adding a vote requires attendance on the group's next event; removing one
// never does. The check happens here, just before the atomic toggle; the
// small window against concurrent attendance changes is accepted.
func (h *ShortlistHandler) ToggleVote(c *gin.Context) {
	var req dto.ToggleVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	scope := groupScope(c)
	itemID := c.Param("itemID")
	username := middleware.Username(c)
	ctx := c.Request.Context()

	holdsVote := false
	if entry, err := h.shortlist.Get(ctx, scope, itemID); err == nil {
		holdsVote = entry.HasVoter(username)
	}
	if !holdsVote {
		canVote, err := h.attendance.CanCastNewVote(ctx, scope, username)
		if err != nil {
			writeError(c, err)
			return
		}
		if !canVote {
			c.JSON(http.StatusForbidden, response.Forbidden("Attend the next game night to cast new votes"))
			return
		}
	}

	entry, voted, err := h.shortlist.ToggleVote(ctx, scope, itemID, req.Metadata, username)
	if err != nil {
		writeError(c, err)
		return
	}

	out := dto.ToggleVoteResponse{ItemID: itemID, Voted: voted, Removed: entry == nil}
	if entry != nil {
		out.Voters = entry.Voters
	}
	c.JSON(http.StatusOK, response.Success(out))
}

// Eligibility handles GET /api/v1/groups/:groupID/shortlist/eligibility,
// letting clients grey out the vote button up front
func (h *ShortlistHandler) Eligibility(c *gin.Context) {
	scope := groupScope(c)
	ctx := c.Request.Context()

	canVote, err := h.attendance.CanCastNewVote(ctx, scope, middleware.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := dto.VoteEligibilityResponse{CanVote: canVote}
	if next, err := h.attendance.NextEvent(ctx, scope); err == nil && next != nil {
		out.NextEventID = next.ID
	}
	c.JSON(http.StatusOK, response.Success(out))
}
