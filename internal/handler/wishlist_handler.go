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

// WishlistHandler handles personal wishlist requests and the cross-user
// interest summary feeding the shortlist
type WishlistHandler struct {
	wishlists service.WishlistService
	shortlist service.ShortlistService
	groups    service.GroupService
	policy    service.AdminPolicy
	notifier  notify.Notifier
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlists service.WishlistService, shortlist service.ShortlistService, groups service.GroupService, policy service.AdminPolicy, notifier notify.Notifier) *WishlistHandler {
	return &WishlistHandler{
		wishlists: wishlists,
		shortlist: shortlist,
		groups:    groups,
		policy:    policy,
		notifier:  notifier,
	}
}

// Get handles GET /api/v1/me/wishlist
func (h *WishlistHandler) Get(c *gin.Context) {
	wishlist, err := h.wishlists.Get(c.Request.Context(), middleware.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(wishlist))
}

// ToggleFavorite handles POST /api/v1/me/wishlist/:itemID/toggle
func (h *WishlistHandler) ToggleFavorite(c *gin.Context) {
	itemID := c.Param("itemID")
	wishlist, favorite, err := h.wishlists.ToggleFavorite(c.Request.Context(), middleware.Username(c), itemID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToggleFavoriteResponse{
		ItemID:    itemID,
		Favorite:  favorite,
		Favorites: wishlist.Favorites,
	}))
}

// Summary handles GET /api/v1/wishlists/summary?group=<id> (admin only).
// Without the group parameter the summary spans every user; with it, only
// current members of that group count.
func (h *WishlistHandler) Summary(c *gin.Context) {
	if !h.policy.IsAdmin(middleware.Username(c)) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can view the interest summary"))
		return
	}

	scope := service.NoScope
	if groupID := c.Query("group"); groupID != "" {
		scope = h.groups.Scope(groupID)
	}

	summary, err := h.wishlists.ComputeSummary(c.Request.Context(), scope)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(summary))
}

// WatchSummary handles GET /api/v1/wishlists/summary/watch (admin only)
func (h *WishlistHandler) WatchSummary(c *gin.Context) {
	if !h.policy.IsAdmin(middleware.Username(c)) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can view the interest summary"))
		return
	}

	scope := service.NoScope
	if groupID := c.Query("group"); groupID != "" {
		scope = h.groups.Scope(groupID)
	}

	streamSnapshots(c, h.notifier, notify.WishlistsChannel(),
		func(ctx context.Context) ([]domain.WishlistSummaryEntry, error) {
			return h.wishlists.ComputeSummary(ctx, scope)
		})
}

// Promote handles POST /api/v1/groups/:groupID/shortlist/promote (admin
// only): toggles an item's curated presence on the group shortlist from the
// wishlist view
func (h *WishlistHandler) Promote(c *gin.Context) {
	username := middleware.Username(c)
	if !h.policy.IsAdmin(username) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can promote items"))
		return
	}

	var req dto.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	shortlisted, err := h.shortlist.Promote(c.Request.Context(), groupScope(c), req.ItemID, req.Metadata, username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.PromoteResponse{ItemID: req.ItemID, Shortlisted: shortlisted}))
}
