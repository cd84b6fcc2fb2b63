package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emanuelbartolo/BoardGameApp/internal/dto"
	"github.com/emanuelbartolo/BoardGameApp/internal/service"
	"github.com/emanuelbartolo/BoardGameApp/pkg/middleware"
	"github.com/emanuelbartolo/BoardGameApp/pkg/response"
)

// GroupHandler handles group and membership requests
type GroupHandler struct {
	groups service.GroupService
	policy service.AdminPolicy
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groups service.GroupService, policy service.AdminPolicy) *GroupHandler {
	return &GroupHandler{groups: groups, policy: policy}
}

// Create handles POST /api/v1/groups (admin only)
func (h *GroupHandler) Create(c *gin.Context) {
	username := middleware.Username(c)
	if !h.policy.IsAdmin(username) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can create groups"))
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), req.Name, username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.NewGroupResponse(group)))
}

// List handles GET /api/v1/groups (admin only)
func (h *GroupHandler) List(c *gin.Context) {
	if !h.policy.IsAdmin(middleware.Username(c)) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can list all groups"))
		return
	}

	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]*dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, dto.NewGroupResponse(group))
	}
	c.JSON(http.StatusOK, response.Success(out))
}

// Delete handles DELETE /api/v1/groups/:groupID (admin only)
func (h *GroupHandler) Delete(c *gin.Context) {
	if !h.policy.IsAdmin(middleware.Username(c)) {
		c.JSON(http.StatusForbidden, response.Forbidden("Only administrators can delete groups"))
		return
	}

	if err := h.groups.DeleteGroup(c.Request.Context(), c.Param("groupID")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// MyGroups handles GET /api/v1/me/groups
func (h *GroupHandler) MyGroups(c *gin.Context) {
	refs, err := h.groups.ResolveMemberships(c.Request.Context(), middleware.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(refs))
}

// Join handles POST /api/v1/groups/join
func (h *GroupHandler) Join(c *gin.Context) {
	var req dto.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	groupID, err := h.groups.Join(c.Request.Context(), req.Identifier, middleware.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.JoinGroupResponse{GroupID: groupID}))
}

// Leave handles POST /api/v1/groups/:groupID/leave
func (h *GroupHandler) Leave(c *gin.Context) {
	if err := h.groups.Leave(c.Request.Context(), c.Param("groupID"), middleware.Username(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"left": true}))
}

// Membership handles GET /api/v1/groups/:groupID/membership. Clients call
// this at session start to validate a locally remembered group before
// re-binding to it.
func (h *GroupHandler) Membership(c *gin.Context) {
	groupID := c.Param("groupID")
	ok, err := h.groups.VerifyMembership(c.Request.Context(), middleware.Username(c), groupID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.MembershipResponse{GroupID: groupID, Member: ok}))
}

// Members handles GET /api/v1/groups/:groupID/members (members only)
func (h *GroupHandler) Members(c *gin.Context) {
	members, err := h.groups.ListMembers(c.Request.Context(), groupScope(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]*dto.MemberResponse, 0, len(members))
	for _, member := range members {
		out = append(out, dto.NewMemberResponse(member))
	}
	c.JSON(http.StatusOK, response.Success(out))
}
