package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emanuelbartolo/BoardGameApp/internal/service"
	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
	"github.com/emanuelbartolo/BoardGameApp/pkg/middleware"
	"github.com/emanuelbartolo/BoardGameApp/pkg/response"
)

const contextKeyScope = "group_scope"

// RequireMembership guards group-scoped routes: the caller must be a member
// of the :groupID group. On success the bound scope is stored in the gin
// context for the downstream handler.
func RequireMembership(groups service.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Param("groupID")
		if groupID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.BadRequest("Group ID is required"))
			return
		}

		username := middleware.Username(c)
		ok, err := groups.VerifyMembership(c.Request.Context(), username, groupID)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("Not a member of this group"))
			return
		}

		c.Set(contextKeyScope, groups.Scope(groupID))
		ctx := context.WithValue(c.Request.Context(), logger.GroupIDKey, groupID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// groupScope returns the scope bound by RequireMembership
func groupScope(c *gin.Context) service.GroupScope {
	if v, ok := c.Get(contextKeyScope); ok {
		if scope, ok := v.(service.GroupScope); ok {
			return scope
		}
	}
	return service.NoScope
}
