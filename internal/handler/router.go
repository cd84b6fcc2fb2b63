package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/emanuelbartolo/BoardGameApp/internal/service"
	"github.com/emanuelbartolo/BoardGameApp/pkg/middleware"
)

// RouterConfig carries the handlers and cross-cutting settings the router
// needs
type RouterConfig struct {
	Groups     *GroupHandler
	Shortlist  *ShortlistHandler
	Events     *EventHandler
	Polls      *PollHandler
	Wishlists  *WishlistHandler
	Health     *HealthHandler
	GroupSvc   service.GroupService
	JWTSecret  string
	CORSOrigin []string
	Debug      bool
}

// SetupRouter wires all routes
func SetupRouter(cfg *RouterConfig) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORSOrigin))

	r.GET("/health", cfg.Health.Health)

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))

	// Caller-level resources
	me := api.Group("/me")
	{
		me.GET("/groups", cfg.Groups.MyGroups)
		me.GET("/wishlist", cfg.Wishlists.Get)
		me.POST("/wishlist/:itemID/toggle", cfg.Wishlists.ToggleFavorite)
	}

	// Cross-group admin surface
	api.POST("/groups", cfg.Groups.Create)
	api.GET("/groups", cfg.Groups.List)
	api.POST("/groups/join", cfg.Groups.Join)
	api.GET("/wishlists/summary", cfg.Wishlists.Summary)
	api.GET("/wishlists/summary/watch", cfg.Wishlists.WatchSummary)

	// Per-group surface; leave and membership probe don't require current
	// membership
	api.DELETE("/groups/:groupID", cfg.Groups.Delete)
	api.POST("/groups/:groupID/leave", cfg.Groups.Leave)
	api.GET("/groups/:groupID/membership", cfg.Groups.Membership)

	group := api.Group("/groups/:groupID")
	group.Use(RequireMembership(cfg.GroupSvc))
	{
		group.GET("/members", cfg.Groups.Members)

		group.GET("/shortlist", cfg.Shortlist.List)
		group.GET("/shortlist/watch", cfg.Shortlist.Watch)
		group.GET("/shortlist/eligibility", cfg.Shortlist.Eligibility)
		group.POST("/shortlist", cfg.Shortlist.Curate)
		group.POST("/shortlist/promote", cfg.Wishlists.Promote)
		group.DELETE("/shortlist/:itemID", cfg.Shortlist.Decurate)
		group.POST("/shortlist/:itemID/vote", cfg.Shortlist.ToggleVote)

		group.GET("/events", cfg.Events.List)
		group.GET("/events/watch", cfg.Events.Watch)
		group.POST("/events", cfg.Events.Create)
		group.DELETE("/events/:eventID", cfg.Events.Delete)
		group.POST("/events/:eventID/attendance", cfg.Events.SetAttendance)

		group.GET("/polls", cfg.Polls.List)
		group.GET("/polls/watch", cfg.Polls.Watch)
		group.POST("/polls", cfg.Polls.Create)
		group.DELETE("/polls/:pollID", cfg.Polls.Delete)
		group.POST("/polls/:pollID/options/:index/vote", cfg.Polls.ToggleOptionVote)
	}

	return r
}
