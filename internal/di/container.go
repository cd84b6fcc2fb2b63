// Package di wires repositories, services and handlers together.
package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emanuelbartolo/BoardGameApp/internal/handler"
	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
	"github.com/emanuelbartolo/BoardGameApp/internal/repository"
	"github.com/emanuelbartolo/BoardGameApp/internal/service"
	"github.com/emanuelbartolo/BoardGameApp/pkg/config"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
	"github.com/emanuelbartolo/BoardGameApp/pkg/redisclient"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	DB       *database.PostgresDB
	Redis    *redisclient.Client
	Notifier notify.Notifier

	GroupRepo     repository.GroupRepository
	ShortlistRepo repository.ShortlistRepository
	EventRepo     repository.EventRepository
	PollRepo      repository.PollRepository
	WishlistRepo  repository.WishlistRepository

	Policy            service.AdminPolicy
	GroupService      service.GroupService
	AttendanceService service.AttendanceService
	ShortlistService  service.ShortlistService
	EventService      service.EventService
	PollService       service.PollService
	WishlistService   service.WishlistService

	GroupHandler     *handler.GroupHandler
	ShortlistHandler *handler.ShortlistHandler
	EventHandler     *handler.EventHandler
	PollHandler      *handler.PollHandler
	WishlistHandler  *handler.WishlistHandler
	HealthHandler    *handler.HealthHandler
}

// NewContainer builds the full dependency graph. Redis is optional: when it
// is unreachable the service degrades to the in-process notifier, so change
// signals only reach subscribers on this instance.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		MaxRetries:      cfg.Database.TxMaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	c.DB = db

	redis, err := redisclient.New(ctx, &redisclient.Config{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-process notifications", zap.Error(err))
		c.Notifier = notify.NewMemoryNotifier()
	} else {
		c.Redis = redis
		c.Notifier = notify.NewRedisNotifier(redis)
	}

	c.GroupRepo = repository.NewPostgresGroupRepository(db)
	c.ShortlistRepo = repository.NewPostgresShortlistRepository(db)
	c.EventRepo = repository.NewPostgresEventRepository(db)
	c.PollRepo = repository.NewPostgresPollRepository(db)
	c.WishlistRepo = repository.NewPostgresWishlistRepository(db)

	c.Policy = service.NewStaticAdminPolicy(cfg.Auth.AdminUsers)
	c.GroupService = service.NewGroupService(c.GroupRepo)
	c.AttendanceService = service.NewAttendanceService(c.EventRepo)
	c.ShortlistService = service.NewShortlistService(c.ShortlistRepo, c.Notifier)
	c.EventService = service.NewEventService(c.EventRepo, c.Notifier)
	c.PollService = service.NewPollService(c.PollRepo, c.Notifier)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.GroupRepo, c.Notifier)

	c.GroupHandler = handler.NewGroupHandler(c.GroupService, c.Policy)
	c.ShortlistHandler = handler.NewShortlistHandler(c.ShortlistService, c.AttendanceService, c.Policy, c.Notifier)
	c.EventHandler = handler.NewEventHandler(c.EventService, c.Notifier)
	c.PollHandler = handler.NewPollHandler(c.PollService, c.Policy, c.Notifier)
	c.WishlistHandler = handler.NewWishlistHandler(c.WishlistService, c.ShortlistService, c.GroupService, c.Policy, c.Notifier)
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis, cfg.App.Version)

	return c, nil
}

// Close releases all held resources
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
