package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
	"github.com/emanuelbartolo/BoardGameApp/pkg/redisclient"
)

// RedisNotifier implements Notifier over Redis pub/sub, so change signals
// reach subscribers on every instance.
type RedisNotifier struct {
	client *redisclient.Client
}

// NewRedisNotifier creates a Redis-backed notifier
func NewRedisNotifier(client *redisclient.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// Publish emits a change signal on the channel
func (n *RedisNotifier) Publish(ctx context.Context, channel string) error {
	return n.client.Publish(ctx, channel, "1")
}

// Subscribe starts listening for change signals on the channel
func (n *RedisNotifier) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	pubsub := n.client.Subscribe(ctx, channel)
	// Force the subscription to be established before we return, so a
	// publish right after Subscribe is not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &redisSubscription{
		signals: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(sub.signals)
		msgs := pubsub.Channel()
		for {
			select {
			case <-sub.done:
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				// Coalesce: one pending signal is enough, the
				// subscriber reloads the full snapshot anyway.
				select {
				case sub.signals <- struct{}{}:
				default:
				}
			}
		}
	}()
	sub.cancel = func() {
		close(sub.done)
		if err := pubsub.Close(); err != nil {
			logger.Warn("failed to close pubsub", zap.String("channel", channel), zap.Error(err))
		}
	}
	return sub, nil
}

type redisSubscription struct {
	signals chan struct{}
	done    chan struct{}
	cancel  func()
	once    sync.Once
}

func (s *redisSubscription) Signals() <-chan struct{} { return s.signals }

func (s *redisSubscription) Cancel() {
	s.once.Do(s.cancel)
}
