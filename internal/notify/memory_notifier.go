package notify

import (
	"context"
	"sync"
)

// MemoryNotifier implements Notifier in-process. Used in tests and as the
// fallback when Redis is not configured; signals then only reach subscribers
// on the same instance.
type MemoryNotifier struct {
	mu   sync.Mutex
	subs map[string]map[*memorySubscription]struct{}
}

// NewMemoryNotifier creates an in-process notifier
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{
		subs: make(map[string]map[*memorySubscription]struct{}),
	}
}

// Publish emits a change signal on the channel
func (n *MemoryNotifier) Publish(ctx context.Context, channel string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for sub := range n.subs[channel] {
		select {
		case sub.signals <- struct{}{}:
		default:
		}
	}
	return nil
}

// Subscribe starts listening for change signals on the channel
func (n *MemoryNotifier) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	sub := &memorySubscription{
		notifier: n,
		channel:  channel,
		signals:  make(chan struct{}, 1),
	}
	if n.subs[channel] == nil {
		n.subs[channel] = make(map[*memorySubscription]struct{})
	}
	n.subs[channel][sub] = struct{}{}
	return sub, nil
}

func (n *MemoryNotifier) remove(sub *memorySubscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if set, ok := n.subs[sub.channel]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.signals)
		}
	}
}

type memorySubscription struct {
	notifier *MemoryNotifier
	channel  string
	signals  chan struct{}
}

func (s *memorySubscription) Signals() <-chan struct{} { return s.signals }

func (s *memorySubscription) Cancel() { s.notifier.remove(s) }
