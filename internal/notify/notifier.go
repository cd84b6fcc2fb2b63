// Package notify carries change signals between writers and live
// subscriptions. Signals are fire-and-forget: they say "this collection
// changed", subscribers reload the snapshot themselves.
package notify

import "context"

// Notifier publishes and subscribes to per-collection change signals
type Notifier interface {
	// Publish emits a change signal on the channel
	Publish(ctx context.Context, channel string) error
	// Subscribe starts listening for change signals on the channel.
	// Cancel must be called when done.
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Subscription is one listener's stream of change signals
type Subscription interface {
	// Signals yields one value per change notification. The channel is
	// closed after Cancel or when the backing stream ends.
	Signals() <-chan struct{}
	// Cancel stops the subscription and releases its resources
	Cancel()
}

// Channel names. One channel per group per collection; wishlists are
// group-independent and share a single channel.

// ShortlistChannel is the change channel for a group's shortlist
func ShortlistChannel(groupID string) string {
	return "group:" + groupID + ":shortlist"
}

// EventsChannel is the change channel for a group's events
func EventsChannel(groupID string) string {
	return "group:" + groupID + ":events"
}

// PollsChannel is the change channel for a group's polls
func PollsChannel(groupID string) string {
	return "group:" + groupID + ":polls"
}

// WishlistsChannel is the change channel for all personal wishlists
func WishlistsChannel() string {
	return "wishlists"
}
