package handler

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emanuelbartolo/BoardGameApp/internal/notify"
)

const streamHeartbeat = 15 * time.Second

// streamSnapshots serves a collection as a server-sent-event stream: one
// snapshot immediately, then a fresh snapshot on every change signal, until
// the client disconnects. The subscription is torn down with the request.
func streamSnapshots[T any](c *gin.Context, n notify.Notifier, channel string, load func(context.Context) (T, error)) {
	snapshots, stop, err := notify.Watch(c.Request.Context(), n, channel, load)
	if err != nil {
		writeError(c, err)
		return
	}
	defer stop()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(streamHeartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snapshot)
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
		}
		return true
	})
}
