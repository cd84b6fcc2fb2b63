package notify

import "context"

// Watch turns a change channel into a stream of snapshots: it emits one
// snapshot immediately, then reloads and emits again on every change signal.
// The stream ends when ctx is cancelled or stop is called.
func Watch[T any](ctx context.Context, n Notifier, channel string, load func(context.Context) (T, error)) (<-chan T, context.CancelFunc, error) {
	ctx, stop := context.WithCancel(ctx)

	sub, err := n.Subscribe(ctx, channel)
	if err != nil {
		stop()
		return nil, nil, err
	}

	out := make(chan T)
	go func() {
		defer close(out)
		defer sub.Cancel()

		emit := func() bool {
			snapshot, err := load(ctx)
			if err != nil {
				// Transient load failures just skip an emission;
				// the next signal triggers another reload.
				return ctx.Err() == nil
			}
			select {
			case out <- snapshot:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.Signals():
				if !ok {
					return
				}
				if !emit() {
					return
				}
			}
		}
	}()
	return out, stop, nil
}
