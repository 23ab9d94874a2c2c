package svgaxis

import (
	"context"
	"time"
)

// transitionSlack is added to the animation time before a transition is
// reported done.
const transitionSlack = 100 * time.Millisecond

// Transition tracks the animation started by a render. Renderers give no
// completion signal, so Done is closed on a timer once the configured
// duration and a little slack have passed. It is best effort.
type Transition struct {
	done chan struct{}
}

func newTransition(d time.Duration) *Transition {
	t := &Transition{done: make(chan struct{})}
	time.AfterFunc(d+transitionSlack, func() { close(t.done) })
	return t
}

func (t *Transition) Done() <-chan struct{} { return t.done }

// Wait blocks until the transition is done or ctx ends.
func (t *Transition) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
