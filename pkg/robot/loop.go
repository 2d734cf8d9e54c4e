package robot

import (
	"context"
	"time"

	"github.com/JebManMan/MeBot/common/types"
)

// Loop ticks a Robot at a fixed interval on its own goroutine. Other
// goroutines reach the robot only through RequestMode and Do.
type Loop struct {
	robot    *Robot
	interval time.Duration

	modeReq chan int
	calls   chan func(*Robot)
	done    chan struct{}

	// ModeChanged, if set, is called on the loop goroutine after a
	// requested mode was applied.
	ModeChanged func(from, to int)
}

func NewLoop(r *Robot, interval time.Duration) *Loop {
	return &Loop{
		robot:    r,
		interval: interval,
		modeReq:  make(chan int),
		calls:    make(chan func(*Robot)),
		done:     make(chan struct{}),
	}
}

// Run blocks until ctx is done, then halts the motors.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer func() {
		ticker.Stop()
		if err := l.robot.Halt(); err != nil {
			logger.Errorf("halting robot: %s", err)
		}
		close(l.done)
	}()

	logger.Infof("control loop started, interval %s", l.interval)
	for {
		select {
		case <-ctx.Done():
			logger.Infof("control loop stopped: %s", ctx.Err())
			return
		case id := <-l.modeReq:
			from := l.robot.ActiveMode()
			l.robot.SetMode(id)
			if l.ModeChanged != nil {
				l.ModeChanged(from, id)
			}
		case fn := <-l.calls:
			fn(l.robot)
		case <-ticker.C:
			l.robot.Tick()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// RequestMode hands id to the loop. It returns once the loop has accepted
// the request; the mode runs from the next tick.
func (l *Loop) RequestMode(ctx context.Context, id int) error {
	select {
	case l.modeReq <- id:
		return nil
	case <-l.done:
		return types.ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(*Robot)) error {
	finished := make(chan struct{})
	wrapped := func(r *Robot) {
		defer close(finished)
		fn(r)
	}
	select {
	case l.calls <- wrapped:
	case <-l.done:
		return types.ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}
