// Package sync drives periodic work on the Fyne UI goroutine.
package sync

import (
	gosync "sync"
	"time"

	"fyne.io/fyne/v2"
)

const DefaultInterval = 100 * time.Millisecond

// Coordinator calls tick on the UI goroutine at a fixed interval until
// stopped. Ticks never overlap: a tick that is still queued when the next one
// is due is not queued again.
type Coordinator struct {
	interval time.Duration
	tick     func()
	schedule func(func())

	queued   chan struct{}
	done     chan struct{}
	stopOnce gosync.Once
}

func NewCoordinator(interval time.Duration, tick func()) *Coordinator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Coordinator{
		interval: interval,
		tick:     tick,
		schedule: fyne.Do,
		queued:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (c *Coordinator) Run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			select {
			case c.queued <- struct{}{}:
			default:
				// Previous tick has not run yet.
				continue
			}
			c.schedule(func() {
				<-c.queued
				select {
				case <-c.done:
					return
				default:
				}
				c.tick()
			})
		case <-c.done:
			return
		}
	}
}

// Shutdown stops the ticker. Safe to call more than once.
func (c *Coordinator) Shutdown() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}
