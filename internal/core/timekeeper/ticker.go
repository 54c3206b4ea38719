package timekeeper

import (
	"sync"
	"time"
)

// TickerSource arms time.Ticker-backed goroutines.
type TickerSource struct{}

// NewTickerSource returns the wall-clock tick source.
func NewTickerSource() TickerSource {
	return TickerSource{}
}

// Arm starts a goroutine calling fn every interval until disarmed.
func (TickerSource) Arm(interval time.Duration, fn func()) Disarmer {
	handle := &tickerHandle{stopCh: make(chan struct{})}
	go handle.run(interval, fn)
	return handle
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
}

func (handle *tickerHandle) Disarm() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}

func (handle *tickerHandle) run(interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-handle.stopCh:
			return
		case <-ticker.C:
			select {
			case <-handle.stopCh:
				return
			default:
			}
			fn()
		}
	}
}
