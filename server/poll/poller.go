// Package poll runs periodic background fetches and keeps only the freshest result.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Ticker is the subset of *time.Ticker the Poller depends on.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// FetchFunc performs one fetch. seq increases with every call and is meant to
// be handed to Latest.Apply together with the result.
type FetchFunc func(ctx context.Context, seq uint64)

type Poller struct {
	Interval time.Duration
	// Immediate runs one fetch before the first tick.
	Immediate bool
	Fetch     FetchFunc

	newTicker func(time.Duration) Ticker
	seq       atomic.Uint64
}

func New(interval time.Duration, fetch FetchFunc) *Poller {
	return &Poller{
		Interval: interval,
		Fetch:    fetch,
	}
}

// Run blocks until ctx is done. Every tick starts the fetch in its own
// goroutine so a slow backend never delays the next tick. Run waits for
// in-flight fetches before returning.
func (p *Poller) Run(ctx context.Context) {
	var wg sync.WaitGroup
	defer wg.Wait()

	start := func() {
		seq := p.seq.Add(1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Fetch(ctx, seq)
		}()
	}

	if p.Immediate {
		start()
	}

	newTicker := p.newTicker
	if newTicker == nil {
		newTicker = newTimeTicker
	}
	ticker := newTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}
			start()
		}
	}
}
