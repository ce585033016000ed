package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat periodically emits heartbeat events so a stuck compilation or
// a long VM run is visible in the trace. Each beat carries the current
// Progress summary in its detail.
type Heartbeat struct {
	tracer   Tracer
	progress *Progress
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// StartHeartbeat starts a heartbeat goroutine. It returns nil when tracing
// is disabled or interval is not positive; Stop is safe on nil. progress may
// be nil.
func StartHeartbeat(tracer Tracer, interval time.Duration, progress *Progress) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		progress: progress,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	n := 0
	for {
		select {
		case <-ticker.C:
			n++
			h.beat(n)
		case <-h.stopCh:
			return
		}
	}
}

func (h *Heartbeat) beat(n int) {
	detail := fmt.Sprintf("#%d", n)
	if sum := h.progress.Summary(); sum != "" {
		detail += " " + sum
	}
	h.tracer.Emit(&Event{
		Time:   time.Now(),
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    goroutineID(),
		Name:   "heartbeat",
		Detail: detail,
	})
}

// Stop stops the heartbeat goroutine and waits for it to finish.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stopCh) })
	h.wg.Wait()
}
