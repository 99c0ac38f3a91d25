package worker

import (
	"sync"
	"time"
)

// Autosave runs a pending save per key after a quiet period. Arming a key
// again replaces its pending save and restarts the delay.
type Autosave struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*pendiente
	seq     uint64
	stopped bool
}

type pendiente struct {
	timer *time.Timer
	gen   uint64
}

func NewAutosave(delay time.Duration) *Autosave {
	return &Autosave{delay: delay, timers: make(map[string]*pendiente)}
}

func (a *Autosave) Delay() time.Duration { return a.delay }

// Arm schedules fn for key. Any earlier pending fn for key is dropped.
func (a *Autosave) Arm(key string, fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}

	if p, ok := a.timers[key]; ok {
		p.timer.Stop()
	}
	a.seq++
	gen := a.seq
	p := &pendiente{gen: gen}
	p.timer = time.AfterFunc(a.delay, func() {
		a.mu.Lock()
		cur, ok := a.timers[key]
		if !ok || cur.gen != gen || a.stopped {
			a.mu.Unlock()
			return
		}
		delete(a.timers, key)
		a.mu.Unlock()
		fn()
	})
	a.timers[key] = p
}

// Disarm cancels the pending save of key and reports whether one existed.
func (a *Autosave) Disarm(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.timers[key]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(a.timers, key)
	return true
}

func (a *Autosave) Pending(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.timers[key]
	return ok
}

// Stop cancels everything pending; later Arm calls are ignored.
func (a *Autosave) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	for k, p := range a.timers {
		p.timer.Stop()
		delete(a.timers, k)
	}
}
