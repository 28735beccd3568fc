package contactform

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type registryEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// Registry keeps one Controller per form instance id.
type Registry struct {
	newController func() *Controller
	ttl           time.Duration
	now           func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

func NewRegistry(newController func() *Controller, ttl time.Duration) *Registry {
	return &Registry{
		newController: newController,
		ttl:           ttl,
		now:           time.Now,
		entries:       map[string]*registryEntry{},
	}
}

// Get returns the controller for id, creating it on first use.
func (r *Registry) Get(id string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		e = &registryEntry{controller: r.newController()}
		r.entries[id] = e
	}
	e.lastSeen = r.now()
	return e.controller
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops controllers unused for longer than the ttl. A controller with a
// submission in flight is kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.After(cutoff) || e.controller.State() == Submitting {
			continue
		}
		e.controller.Close()
		delete(r.entries, id)
		removed++
	}
	return removed
}

func (r *Registry) StartSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					logrus.Debugf("Evicted %d idle contact forms", n)
				}
			}
		}
	}()
}
