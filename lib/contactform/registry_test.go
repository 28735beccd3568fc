package contactform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_GetReturnsSameController(t *testing.T) {
	r := NewRegistry(func() *Controller { return New(&fakeSubmitter{}) }, time.Hour)

	a := r.Get("a")
	assert.Same(t, a, r.Get("a"))
	assert.NotSame(t, a, r.Get("b"))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(func() *Controller { return New(&fakeSubmitter{}) }, time.Hour)
	r.now = func() time.Time { return now }

	r.Get("old")
	now = now.Add(50 * time.Minute)
	r.Get("fresh")
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	fresh := r.Get("fresh")
	assert.NotNil(t, fresh)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SweepKeepsSubmitting(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sub := &fakeSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	r := NewRegistry(func() *Controller { return New(sub) }, time.Minute)
	r.now = func() time.Time { return now }

	c := r.Get("busy")
	done := make(chan struct{})
	go func() {
		_ = c.Submit(t.Context())
		close(done)
	}()
	<-sub.started

	now = now.Add(time.Hour)
	assert.Equal(t, 0, r.Sweep())

	close(sub.release)
	<-done
	assert.Equal(t, 1, r.Sweep())
}
