package main

import (
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

var errStopped = errors.New("clock is stopped")

// Ticker drives the hands of every live face from one scheduler. Each face
// gets its own job at its own interval.
type Ticker struct {
	mu        sync.Mutex
	scheduler *gocron.Scheduler
}

func newTicker() *Ticker {
	s := gocron.NewScheduler(time.UTC)
	s.StartAsync()
	return &Ticker{scheduler: s}
}

// Every() runs fn now and then every interval until the job is cancelled.
// A slow run is never overlapped by the next one.
func (t *Ticker) Every(interval time.Duration, fn func()) (*gocron.Job, error) {
	if interval <= 0 {
		return nil, errStopped
	}
	// the scheduler builds jobs through a shared chain
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scheduler.Every(interval).SingletonMode().Do(fn)
}

// Cancel() removes job from the scheduler, nil jobs are ignored
func (t *Ticker) Cancel(job *gocron.Job) {
	if job == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scheduler.RemoveByReference(job)
}

// Len() returns the number of running jobs
func (t *Ticker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scheduler.Len()
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scheduler.Stop()
}
