package scheduler

import (
	"sync"
	"time"

	"atomicgo.dev/schedule"
)

type entry struct {
	task *schedule.Task
}

// scheduler implements Scheduler on top of atomicgo schedule tasks
type scheduler struct {
	mu    sync.Mutex
	tasks map[string]*entry
}

// New creates an empty scheduler
func New() *scheduler {
	return &scheduler{
		tasks: make(map[string]*entry),
	}
}

// Every registers a recurring timer under key
func (s *scheduler) Every(key string, interval time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[key]; ok {
		return false
	}

	e := &entry{}
	// The task can't fire before e.task is assigned: its first tick needs
	// s.mu, which we hold until we return.
	e.task = schedule.Every(interval, func() bool {
		if !s.isCurrent(key, e) {
			return true
		}
		fn()
		return true
	})
	s.tasks[key] = e

	return true
}

// After registers a one-shot timer under key, replacing any previous one
func (s *scheduler) After(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(key)

	e := &entry{}
	// One-shots ride on a recurring task that removes itself on first fire,
	// so every task is stopped exactly once and only by us.
	e.task = schedule.Every(delay, func() bool {
		s.mu.Lock()
		if s.tasks[key] != e {
			s.mu.Unlock()
			return true
		}
		s.cancelLocked(key)
		s.mu.Unlock()

		fn()
		return true
	})
	s.tasks[key] = e
}

// Cancel stops and forgets the timer under key
func (s *scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(key)
}

// Active reports whether key has a registered timer
func (s *scheduler) Active(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.tasks[key]
	return ok
}

// Stop cancels every registered timer
func (s *scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.tasks {
		s.cancelLocked(key)
	}
}

func (s *scheduler) cancelLocked(key string) {
	e, ok := s.tasks[key]
	if !ok {
		return
	}
	delete(s.tasks, key)
	e.task.Stop()
}

func (s *scheduler) isCurrent(key string, e *entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tasks[key] == e
}
