package model

import (
	"sync"
	"sync/atomic"
)

// BusyModel tracks whether a background job is running and its name.
// The zero value is idle and usable. Concurrency-safe: dialogs query it from
// the Tk thread while jobs finish from worker goroutines.
type BusyModel struct {
	busy atomic.Bool
	mu   sync.Mutex
	job  string
}

// Busy reports whether a job is running.
func (m *BusyModel) Busy() bool {
	if m == nil {
		return false
	}
	return m.busy.Load()
}

// Job returns the running job name, or "" when idle.
func (m *BusyModel) Job() string {
	if m == nil {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.job
}

// TryStart marks job as running. It returns false if another job already is.
func (m *BusyModel) TryStart(job string) bool {
	if m == nil {
		return false
	}
	if !m.busy.CompareAndSwap(false, true) {
		return false
	}
	m.mu.Lock()
	m.job = job
	m.mu.Unlock()
	return true
}

// Finish marks the running job as done. Idempotent.
func (m *BusyModel) Finish() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.job = ""
	m.mu.Unlock()
	m.busy.Store(false)
}
