package presenter

import (
	"sync"
	"time"
)

// Loop drives periodic UI updates on the Tk thread.
//
// Worker goroutines hand results back with Post; Tick runs them in order,
// refreshes the status presenter and invokes the scheduler callback. The zero
// value is usable (methods are nil-safe).
type Loop struct {
	Status   *StatusPresenter
	Schedule func()

	mu    sync.Mutex
	tasks []func()
}

func NewLoop(status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Status: status, Schedule: schedule}
}

// Post queues fn to run on the next Tick. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	if l == nil || fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	l.mu.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()
	// Tasks posted while draining wait for the next tick.
	for _, fn := range tasks {
		fn()
	}
	if l.Status != nil {
		l.Status.Tick(time.Now())
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
