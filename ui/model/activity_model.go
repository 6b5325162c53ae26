package model

import (
	"time"
)

// ActivityModel tracks how long the current job has been running, how long
// the previous one took, and the accumulated processing time of the session.
// It is decoupled from the UI; presenters should poll Values() and update views.
// The zero value is ready to use.
type ActivityModel struct {
	active      bool
	jobStart    time.Time
	lastJob     time.Duration
	accumulated time.Duration
	jobs        int
}

// NewActivityModel returns a pointer to a ready-to-use ActivityModel.
func NewActivityModel() *ActivityModel { return &ActivityModel{} }

// OnTick updates the model using the current busy state and timestamp.
// Call periodically (for example, from a presenter tick).
func (m *ActivityModel) OnTick(busy bool, now time.Time) {
	if m == nil {
		return
	}
	if busy {
		if !m.active { // idle -> busy
			m.active = true
			m.jobStart = now
			m.lastJob = 0
		}
		m.lastJob = now.Sub(m.jobStart)
	} else if m.active { // busy -> idle
		m.lastJob = now.Sub(m.jobStart)
		m.accumulated += m.lastJob
		m.jobs++
		m.active = false
	}
}

// Values returns the current (or last) job duration and the total processing
// time. The total includes the ongoing job when active.
func (m *ActivityModel) Values() (job, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	job = m.lastJob
	total = m.accumulated
	if m.active {
		total += job
	}
	return
}

// Active reports whether a job is in progress as of the last tick.
func (m *ActivityModel) Active() bool { return m != nil && m.active }

// Completed returns the number of jobs that finished.
func (m *ActivityModel) Completed() int {
	if m == nil {
		return 0
	}
	return m.jobs
}
