package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/pdfimg-tool/ui/model"
)

// BusySource reports whether a background job is running and which one.
type BusySource interface {
	Busy() bool
	Job() string
}

// StatusView displays the footer status line.
type StatusView interface {
	SetStatus(text string)
}

// StatusPresenter formats job activity from the model to the view.
type StatusPresenter struct {
	activity *model.ActivityModel
	busy     BusySource
	view     StatusView
	last     string
}

// NewStatusPresenter returns a new StatusPresenter.
func NewStatusPresenter(activity *model.ActivityModel, busy BusySource, view StatusView) *StatusPresenter {
	return &StatusPresenter{activity: activity, busy: busy, view: view}
}

// Tick advances the activity model and pushes the status text to the view
// when it changed.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.activity == nil || p.busy == nil || p.view == nil {
		return
	}
	busy := p.busy.Busy()
	p.activity.OnTick(busy, now)
	job, total := p.activity.Values()

	var text string
	switch {
	case busy:
		text = fmt.Sprintf("Working: %s %s", p.busy.Job(), clock(job))
	case p.activity.Completed() > 0:
		text = fmt.Sprintf("Ready | Last: %s | Total: %s (%d done)", clock(job), clock(total), p.activity.Completed())
	default:
		text = "Ready"
	}
	if text != p.last {
		p.last = text
		p.view.SetStatus(text)
	}
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
