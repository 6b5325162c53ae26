package presenter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Poster queues a callback onto the UI thread.
type Poster interface{ Post(fn func()) }

// BusyModel provides exclusive job state access.
type BusyModel interface {
	BusySource
	TryStart(job string) bool
	Finish()
}

// Notifier shows the outcome of an operation to the user.
type Notifier interface {
	Info(title, msg string)
	Error(title, msg string)
}

// JobRunner executes one operation at a time off the UI thread and delivers
// the outcome back through the Poster.
type JobRunner struct {
	ctx    context.Context
	busy   BusyModel
	post   Poster
	notify Notifier
	logger *slog.Logger
}

func NewJobRunner(ctx context.Context, busy BusyModel, post Poster, notify Notifier, logger *slog.Logger) *JobRunner {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &JobRunner{ctx: ctx, busy: busy, post: post, notify: notify, logger: logger}
}

// Go runs work on its own goroutine and calls done with its error on the UI
// thread. It refuses to start while another job is running and reports false.
func (r *JobRunner) Go(name string, work func(ctx context.Context) error, done func(err error)) bool {
	if r == nil || r.busy == nil || r.post == nil {
		return false
	}
	if !r.busy.TryStart(name) {
		if r.notify != nil {
			r.notify.Error("Busy", fmt.Sprintf("Please wait for %q to finish.", r.busy.Job()))
		}
		return false
	}
	r.logger.Debug("job started", "job", name)
	go func() {
		start := time.Now()
		err := guard(r.ctx, work)
		if err != nil {
			r.logger.Error("job failed", "job", name, "elapsed", time.Since(start), "error", err)
		} else {
			r.logger.Info("job done", "job", name, "elapsed", time.Since(start))
		}
		r.post.Post(func() {
			r.busy.Finish()
			if done != nil {
				done(err)
			}
		})
	}()
	return true
}

// Run is Go for operations that end in a message: msg on success, or failure
// followed by the error text otherwise.
func (r *JobRunner) Run(name, failure string, work func(ctx context.Context) (string, error)) bool {
	var msg string
	return r.Go(name, func(ctx context.Context) error {
		var err error
		msg, err = work(ctx)
		return err
	}, func(err error) {
		if err != nil {
			r.Report(failure, err)
			return
		}
		if r.notify != nil {
			r.notify.Info("Success", msg)
		}
	})
}

// Report shows err, using a friendly text for known errors and failure plus
// the raw error otherwise.
func (r *JobRunner) Report(failure string, err error) {
	if r == nil || r.notify == nil || err == nil {
		return
	}
	text, known, info := describe(err)
	switch {
	case info:
		r.notify.Info("Info", text)
	case known:
		r.notify.Error("Error", text)
	default:
		r.notify.Error("Error", failure+"\n\n"+err.Error())
	}
}

// guard converts a panic in work into an error so the busy flag is released.
func guard(ctx context.Context, work func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return work(ctx)
}

func (r *JobRunner) notifyError(msg string) {
	if r != nil && r.notify != nil {
		r.notify.Error("Error", msg)
	}
}
