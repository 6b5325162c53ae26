// Package debug logs runtime memory figures when the app runs with --debug.
// Compression trials allocate a full encode buffer each, so heap and RSS are
// the numbers worth watching across long sessions.
package debug

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StartMemLogger logs memory stats every interval until ctx is done.
// RSS is best-effort; a failing query is logged once and then reported as 0.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			attrs := snapshot()
			rss, err := processRSS()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			attrs = append(attrs, slog.Uint64("rss", rss))
			logger.LogAttrs(ctx, slog.LevelInfo, "memstats", attrs...)
		}
	}()
}

// LogSnapshot emits one memstats record tagged with label, e.g. after a job.
func LogSnapshot(logger *slog.Logger, label string) {
	if logger == nil {
		return
	}
	attrs := append([]slog.Attr{slog.String("after", label)}, snapshot()...)
	logger.LogAttrs(context.Background(), slog.LevelDebug, "memstats", attrs...)
}

func snapshot() []slog.Attr {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return []slog.Attr{
		slog.Uint64("goroutines", samples[0].Value.Uint64()),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_idle", ms.HeapIdle),
		slog.Uint64("next_gc", ms.NextGC),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}
}
