package logger

import (
	"time"

	"go.uber.org/zap"
)

// Timer measures one scoped section of work and logs its duration.
//
//	t := logger.StartTimer("import")
//	defer t.Stop()
type Timer struct {
	name    string
	start   time.Time
	stopped bool
	now     func() time.Time
}

// StartTimer starts a timer and logs that the section began.
func StartTimer(name string) *Timer {
	return startTimer(name, time.Now)
}

func startTimer(name string, now func() time.Time) *Timer {
	t := &Timer{name: name, start: now(), now: now}
	Log.Debug("timer started", zap.String("timer", name))
	return t
}

// Stop logs the elapsed time and returns it. Stopping twice only logs once.
func (t *Timer) Stop() time.Duration {
	elapsed := t.now().Sub(t.start)
	if t.stopped {
		return elapsed
	}
	t.stopped = true
	Log.Info("timer ended", zap.String("timer", t.name), zap.Duration("elapsed", elapsed))
	return elapsed
}
