package logger

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Log
	Log = zap.New(core)
	Sugar = Log.Sugar()
	t.Cleanup(func() {
		Log = prev
		Sugar = prev.Sugar()
	})
	return logs
}

func TestTimerReportsElapsed(t *testing.T) {
	logs := observe(t)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	timer := startTimer("import", now)
	clock = clock.Add(1500 * time.Millisecond)
	elapsed := timer.Stop()

	if elapsed != 1500*time.Millisecond {
		t.Errorf("expected 1.5s elapsed, got %v", elapsed)
	}

	ended := logs.FilterMessage("timer ended").All()
	if len(ended) != 1 {
		t.Fatalf("expected 1 'timer ended' entry, got %d", len(ended))
	}
	fields := ended[0].ContextMap()
	if fields["timer"] != "import" {
		t.Errorf("expected timer=import, got %v", fields["timer"])
	}
	if fields["elapsed"] != 1500*time.Millisecond {
		t.Errorf("expected elapsed field 1.5s, got %v", fields["elapsed"])
	}
}

func TestTimerStopTwiceLogsOnce(t *testing.T) {
	logs := observe(t)

	timer := StartTimer("normals")
	timer.Stop()
	timer.Stop()

	if n := logs.FilterMessage("timer ended").Len(); n != 1 {
		t.Errorf("expected a single 'timer ended' entry, got %d", n)
	}
	if n := logs.FilterMessage("timer started").Len(); n != 1 {
		t.Errorf("expected a single 'timer started' entry, got %d", n)
	}
}
