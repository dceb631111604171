package debounce

import (
	"testing"
	"time"

	kit "xferlock/internal/platform/testkit"
)

func newManual(t *testing.T, initial string) (*Debouncer[string], *kit.ManualClock, *[]string) {
	t.Helper()
	clk := kit.NewManualClock()
	var settled []string
	d := New(initial, DefaultDelay,
		WithAfterFunc[string](clk.AfterFunc),
		WithOnSettle(func(v string) { settled = append(settled, v) }),
	)
	return d, clk, &settled
}

func TestDebouncer_SettlesAfterQuietPeriod(t *testing.T) {
	d, clk, settled := newManual(t, "")

	d.Set("example.com")
	if d.Current() != "example.com" {
		t.Fatalf("Current = %q", d.Current())
	}
	if d.Value() != "" {
		t.Fatalf("Value should lag, got %q", d.Value())
	}
	if !d.Pending() {
		t.Fatalf("expected pending settle")
	}

	clk.Advance(499 * time.Millisecond)
	if d.Value() != "" {
		t.Fatalf("settled too early: %q", d.Value())
	}
	clk.Advance(time.Millisecond)
	if d.Value() != "example.com" {
		t.Fatalf("Value = %q, want example.com", d.Value())
	}
	if d.Pending() {
		t.Fatalf("nothing should be pending after settle")
	}
	if len(*settled) != 1 || (*settled)[0] != "example.com" {
		t.Fatalf("settled callbacks = %v", *settled)
	}
}

func TestDebouncer_RapidEditsSettleOnce(t *testing.T) {
	d, clk, settled := newManual(t, "")

	for _, v := range []string{"e", "ex", "exa", "example", "example.com"} {
		d.Set(v)
		clk.Advance(100 * time.Millisecond)
	}
	if len(*settled) != 0 {
		t.Fatalf("intermediate keystrokes settled: %v", *settled)
	}
	if clk.Pending() != 1 {
		t.Fatalf("superseded timers should be stopped, pending = %d", clk.Pending())
	}
	clk.Advance(DefaultDelay)
	if len(*settled) != 1 || (*settled)[0] != "example.com" {
		t.Fatalf("settled = %v, want [example.com]", *settled)
	}
}

func TestDebouncer_SetBackToSettledCancels(t *testing.T) {
	d, clk, settled := newManual(t, "a.com")

	d.Set("b.com")
	d.Set("a.com")
	if d.Pending() {
		t.Fatalf("returning to the settled value should cancel the timer")
	}
	clk.Advance(time.Second)
	if len(*settled) != 0 {
		t.Fatalf("no settle expected, got %v", *settled)
	}
	if d.Value() != "a.com" {
		t.Fatalf("Value = %q", d.Value())
	}
}

func TestDebouncer_SameValueDoesNotRestart(t *testing.T) {
	d, clk, _ := newManual(t, "")

	d.Set("x.io")
	clk.Advance(400 * time.Millisecond)
	d.Set("x.io")
	clk.Advance(100 * time.Millisecond)
	if d.Value() != "x.io" {
		t.Fatalf("repeated identical Set should not push the deadline out")
	}
}

func TestDebouncer_StaleFireIgnored(t *testing.T) {
	var fires []func()
	af := func(_ time.Duration, f func()) Timer {
		fires = append(fires, f)
		return stubTimer{}
	}
	d := New("", time.Second, WithAfterFunc[string](af))

	d.Set("one.com")
	d.Set("two.com")
	// a stopped timer may still run if it had already been dequeued
	fires[0]()
	if d.Value() != "" {
		t.Fatalf("superseded fire must be ignored, Value = %q", d.Value())
	}
	fires[1]()
	if d.Value() != "two.com" {
		t.Fatalf("Value = %q, want two.com", d.Value())
	}
}

type stubTimer struct{}

func (stubTimer) Stop() bool { return false }

func TestDebouncer_CloseCancels(t *testing.T) {
	d, clk, settled := newManual(t, "")

	d.Set("gone.net")
	d.Close()
	if clk.Pending() != 0 {
		t.Fatalf("Close should stop the pending timer")
	}
	d.Set("later.net")
	clk.Advance(time.Second)
	if len(*settled) != 0 {
		t.Fatalf("closed debouncer settled: %v", *settled)
	}
	if d.Current() != "later.net" {
		t.Fatalf("Current should still track Set after Close, got %q", d.Current())
	}
}

func TestDebouncer_Flush(t *testing.T) {
	d, clk, settled := newManual(t, "")

	d.Set("now.org")
	if !d.Flush() {
		t.Fatalf("Flush should report a change")
	}
	if d.Value() != "now.org" || d.Pending() {
		t.Fatalf("Flush did not settle: value=%q pending=%v", d.Value(), d.Pending())
	}
	if d.Flush() {
		t.Fatalf("second Flush has nothing to settle")
	}
	clk.Advance(time.Second)
	if len(*settled) != 1 {
		t.Fatalf("settled = %v", *settled)
	}
}

func TestNew_DefaultsDelay(t *testing.T) {
	var got time.Duration
	af := func(d time.Duration, _ func()) Timer { got = d; return stubTimer{} }
	d := New(0, 0, WithAfterFunc[int](af))
	d.Set(1)
	if got != DefaultDelay {
		t.Fatalf("delay = %v, want %v", got, DefaultDelay)
	}
}
