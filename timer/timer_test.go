package timer

import (
	"errors"
	"testing"
	"time"
)

func TestAddTimerRejectsDuplicate(t *testing.T) {
	s := New[string]()
	if _, err := s.Add("a", Manual, time.Second); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := s.Add("a", Manual, time.Second); !errors.Is(err, ErrExists) {
		t.Errorf("second Add err = %v, want ErrExists", err)
	}
}

func TestAddTimerRejectsZeroPeriod(t *testing.T) {
	s := New[string]()
	if _, err := s.Add("a", Cyclic, 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
	if s.Exists("a") {
		t.Error("timer should not be registered")
	}
}

func TestManualTimer(t *testing.T) {
	s := New[string]()
	tm, _ := s.Add("m", Manual, time.Second)

	if tm.AddDelta(500 * time.Millisecond) {
		t.Error("should not fire at half period")
	}
	if !tm.AddDelta(500 * time.Millisecond) {
		t.Error("should fire at full period")
	}
	if !tm.Ended() {
		t.Error("manual timer should be ended")
	}
	if tm.AddDelta(time.Second) {
		t.Error("ended timer should not fire again")
	}

	tm.Reset()
	if tm.Ended() || tm.Elapsed() != 0 {
		t.Error("Reset should restart the timer")
	}
}

func TestCyclicTimer(t *testing.T) {
	s := New[string]()
	tm, _ := s.Add("c", Cyclic, time.Second)

	if tm.AddDelta(500 * time.Millisecond) {
		t.Error("should not cycle at half period")
	}
	if !tm.AddDelta(time.Second) {
		t.Error("should cycle after 1.5 periods")
	}
	if got := tm.Cycle(); got != 1 {
		t.Errorf("Cycle = %d, want 1", got)
	}
	if tm.Elapsed() != 500*time.Millisecond {
		t.Errorf("Elapsed = %v, want 500ms", tm.Elapsed())
	}
	if tm.Ended() {
		t.Error("cyclic timer never ends")
	}
	if got := tm.Cycle(); got != 0 {
		t.Errorf("second Cycle = %d, want 0", got)
	}
}

func TestCyclicTimerAccumulatesSlowFrames(t *testing.T) {
	s := New[int]()
	tm, _ := s.Add(1, Cyclic, 100*time.Millisecond)
	s.Advance(350 * time.Millisecond)
	s.Advance(100 * time.Millisecond)
	if got := tm.Cycle(); got != 4 {
		t.Errorf("Cycle = %d, want 4", got)
	}
	if tm.Elapsed() != 50*time.Millisecond {
		t.Errorf("Elapsed = %v, want 50ms", tm.Elapsed())
	}
}

func TestResetDropsPendingCycles(t *testing.T) {
	s := New[string]()
	tm, _ := s.Add("c", Cyclic, time.Millisecond)
	tm.AddDelta(10 * time.Millisecond)
	tm.Reset()
	if got := tm.Cycle(); got != 0 {
		t.Errorf("Cycle after Reset = %d, want 0", got)
	}
}

func TestGetAndDelete(t *testing.T) {
	type key struct {
		id   int
		name string
	}
	s := New[key]()
	k := key{1, "walk"}
	if _, err := s.Get(k); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound", err)
	}
	s.Add(k, Cyclic, time.Second)
	if _, err := s.Get(k); err != nil {
		t.Errorf("Get: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if err := s.Delete(k); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := s.Delete(k); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestDeleteFunc(t *testing.T) {
	s := New[int]()
	for i := 1; i <= 5; i++ {
		s.Add(i, Manual, time.Second)
	}
	if n := s.DeleteFunc(func(id int) bool { return id%2 == 0 }); n != 2 {
		t.Errorf("DeleteFunc removed %d, want 2", n)
	}
	if s.Len() != 3 || s.Exists(2) || !s.Exists(3) {
		t.Errorf("unexpected timers left, Len = %d", s.Len())
	}
}

func TestSetPeriod(t *testing.T) {
	s := New[string]()
	tm, _ := s.Add("c", Cyclic, time.Second)

	tm.SetPeriod(250 * time.Millisecond)
	if tm.Period() != 250*time.Millisecond {
		t.Fatalf("Period = %v, want 250ms", tm.Period())
	}
	tm.AddDelta(time.Second)
	if n := tm.Cycle(); n != 4 {
		t.Errorf("Cycle = %d, want 4", n)
	}

	tm.SetPeriod(0)
	tm.SetPeriod(-time.Second)
	if tm.Period() != 250*time.Millisecond {
		t.Errorf("non-positive periods should be ignored, Period = %v", tm.Period())
	}
}
