package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)

	if d := clock.Since(past); d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if !clock.Now().Equal(start) {
		t.Errorf("Now() = %v, expected %v", clock.Now(), start)
	}

	clock.Advance(90 * time.Second)
	if d := clock.Since(start); d != 90*time.Second {
		t.Errorf("Since() = %v after Advance, expected 1m30s", d)
	}

	later := start.Add(time.Hour)
	clock.Set(later)
	if !clock.Now().Equal(later) {
		t.Errorf("Now() = %v after Set, expected %v", clock.Now(), later)
	}
}
