package ui

import (
	"math"
	"testing"
)

func TestScheduleFullBudget(t *testing.T) {
	clock := &fakeClock{now: 31_000}
	s := scheduler{clock: clock}

	start := s.begin()
	s.finish(start)

	if want := []uint32{tickBudgetMS}; len(clock.sleeps) != 1 || clock.sleeps[0] != want[0] {
		t.Fatalf("sleeps = %v, want %v", clock.sleeps, want)
	}
}

func TestScheduleComplement(t *testing.T) {
	clock := &fakeClock{now: 31_000}
	s := scheduler{clock: clock}

	start := s.begin()
	clock.now += 7
	s.finish(start)

	if len(clock.sleeps) != 1 || clock.sleeps[0] != tickBudgetMS-7 {
		t.Fatalf("sleeps = %v, want [%d]", clock.sleeps, tickBudgetMS-7)
	}
}

func TestScheduleNoSleepWhenOverBudget(t *testing.T) {
	clock := &fakeClock{now: 31_000}
	s := scheduler{clock: clock}

	start := s.begin()
	clock.now += 1234
	s.finish(start)

	if len(clock.sleeps) != 0 {
		t.Fatalf("sleeps = %v, want none", clock.sleeps)
	}
}

// Crossing the counter overflow must behave exactly like any other
// interval of the same length.
func TestScheduleWraparound(t *testing.T) {
	for _, consumed := range []uint32{0, 7, tickBudgetMS / 2, 19} {
		clock := &fakeClock{now: math.MaxUint32}
		s := scheduler{clock: clock}

		start := s.begin()
		clock.now += consumed // wraps past zero
		s.finish(start)

		want := tickBudgetMS - consumed
		if len(clock.sleeps) != 1 || clock.sleeps[0] != want {
			t.Fatalf("consumed %d: sleeps = %v, want [%d]", consumed, clock.sleeps, want)
		}
	}
}

func TestScheduleWraparoundOverBudget(t *testing.T) {
	clock := &fakeClock{now: math.MaxUint32}
	s := scheduler{clock: clock}

	start := s.begin()
	clock.now += 1234
	s.finish(start)

	if len(clock.sleeps) != 0 {
		t.Fatalf("sleeps = %v, want none", clock.sleeps)
	}
}
