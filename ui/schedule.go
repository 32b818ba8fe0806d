package ui

import "bootui/hal"

// tickBudgetMS is the polling cadence: every iteration, including its
// sleep, takes at least this long.
const tickBudgetMS = 20

// scheduler holds the loop to the fixed cadence. All arithmetic is on
// the wrapping uint32 millisecond counter: elapsed time is computed by
// modular subtraction, so an interval spanning the counter overflow
// yields the same value as one that does not.
type scheduler struct {
	clock hal.Clock
}

func (s scheduler) begin() uint32 {
	return s.clock.NowMS()
}

// finish sleeps off the unused part of the tick budget. An iteration
// that already ran past the budget gets no sleep and no catch-up debt.
func (s scheduler) finish(start uint32) {
	elapsed := s.clock.NowMS() - start
	if elapsed < tickBudgetMS {
		s.clock.SleepMS(tickBudgetMS - elapsed)
	}
}
