package ui

import (
	"fmt"

	"bootui/hal"
)

type fakeClock struct {
	now    uint32
	sleeps []uint32
}

func (c *fakeClock) NowMS() uint32 { return c.now }

func (c *fakeClock) SleepMS(ms uint32) {
	c.now += ms
	c.sleeps = append(c.sleeps, ms)
}

type fakeKeys struct {
	seq []hal.KeyCode
}

func (k *fakeKeys) Read() hal.KeyCode {
	if len(k.seq) == 0 {
		return hal.KeyNone
	}
	code := k.seq[0]
	k.seq = k.seq[1:]
	return code
}

// fakePower plays back a reason sequence, then repeats rest forever.
type fakePower struct {
	seq  []hal.ShutdownReason
	rest hal.ShutdownReason
	offs int
}

func (p *fakePower) ShutdownReasons() hal.ShutdownReason {
	if len(p.seq) == 0 {
		return p.rest
	}
	r := p.seq[0]
	p.seq = p.seq[1:]
	return r
}

func (p *fakePower) Off() { p.offs++ }

// willShutdownIn requests a lid shutdown on the n-th poll.
func willShutdownIn(n int) *fakePower {
	return &fakePower{seq: make([]hal.ShutdownReason, n-1), rest: hal.ReasonLidClosed}
}

type fakeFirmware struct {
	flags hal.PolicyFlag
}

func (f *fakeFirmware) PolicyFlags() hal.PolicyFlag { return f.flags }

type drawRec struct {
	id   ScreenID
	item int
}

type fakeRenderer struct {
	draws []drawRec
	errs  []error
}

func (r *fakeRenderer) Draw(s *Screen, selected int) error {
	r.draws = append(r.draws, drawRec{id: s.ID, item: selected})
	if len(r.errs) == 0 {
		return nil
	}
	err := r.errs[0]
	r.errs = r.errs[1:]
	return err
}

type memLogger struct {
	lines []string
}

func (l *memLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *memLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

// countdownAction returns Continue n-1 times, then res.
func countdownAction(n int, res Result) Action {
	remaining := n
	return func(*Context) (Result, error) {
		remaining--
		if remaining <= 0 {
			return res, nil
		}
		return Continue, nil
	}
}

type loopEnv struct {
	clock *fakeClock
	keys  *fakeKeys
	power *fakePower
	fw    *fakeFirmware
	rend  *fakeRenderer
	log   *memLogger
}

func newLoopEnv() *loopEnv {
	return &loopEnv{
		clock: &fakeClock{},
		keys:  &fakeKeys{},
		power: &fakePower{},
		fw:    &fakeFirmware{},
		rend:  &fakeRenderer{},
		log:   &memLogger{},
	}
}

func (e *loopEnv) loop(reg *Registry, detachable bool) *Loop {
	return New(Config{
		Registry:   reg,
		Renderer:   e.rend,
		Keys:       e.keys,
		Power:      e.power,
		Firmware:   e.fw,
		Clock:      e.clock,
		Log:        e.log,
		Detachable: detachable,
	})
}

func (e *loopEnv) checkDraws(want []drawRec) error {
	if len(e.rend.draws) != len(want) {
		return fmt.Errorf("got %d draws %v, want %d %v", len(e.rend.draws), e.rend.draws, len(want), want)
	}
	for i := range want {
		if e.rend.draws[i] != want[i] {
			return fmt.Errorf("draw %d = %v, want %v", i, e.rend.draws[i], want[i])
		}
	}
	return nil
}
