package core

import "time"

// Cadence bounds. A speed of 0 waits MaxDelay between steps; every speed step
// shaves SpeedStep off until MinDelay.
const (
	DefaultSpeed = 10
	MaxDelay     = time.Second
	MinDelay     = 50 * time.Millisecond
	SpeedStep    = 50 * time.Millisecond
)

// DelayForSpeed maps a user speed value to the pause between generations.
func DelayForSpeed(speed int) time.Duration {
	if speed < 0 {
		speed = 0
	}
	return max(MinDelay, MaxDelay-time.Duration(speed)*SpeedStep)
}

// FixedStep paces simulation steps inside a faster frame loop.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep at the given speed. The first call to
// ShouldStep fires immediately.
func NewFixedStep(speed int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetSpeed(speed)
	fs.accumulator = fs.step
	return fs
}

// SetSpeed changes the step interval. It is safe to call from the main loop.
func (f *FixedStep) SetSpeed(speed int) {
	f.step = DelayForSpeed(speed)
}

// Interval returns the current pause between steps.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset drops any accumulated time so the next step waits a full interval.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one generation.
// At most one step is released per call so a stalled frame never bursts.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
